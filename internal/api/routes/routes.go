package routes

import (
	"vms-backend/internal/api/handlers"
	"vms-backend/internal/api/middleware"
	"vms-backend/internal/config"
	"vms-backend/internal/repository"
	"vms-backend/internal/services"
	"vms-backend/pkg/cache"
	"vms-backend/pkg/email"
	"vms-backend/pkg/jwt"
	"vms-backend/pkg/ratelimit"
	"vms-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, redisClient *redis.Client) {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	modelRepo := repository.NewVehicleModelRepository(db)
	actionRepo := repository.NewActionRepository(db)

	// Shared infrastructure
	jwtUtil := jwt.NewJWTUtil(cfg.JWTSecret, cfg.JWTExpiry)
	emailService := email.NewEmailService(cfg.SMTP, cfg.AppURL)

	// Services
	authService := services.NewAuthService(userRepo, jwtUtil, emailService)
	userService := services.NewUserService(userRepo)
	vehicleService := services.NewVehicleService(vehicleRepo, modelRepo)
	modelService := services.NewVehicleModelService(modelRepo, vehicleRepo)
	actionService := services.NewActionService(actionRepo, userRepo, vehicleRepo)

	if redisClient != nil {
		cacheManager := cache.NewDefaultCacheManager(redisClient)
		vehicleService.SetCacheManager(cacheManager)
		modelService.SetCacheManager(cacheManager)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	modelHandler := handlers.NewVehicleModelHandler(modelService)
	actionHandler := handlers.NewActionHandler(actionService)
	healthHandler := handlers.NewHealthHandler(db, redisClient)

	// Rate limiting guards the credential endpoints
	rlConfig := ratelimit.DefaultConfig()
	rlConfig.Enabled = cfg.RateLimit.Enabled
	var limiter ratelimit.RateLimiter
	if cfg.RateLimit.Backend == "redis" && redisClient != nil {
		limiter = ratelimit.NewRedisRateLimiter(redisClient.GetClient(), rlConfig)
	} else {
		limiter = ratelimit.NewMemoryRateLimiter(rlConfig)
	}
	rateLimited := middleware.RateLimitMiddleware(limiter, rlConfig)

	requireAuth := middleware.RequireAuth(jwtUtil)
	requireAdmin := middleware.RequireAdmin(userRepo)

	router.GET("/health", healthHandler.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/login", rateLimited, authHandler.Login)
		auth.POST("/initiate-reset-password", rateLimited, authHandler.ForgotPassword)
		auth.POST("/reset-password", rateLimited, authHandler.ResetPassword)
		auth.POST("/initiate-email-verification", requireAuth, authHandler.InitiateEmailVerification)
		auth.PATCH("/verify-email/:code", authHandler.VerifyEmail)
	}

	user := router.Group("/user")
	{
		user.POST("/create", rateLimited, userHandler.CreateUser)
		user.GET("/me", requireAuth, userHandler.GetProfile)
		user.GET("/all", requireAuth, requireAdmin, userHandler.GetUsers)
	}

	vehicles := router.Group("/vehicles")
	{
		vehicles.GET("", vehicleHandler.GetVehicles)
		vehicles.GET("/paginated", vehicleHandler.GetVehiclesPaginated)
		vehicles.GET("/search", vehicleHandler.SearchVehicles)
		vehicles.GET("/:id", vehicleHandler.GetVehicle)
		vehicles.POST("", requireAuth, requireAdmin, vehicleHandler.CreateVehicle)
		vehicles.PUT("/:id", requireAuth, requireAdmin, vehicleHandler.UpdateVehicle)
		vehicles.DELETE("/:id", requireAuth, requireAdmin, vehicleHandler.DeleteVehicle)
	}

	vehicleModels := router.Group("/vehicle-models")
	{
		vehicleModels.GET("", modelHandler.GetModels)
		vehicleModels.GET("/paginated", modelHandler.GetModelsPaginated)
		vehicleModels.GET("/search", modelHandler.SearchModels)
		vehicleModels.GET("/:id", modelHandler.GetModel)
		vehicleModels.POST("", requireAuth, requireAdmin, modelHandler.CreateModel)
		vehicleModels.PUT("/:id", requireAuth, requireAdmin, modelHandler.UpdateModel)
		vehicleModels.DELETE("/:id", requireAuth, requireAdmin, modelHandler.DeleteModel)
	}

	actions := router.Group("/actions")
	{
		actions.GET("", requireAuth, actionHandler.GetActions)
		actions.GET("/:id", requireAuth, requireAdmin, actionHandler.GetAction)
		actions.POST("", requireAuth, requireAdmin, actionHandler.CreateAction)
		actions.PUT("/:id", requireAuth, requireAdmin, actionHandler.UpdateAction)
		actions.DELETE("/:id", requireAuth, requireAdmin, actionHandler.DeleteAction)
	}
}
