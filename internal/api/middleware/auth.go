package middleware

import (
	"net/http"
	"strings"

	"vms-backend/internal/models"
	"vms-backend/pkg/jwt"
	"vms-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserLoader resolves the account behind a token so role checks run
// against the stored role rather than the claim.
type UserLoader interface {
	FindByID(id string) (*models.User, error)
}

// RequireAuth validates the bearer token and stores the claims on the
// request context under user_id, email and role.
func RequireAuth(jwtUtil *jwt.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.ErrorResponse(c, http.StatusUnauthorized, "You are not logged in", "")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "You are not logged in", "")
			c.Abort()
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token", "")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireAdmin runs after RequireAuth and rejects any account whose
// stored role is not ADMIN.
func RequireAdmin(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "You are not logged in", "")
			c.Abort()
			return
		}

		user, err := users.FindByID(userID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token", "")
			c.Abort()
			return
		}

		if user.Role != models.RoleAdmin {
			utils.ErrorResponse(c, http.StatusForbidden, "You are not allowed to access this resource", "")
			c.Abort()
			return
		}

		c.Next()
	}
}
