package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vms-backend/internal/models"
	"vms-backend/internal/repository"
	"vms-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUserLoader struct {
	users map[string]*models.User
}

func (s *stubUserLoader) FindByID(id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func setupAuthRouter(t *testing.T) (*gin.Engine, *jwt.JWTUtil, *stubUserLoader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtUtil := jwt.NewJWTUtil("test-secret", "1h")
	loader := &stubUserLoader{users: map[string]*models.User{}}

	router := gin.New()
	router.GET("/protected", RequireAuth(jwtUtil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("user_id"), "role": c.GetString("role")})
	})
	router.GET("/admin", RequireAuth(jwtUtil), RequireAdmin(loader), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, jwtUtil, loader
}

func seedUser(loader *stubUserLoader, role string) *models.User {
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "user@example.com",
		Role:  role,
	}
	loader.users[user.ID.Hex()] = user
	return user
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	w := doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not logged in")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	router, jwtUtil, loader := setupAuthRouter(t)
	user := seedUser(loader, models.RoleUser)

	token, err := jwtUtil.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	require.NoError(t, err)

	// A raw token without the Bearer scheme is rejected
	w := doRequest(router, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	w := doRequest(router, "/protected", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	router, _, loader := setupAuthRouter(t)
	user := seedUser(loader, models.RoleUser)

	otherUtil := jwt.NewJWTUtil("other-secret", "1h")
	token, err := otherUtil.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	require.NoError(t, err)

	w := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	router, jwtUtil, loader := setupAuthRouter(t)
	user := seedUser(loader, models.RoleUser)

	token, err := jwtUtil.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	require.NoError(t, err)

	w := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.Hex())
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	router, jwtUtil, loader := setupAuthRouter(t)
	user := seedUser(loader, models.RoleUser)

	token, err := jwtUtil.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	require.NoError(t, err)

	w := doRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not allowed")
}

func TestRequireAdmin_Admin(t *testing.T) {
	router, jwtUtil, loader := setupAuthRouter(t)
	admin := seedUser(loader, models.RoleAdmin)

	token, err := jwtUtil.GenerateToken(admin.ID.Hex(), admin.Email, admin.Role)
	require.NoError(t, err)

	w := doRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_UnknownUser(t *testing.T) {
	router, jwtUtil, _ := setupAuthRouter(t)

	// Token is valid but the account no longer exists
	token, err := jwtUtil.GenerateToken(primitive.NewObjectID().Hex(), "gone@example.com", models.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_StoredRoleWins(t *testing.T) {
	router, jwtUtil, loader := setupAuthRouter(t)
	user := seedUser(loader, models.RoleUser)

	// A forged ADMIN claim does not help when the stored role is USER
	token, err := jwtUtil.GenerateToken(user.ID.Hex(), user.Email, models.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
