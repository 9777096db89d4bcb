package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHandler(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	handler(c)
	return w
}

func TestErrorResponse(t *testing.T) {
	w := runHandler(func(c *gin.Context) {
		ErrorResponse(c, http.StatusNotFound, "Vehicle not found", "")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Vehicle not found", body["message"])
	_, hasError := body["error"]
	assert.False(t, hasError, "empty detail is omitted from the body")
}

func TestErrorResponse_WithDetail(t *testing.T) {
	w := runHandler(func(c *gin.Context) {
		ErrorResponse(c, http.StatusBadRequest, "Invalid model ID", "modelId must be a hex object id")
	})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "modelId must be a hex object id", body["error"])
}

func TestValidationErrorResponse(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	err := validator.New().Struct(&payload{Email: "not-an-email"})
	require.Error(t, err)

	w := runHandler(func(c *gin.Context) {
		ValidationErrorResponse(c, err)
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body ValidationErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	assert.Contains(t, body.Errors, "Email must be a valid email address")
	assert.Contains(t, body.Errors, "Name is required")
}

func TestPaginatedResponse(t *testing.T) {
	w := runHandler(func(c *gin.Context) {
		PaginatedResponse(c, http.StatusOK, []string{"a", "b"}, 12, 2, 6)
	})

	var body PaginatedBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 6, body.LastPage)
}
