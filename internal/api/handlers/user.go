package handlers

import (
	"errors"
	"net/http"

	"vms-backend/internal/models"
	"vms-backend/internal/repository"
	"vms-backend/internal/services"
	"vms-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService *services.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// CreateUser registers a new account with the USER role
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.ErrorResponse(c, http.StatusConflict, "Email already registered", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create user", "")
		return
	}

	c.JSON(http.StatusCreated, user.ToAuthUser())
}

// GetProfile returns the authenticated caller's account
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "User not found", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve profile", "")
		return
	}

	c.JSON(http.StatusOK, user.ToAuthUser())
}

// GetUsers returns every account, stripped to the public view
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve users", "")
		return
	}

	out := make([]*models.AuthUser, 0, len(users))
	for _, user := range users {
		out = append(out, user.ToAuthUser())
	}

	c.JSON(http.StatusOK, out)
}
