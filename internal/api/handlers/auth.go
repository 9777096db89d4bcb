package handlers

import (
	"errors"
	"net/http"

	"vms-backend/internal/services"
	"vms-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *services.AuthService
	validator   *validator.Validate
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// Login authenticates a user and issues a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to log in", "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// InitiateEmailVerification sends a verification link to the caller's email
func (h *AuthHandler) InitiateEmailVerification(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.authService.InitiateEmailVerification(userID); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to initiate email verification", "")
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Verification email sent")
}

// VerifyEmail confirms the account holding the verification code
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	user, err := h.authService.VerifyEmail(c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidVerification) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid verification code", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to verify email", "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ForgotPassword starts a password reset. The response is the same
// whether or not the email belongs to an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to process password reset", "")
		return
	}

	utils.MessageResponse(c, http.StatusOK, "If the email exists, a reset link has been sent")
}

// ResetPassword sets a new password using a reset token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid or expired reset token", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to reset password", "")
		return
	}

	utils.MessageResponse(c, http.StatusOK, "Password has been reset")
}
