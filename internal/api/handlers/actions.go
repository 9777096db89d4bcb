package handlers

import (
	"errors"
	"net/http"

	"vms-backend/internal/repository"
	"vms-backend/internal/services"
	"vms-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ActionHandler struct {
	actionService *services.ActionService
	validator     *validator.Validate
}

func NewActionHandler(actionService *services.ActionService) *ActionHandler {
	return &ActionHandler{
		actionService: actionService,
		validator:     validator.New(),
	}
}

// GetActions retrieves all actions with their vehicle and user populated
func (h *ActionHandler) GetActions(c *gin.Context) {
	actions, err := h.actionService.GetAllActions()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve actions", "")
		return
	}

	c.JSON(http.StatusOK, actions)
}

// GetAction retrieves a specific action by ID
func (h *ActionHandler) GetAction(c *gin.Context) {
	action, err := h.actionService.GetActionByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Action not found", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve action", "")
		return
	}

	c.JSON(http.StatusOK, action)
}

// CreateAction records a BOOK, USE or RETURN action
func (h *ActionHandler) CreateAction(c *gin.Context) {
	var req services.CreateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	action, err := h.actionService.CreateAction(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.ErrorResponse(c, http.StatusBadRequest, "User not found", "")
		case errors.Is(err, services.ErrVehicleNotFound):
			utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle not found", "")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create action", "")
		}
		return
	}

	c.JSON(http.StatusCreated, action)
}

// UpdateAction applies a partial update to an existing action
func (h *ActionHandler) UpdateAction(c *gin.Context) {
	var req services.UpdateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	action, err := h.actionService.UpdateAction(c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidID):
			utils.ErrorResponse(c, http.StatusNotFound, "Action not found", "")
		case errors.Is(err, services.ErrUserNotFound):
			utils.ErrorResponse(c, http.StatusBadRequest, "User not found", "")
		case errors.Is(err, services.ErrVehicleNotFound):
			utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle not found", "")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update action", "")
		}
		return
	}

	c.JSON(http.StatusOK, action)
}

// DeleteAction deletes an action
func (h *ActionHandler) DeleteAction(c *gin.Context) {
	if err := h.actionService.DeleteAction(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Action not found", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete action", "")
		return
	}

	c.Status(http.StatusNoContent)
}
