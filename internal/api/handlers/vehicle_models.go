package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"vms-backend/internal/repository"
	"vms-backend/internal/services"
	"vms-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type VehicleModelHandler struct {
	modelService *services.VehicleModelService
	validator    *validator.Validate
}

func NewVehicleModelHandler(modelService *services.VehicleModelService) *VehicleModelHandler {
	return &VehicleModelHandler{
		modelService: modelService,
		validator:    validator.New(),
	}
}

// GetModels retrieves all vehicle models
func (h *VehicleModelHandler) GetModels(c *gin.Context) {
	models, err := h.modelService.GetAllModels()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve vehicle models", "")
		return
	}

	c.JSON(http.StatusOK, models)
}

// GetModelsPaginated retrieves one page of vehicle models
func (h *VehicleModelHandler) GetModelsPaginated(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.modelService.GetModelsPaginated(page, limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve vehicle models", "")
		return
	}

	utils.PaginatedResponse(c, http.StatusOK, result.Data, result.Total, result.Page, result.LastPage)
}

// SearchModels filters vehicle models by name and brand
func (h *VehicleModelHandler) SearchModels(c *gin.Context) {
	name := c.Query("name")
	brand := c.Query("brand")

	models, err := h.modelService.SearchModels(name, brand)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to search vehicle models", "")
		return
	}

	c.JSON(http.StatusOK, models)
}

// GetModel retrieves a specific vehicle model by ID
func (h *VehicleModelHandler) GetModel(c *gin.Context) {
	model, err := h.modelService.GetModelByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Vehicle model not found", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve vehicle model", "")
		return
	}

	c.JSON(http.StatusOK, model)
}

// CreateModel creates a new vehicle model
func (h *VehicleModelHandler) CreateModel(c *gin.Context) {
	var req services.CreateVehicleModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	model, err := h.modelService.CreateModel(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create vehicle model", "")
		return
	}

	c.JSON(http.StatusCreated, model)
}

// UpdateModel applies a partial update to an existing vehicle model
func (h *VehicleModelHandler) UpdateModel(c *gin.Context) {
	var req services.UpdateVehicleModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	model, err := h.modelService.UpdateModel(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Vehicle model not found", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update vehicle model", "")
		return
	}

	c.JSON(http.StatusOK, model)
}

// DeleteModel deletes a vehicle model that no vehicle references
func (h *VehicleModelHandler) DeleteModel(c *gin.Context) {
	if err := h.modelService.DeleteModel(c.Param("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidID):
			utils.ErrorResponse(c, http.StatusNotFound, "Vehicle model not found", "")
		case errors.Is(err, services.ErrModelInUse):
			utils.ErrorResponse(c, http.StatusConflict, "Vehicle model is referenced by existing vehicles", "")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete vehicle model", "")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
