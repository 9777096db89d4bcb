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

type VehicleHandler struct {
	vehicleService *services.VehicleService
	validator      *validator.Validate
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		validator:      validator.New(),
	}
}

// GetVehicles retrieves all vehicles with their model populated
func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.GetAllVehicles()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve vehicles", "")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehiclesPaginated retrieves one page of vehicles
func (h *VehicleHandler) GetVehiclesPaginated(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.vehicleService.GetVehiclesPaginated(page, limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve vehicles", "")
		return
	}

	utils.PaginatedResponse(c, http.StatusOK, result.Data, result.Total, result.Page, result.LastPage)
}

// SearchVehicles filters vehicles by plate number, color and model
func (h *VehicleHandler) SearchVehicles(c *gin.Context) {
	plateNumber := c.Query("plateNumber")
	color := c.Query("color")
	modelID := c.Query("modelId")

	vehicles, err := h.vehicleService.SearchVehicles(plateNumber, color, modelID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid model ID", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to search vehicles", "")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle retrieves a specific vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicleByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Vehicle not found", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve vehicle", "")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// CreateVehicle creates a new vehicle
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req services.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicatePlate):
			utils.ErrorResponse(c, http.StatusConflict, "Plate number already registered", "")
		case errors.Is(err, services.ErrModelNotFound):
			utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle model not found", "")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create vehicle", "")
		}
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// UpdateVehicle applies a partial update to an existing vehicle
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req services.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", "")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInvalidID):
			utils.ErrorResponse(c, http.StatusNotFound, "Vehicle not found", "")
		case errors.Is(err, services.ErrDuplicatePlate):
			utils.ErrorResponse(c, http.StatusConflict, "Plate number already registered", "")
		case errors.Is(err, services.ErrModelNotFound):
			utils.ErrorResponse(c, http.StatusBadRequest, "Vehicle model not found", "")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update vehicle", "")
		}
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle deletes a vehicle
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Vehicle not found", "")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete vehicle", "")
		return
	}

	c.Status(http.StatusNoContent)
}
