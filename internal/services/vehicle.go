package services

import (
	"errors"
	"log"
	"time"

	"vms-backend/internal/models"
	"vms-backend/internal/repository"
	"vms-backend/pkg/cache"
)

type VehicleService struct {
	vehicleStore VehicleStore
	modelStore   VehicleModelStore
	cacheManager cache.CacheManager
	cacheConfig  cache.CacheConfig
}

func NewVehicleService(vehicleStore VehicleStore, modelStore VehicleModelStore) *VehicleService {
	return &VehicleService{
		vehicleStore: vehicleStore,
		modelStore:   modelStore,
		cacheConfig:  cache.DefaultCacheConfig(),
	}
}

// SetCacheManager attaches a cache manager; the service works without one.
func (s *VehicleService) SetCacheManager(cacheManager cache.CacheManager) {
	s.cacheManager = cacheManager
}

// SetCacheConfig allows setting custom cache configuration
func (s *VehicleService) SetCacheConfig(config cache.CacheConfig) {
	s.cacheConfig = config
}

type CreateVehicleRequest struct {
	PlateNumber string `json:"plateNumber" validate:"required,min=1,max=20"`
	Color       string `json:"color" validate:"required,min=1,max=50"`
	ModelID     string `json:"modelId" validate:"required"`
}

// UpdateVehicleRequest carries a partial update; nil fields are skipped.
type UpdateVehicleRequest struct {
	PlateNumber *string `json:"plateNumber,omitempty" validate:"omitempty,min=1,max=20"`
	Color       *string `json:"color,omitempty" validate:"omitempty,min=1,max=50"`
	ModelID     *string `json:"modelId,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

type VehiclePage struct {
	Data     []*models.VehicleWithModel `json:"data"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	LastPage int                        `json:"lastPage"`
}

func (s *VehicleService) GetAllVehicles() ([]*models.VehicleWithModel, error) {
	if s.cacheManager != nil {
		cachedVehicles, err := s.cacheManager.GetVehicleList(cache.AllVehiclesKey)
		if err == nil && cachedVehicles != nil {
			return cachedVehicles, nil
		}
		if err != nil {
			log.Printf("Cache error for GetAllVehicles: %v", err)
		}
	}

	vehicles, err := s.vehicleStore.FindAllWithModel()
	if err != nil {
		return nil, err
	}

	if s.cacheManager != nil {
		ttl := s.cacheConfig.GetTTLForDataType("vehicle_list")
		if cacheErr := s.cacheManager.SetVehicleList(cache.AllVehiclesKey, vehicles, ttl); cacheErr != nil {
			log.Printf("Failed to cache all vehicles: %v", cacheErr)
		}
	}

	return vehicles, nil
}

func (s *VehicleService) GetVehiclesPaginated(page, limit int) (*VehiclePage, error) {
	page, limit = normalizePage(page, limit)
	skip := int64((page - 1) * limit)

	vehicles, total, err := s.vehicleStore.FindPageWithModel(skip, int64(limit))
	if err != nil {
		return nil, err
	}

	return &VehiclePage{
		Data:     vehicles,
		Total:    total,
		Page:     page,
		LastPage: lastPage(total, limit),
	}, nil
}

func (s *VehicleService) GetVehicleByID(id string) (*models.Vehicle, error) {
	if s.cacheManager != nil {
		cachedVehicle, err := s.cacheManager.GetVehicle(id)
		if err == nil && cachedVehicle != nil {
			return cachedVehicle, nil
		}
		if err != nil {
			log.Printf("Cache error for GetVehicleByID(%s): %v", id, err)
		}
	}

	vehicle, err := s.vehicleStore.FindByID(id)
	if err != nil {
		return nil, err
	}

	if s.cacheManager != nil {
		ttl := s.cacheConfig.GetTTLForDataType("vehicle")
		if cacheErr := s.cacheManager.SetVehicle(id, vehicle, ttl); cacheErr != nil {
			log.Printf("Failed to cache vehicle %s: %v", id, cacheErr)
		}
	}

	return vehicle, nil
}

// SearchVehicles combines the present filters with AND; absent filters are
// omitted rather than matching everything.
func (s *VehicleService) SearchVehicles(plateNumber, color, modelID string) ([]*models.Vehicle, error) {
	return s.vehicleStore.Search(plateNumber, color, modelID)
}

func (s *VehicleService) CreateVehicle(req *CreateVehicleRequest) (*models.Vehicle, error) {
	// Plate numbers are unique per fleet
	existingVehicle, _ := s.vehicleStore.FindByPlateNumber(req.PlateNumber)
	if existingVehicle != nil {
		return nil, ErrDuplicatePlate
	}

	// The model reference must exist before the write
	model, err := s.modelStore.FindByID(req.ModelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}

	vehicle := &models.Vehicle{
		PlateNumber: req.PlateNumber,
		Color:       req.Color,
		ModelID:     model.ID,
		IsAvailable: false,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	createdVehicle, err := s.vehicleStore.Create(vehicle)
	if err != nil {
		return nil, err
	}

	s.invalidateListCache()

	return createdVehicle, nil
}

func (s *VehicleService) UpdateVehicle(id string, req *UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.vehicleStore.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.PlateNumber != nil {
		existingVehicle, _ := s.vehicleStore.FindByPlateNumber(*req.PlateNumber)
		if existingVehicle != nil && existingVehicle.ID != vehicle.ID {
			return nil, ErrDuplicatePlate
		}
		vehicle.PlateNumber = *req.PlateNumber
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.ModelID != nil {
		model, err := s.modelStore.FindByID(*req.ModelID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
				return nil, ErrModelNotFound
			}
			return nil, err
		}
		vehicle.ModelID = model.ID
	}
	if req.IsAvailable != nil {
		vehicle.IsAvailable = *req.IsAvailable
	}

	updatedVehicle, err := s.vehicleStore.Update(id, vehicle)
	if err != nil {
		return nil, err
	}

	s.invalidateVehicleCache(id)
	s.invalidateListCache()

	return updatedVehicle, nil
}

func (s *VehicleService) DeleteVehicle(id string) error {
	if err := s.vehicleStore.Delete(id); err != nil {
		return err
	}

	s.invalidateVehicleCache(id)
	s.invalidateListCache()

	return nil
}

func (s *VehicleService) invalidateVehicleCache(id string) {
	if s.cacheManager == nil {
		return
	}
	if err := s.cacheManager.InvalidateVehicle(id); err != nil {
		log.Printf("Failed to invalidate vehicle cache for %s: %v", id, err)
	}
}

func (s *VehicleService) invalidateListCache() {
	if s.cacheManager == nil {
		return
	}
	if err := s.cacheManager.InvalidateVehicleList(cache.AllVehiclesKey); err != nil {
		log.Printf("Failed to invalidate vehicle list cache: %v", err)
	}
}
