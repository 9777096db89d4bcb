package services

import (
	"log"
	"time"

	"vms-backend/internal/models"
	"vms-backend/pkg/cache"
)

type VehicleModelService struct {
	modelStore   VehicleModelStore
	vehicleStore VehicleStore
	cacheManager cache.CacheManager
}

func NewVehicleModelService(modelStore VehicleModelStore, vehicleStore VehicleStore) *VehicleModelService {
	return &VehicleModelService{
		modelStore:   modelStore,
		vehicleStore: vehicleStore,
	}
}

// SetCacheManager attaches a cache manager; the service works without one.
func (s *VehicleModelService) SetCacheManager(cacheManager cache.CacheManager) {
	s.cacheManager = cacheManager
}

type CreateVehicleModelRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Brand string `json:"brand" validate:"required,min=1,max=100"`
}

// UpdateVehicleModelRequest carries a partial update; nil fields are skipped.
type UpdateVehicleModelRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Brand *string `json:"brand,omitempty" validate:"omitempty,min=1,max=100"`
}

type VehicleModelPage struct {
	Data     []*models.VehicleModel `json:"data"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	LastPage int                    `json:"lastPage"`
}

func (s *VehicleModelService) GetAllModels() ([]*models.VehicleModel, error) {
	return s.modelStore.FindAll()
}

func (s *VehicleModelService) GetModelsPaginated(page, limit int) (*VehicleModelPage, error) {
	page, limit = normalizePage(page, limit)
	skip := int64((page - 1) * limit)

	vehicleModels, total, err := s.modelStore.FindPage(skip, int64(limit))
	if err != nil {
		return nil, err
	}

	return &VehicleModelPage{
		Data:     vehicleModels,
		Total:    total,
		Page:     page,
		LastPage: lastPage(total, limit),
	}, nil
}

func (s *VehicleModelService) GetModelByID(id string) (*models.VehicleModel, error) {
	return s.modelStore.FindByID(id)
}

func (s *VehicleModelService) SearchModels(name, brand string) ([]*models.VehicleModel, error) {
	return s.modelStore.Search(name, brand)
}

func (s *VehicleModelService) CreateModel(req *CreateVehicleModelRequest) (*models.VehicleModel, error) {
	model := &models.VehicleModel{
		Name:      req.Name,
		Brand:     req.Brand,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return s.modelStore.Create(model)
}

func (s *VehicleModelService) UpdateModel(id string, req *UpdateVehicleModelRequest) (*models.VehicleModel, error) {
	model, err := s.modelStore.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		model.Name = *req.Name
	}
	if req.Brand != nil {
		model.Brand = *req.Brand
	}

	updatedModel, err := s.modelStore.Update(id, model)
	if err != nil {
		return nil, err
	}

	// The vehicle list cache embeds model data, so a model change makes it stale.
	s.invalidateVehicleListCache()

	return updatedModel, nil
}

func (s *VehicleModelService) invalidateVehicleListCache() {
	if s.cacheManager == nil {
		return
	}
	if err := s.cacheManager.InvalidateVehicleList(cache.AllVehiclesKey); err != nil {
		log.Printf("Failed to invalidate vehicle list cache: %v", err)
	}
}

// DeleteModel refuses to delete a model that vehicles still reference so
// the vehicle.modelId invariant cannot be broken.
func (s *VehicleModelService) DeleteModel(id string) error {
	model, err := s.modelStore.FindByID(id)
	if err != nil {
		return err
	}

	referencing, err := s.vehicleStore.CountByModelID(model.ID)
	if err != nil {
		return err
	}
	if referencing > 0 {
		return ErrModelInUse
	}

	return s.modelStore.Delete(id)
}
