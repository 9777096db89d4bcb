package services

import (
	"errors"
	"time"

	"vms-backend/internal/models"
	"vms-backend/internal/repository"
)

type ActionService struct {
	actionStore  ActionStore
	userStore    UserStore
	vehicleStore VehicleStore
}

func NewActionService(actionStore ActionStore, userStore UserStore, vehicleStore VehicleStore) *ActionService {
	return &ActionService{
		actionStore:  actionStore,
		userStore:    userStore,
		vehicleStore: vehicleStore,
	}
}

type CreateActionRequest struct {
	UserID     string `json:"userId" validate:"required"`
	VehicleID  string `json:"vehicleId" validate:"required"`
	ActionType string `json:"actionType" validate:"required,oneof=BOOK USE RETURN"`
}

// UpdateActionRequest carries a partial update; nil fields are skipped.
type UpdateActionRequest struct {
	UserID     *string `json:"userId,omitempty"`
	VehicleID  *string `json:"vehicleId,omitempty"`
	ActionType *string `json:"actionType,omitempty" validate:"omitempty,oneof=BOOK USE RETURN"`
}

func (s *ActionService) GetAllActions() ([]*models.ActionWithRelations, error) {
	return s.actionStore.FindAllWithRelations()
}

func (s *ActionService) GetActionByID(id string) (*models.Action, error) {
	return s.actionStore.FindByID(id)
}

// CreateAction records a user acting on a vehicle. Both references must
// exist. The vehicle's availability flag is deliberately left untouched.
func (s *ActionService) CreateAction(req *CreateActionRequest) (*models.Action, error) {
	user, err := s.userStore.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	vehicle, err := s.vehicleStore.FindByID(req.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	action := &models.Action{
		UserID:     user.ID,
		VehicleID:  vehicle.ID,
		ActionType: req.ActionType,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	return s.actionStore.Create(action)
}

func (s *ActionService) UpdateAction(id string, req *UpdateActionRequest) (*models.Action, error) {
	action, err := s.actionStore.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		user, err := s.userStore.FindByID(*req.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		action.UserID = user.ID
	}
	if req.VehicleID != nil {
		vehicle, err := s.vehicleStore.FindByID(*req.VehicleID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
				return nil, ErrVehicleNotFound
			}
			return nil, err
		}
		action.VehicleID = vehicle.ID
	}
	if req.ActionType != nil {
		action.ActionType = *req.ActionType
	}

	return s.actionStore.Update(id, action)
}

func (s *ActionService) DeleteAction(id string) error {
	return s.actionStore.Delete(id)
}
