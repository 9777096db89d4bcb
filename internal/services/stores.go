package services

import (
	"time"

	"vms-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces implemented by internal/repository. Services depend on
// these rather than the concrete Mongo repositories so tests can substitute
// in-memory fakes.

type UserStore interface {
	Create(user *models.User) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindAll() ([]*models.User, error)
	Update(id string, user *models.User) (*models.User, error)
	UpdatePasswordResetToken(email, hashedToken string, expiry time.Time) error
	ClearPasswordResetToken(id string) error
}

type VehicleStore interface {
	Create(vehicle *models.Vehicle) (*models.Vehicle, error)
	FindByID(id string) (*models.Vehicle, error)
	FindByPlateNumber(plateNumber string) (*models.Vehicle, error)
	FindAllWithModel() ([]*models.VehicleWithModel, error)
	FindPageWithModel(skip, limit int64) ([]*models.VehicleWithModel, int64, error)
	Search(plateNumber, color, modelID string) ([]*models.Vehicle, error)
	Update(id string, vehicle *models.Vehicle) (*models.Vehicle, error)
	Delete(id string) error
	CountByModelID(modelID primitive.ObjectID) (int64, error)
}

type VehicleModelStore interface {
	Create(model *models.VehicleModel) (*models.VehicleModel, error)
	FindByID(id string) (*models.VehicleModel, error)
	FindAll() ([]*models.VehicleModel, error)
	FindPage(skip, limit int64) ([]*models.VehicleModel, int64, error)
	Search(name, brand string) ([]*models.VehicleModel, error)
	Update(id string, model *models.VehicleModel) (*models.VehicleModel, error)
	Delete(id string) error
}

type ActionStore interface {
	Create(action *models.Action) (*models.Action, error)
	FindByID(id string) (*models.Action, error)
	FindAllWithRelations() ([]*models.ActionWithRelations, error)
	Update(id string, action *models.Action) (*models.Action, error)
	Delete(id string) error
}
