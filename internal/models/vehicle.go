package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vehicle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlateNumber string             `bson:"plate_number" json:"plateNumber" validate:"required"`
	Color       string             `bson:"color" json:"color" validate:"required"`
	ModelID     primitive.ObjectID `bson:"model_id" json:"modelId"`
	IsAvailable bool               `bson:"is_available" json:"isAvailable"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// VehicleWithModel is a vehicle with its model embedded, as produced by the
// $lookup pipeline on list reads.
type VehicleWithModel struct {
	Vehicle `bson:",inline"`
	Model   *VehicleModel `bson:"model,omitempty" json:"model,omitempty"`
}
