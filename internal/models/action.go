package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action types
const (
	ActionBook   = "BOOK"
	ActionUse    = "USE"
	ActionReturn = "RETURN"
)

// Action records a user operating on a vehicle. Recording an action does
// not change the vehicle's availability flag.
type Action struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	VehicleID  primitive.ObjectID `bson:"vehicle_id" json:"vehicleId"`
	ActionType string             `bson:"action_type" json:"actionType" validate:"required,oneof=BOOK USE RETURN"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ActionWithRelations is an action with its vehicle and user embedded, as
// produced by the $lookup pipeline on list reads.
type ActionWithRelations struct {
	Action  `bson:",inline"`
	Vehicle *Vehicle `bson:"vehicle,omitempty" json:"vehicle,omitempty"`
	User    *User    `bson:"user,omitempty" json:"user,omitempty"`
}
