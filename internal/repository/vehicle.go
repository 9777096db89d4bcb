package repository

import (
	"context"
	"time"

	"vms-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VehicleRepository struct {
	collection *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{
		collection: db.Collection("vehicles"),
	}
}

// modelLookupStages joins each vehicle's model into a single "model" field.
func modelLookupStages() []bson.M {
	return []bson.M{
		{
			"$lookup": bson.M{
				"from":         "vehicle_models",
				"localField":   "model_id",
				"foreignField": "_id",
				"as":           "model",
			},
		},
		{
			"$unwind": bson.M{
				"path":                       "$model",
				"preserveNullAndEmptyArrays": true,
			},
		},
	}
}

func (r *VehicleRepository) Create(vehicle *models.Vehicle) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		return nil, err
	}

	vehicle.ID = result.InsertedID.(primitive.ObjectID)
	return vehicle, nil
}

func (r *VehicleRepository) FindByID(id string) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var vehicle models.Vehicle
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &vehicle, nil
}

func (r *VehicleRepository) FindByPlateNumber(plateNumber string) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"plate_number": plateNumber}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &vehicle, nil
}

// FindAllWithModel returns every vehicle with its model embedded.
func (r *VehicleRepository) FindAllWithModel() ([]*models.VehicleWithModel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := append([]bson.M{
		{"$sort": bson.M{"created_at": -1}},
	}, modelLookupStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []*models.VehicleWithModel
	for cursor.Next(ctx) {
		var vehicle models.VehicleWithModel
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, nil
}

// FindPageWithModel returns one page of vehicles (model embedded) plus the
// total count. The count is a separate query; a stale total under
// concurrent writes is accepted.
func (r *VehicleRepository) FindPageWithModel(skip, limit int64) ([]*models.VehicleWithModel, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	pipeline := append([]bson.M{
		{"$sort": bson.M{"created_at": -1}},
		{"$skip": skip},
		{"$limit": limit},
	}, modelLookupStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var vehicles []*models.VehicleWithModel
	for cursor.Next(ctx) {
		var vehicle models.VehicleWithModel
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, total, nil
}

// Search matches plateNumber and color as case-insensitive substrings and
// modelID exactly. Absent filters are omitted from the query, so no
// filters returns all vehicles.
func (r *VehicleRepository) Search(plateNumber, color, modelID string) ([]*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if plateNumber != "" {
		filter["plate_number"] = bson.M{"$regex": primitive.Regex{Pattern: regexQuote(plateNumber), Options: "i"}}
	}
	if color != "" {
		filter["color"] = bson.M{"$regex": primitive.Regex{Pattern: regexQuote(color), Options: "i"}}
	}
	if modelID != "" {
		objectID, err := primitive.ObjectIDFromHex(modelID)
		if err != nil {
			return nil, ErrInvalidID
		}
		filter["model_id"] = objectID
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	for cursor.Next(ctx) {
		var vehicle models.Vehicle
		if err := cursor.Decode(&vehicle); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}

	return vehicles, nil
}

func (r *VehicleRepository) Update(id string, vehicle *models.Vehicle) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	vehicle.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": vehicle},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updatedVehicle models.Vehicle
	if err := result.Decode(&updatedVehicle); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &updatedVehicle, nil
}

func (r *VehicleRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// CountByModelID reports how many vehicles reference the given model.
func (r *VehicleRepository) CountByModelID(modelID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"model_id": modelID})
}
