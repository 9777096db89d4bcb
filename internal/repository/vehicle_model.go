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

type VehicleModelRepository struct {
	collection *mongo.Collection
}

func NewVehicleModelRepository(db *mongo.Database) *VehicleModelRepository {
	return &VehicleModelRepository{
		collection: db.Collection("vehicle_models"),
	}
}

func (r *VehicleModelRepository) Create(model *models.VehicleModel) (*models.VehicleModel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, model)
	if err != nil {
		return nil, err
	}

	model.ID = result.InsertedID.(primitive.ObjectID)
	return model, nil
}

func (r *VehicleModelRepository) FindByID(id string) (*models.VehicleModel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var model models.VehicleModel
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&model)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model, nil
}

func (r *VehicleModelRepository) FindAll() ([]*models.VehicleModel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicleModels []*models.VehicleModel
	for cursor.Next(ctx) {
		var model models.VehicleModel
		if err := cursor.Decode(&model); err != nil {
			return nil, err
		}
		vehicleModels = append(vehicleModels, &model)
	}

	return vehicleModels, nil
}

// FindPage returns one page of models plus the total count. The count is a
// separate query; a stale total under concurrent writes is accepted.
func (r *VehicleModelRepository) FindPage(skip, limit int64) ([]*models.VehicleModel, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var vehicleModels []*models.VehicleModel
	for cursor.Next(ctx) {
		var model models.VehicleModel
		if err := cursor.Decode(&model); err != nil {
			return nil, 0, err
		}
		vehicleModels = append(vehicleModels, &model)
	}

	return vehicleModels, total, nil
}

// Search matches name and brand as case-insensitive substrings. Absent
// filters are omitted from the query.
func (r *VehicleModelRepository) Search(name, brand string) ([]*models.VehicleModel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if name != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: regexQuote(name), Options: "i"}}
	}
	if brand != "" {
		filter["brand"] = bson.M{"$regex": primitive.Regex{Pattern: regexQuote(brand), Options: "i"}}
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicleModels []*models.VehicleModel
	for cursor.Next(ctx) {
		var model models.VehicleModel
		if err := cursor.Decode(&model); err != nil {
			return nil, err
		}
		vehicleModels = append(vehicleModels, &model)
	}

	return vehicleModels, nil
}

func (r *VehicleModelRepository) Update(id string, model *models.VehicleModel) (*models.VehicleModel, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	model.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": model},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updatedModel models.VehicleModel
	if err := result.Decode(&updatedModel); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &updatedModel, nil
}

func (r *VehicleModelRepository) Delete(id string) error {
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
