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

type ActionRepository struct {
	collection *mongo.Collection
}

func NewActionRepository(db *mongo.Database) *ActionRepository {
	return &ActionRepository{
		collection: db.Collection("actions"),
	}
}

func (r *ActionRepository) Create(action *models.Action) (*models.Action, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, action)
	if err != nil {
		return nil, err
	}

	action.ID = result.InsertedID.(primitive.ObjectID)
	return action, nil
}

func (r *ActionRepository) FindByID(id string) (*models.Action, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var action models.Action
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&action)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &action, nil
}

// FindAllWithRelations returns every action with its vehicle and user
// embedded.
func (r *ActionRepository) FindAllWithRelations() ([]*models.ActionWithRelations, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$sort": bson.M{"created_at": -1}},
		{
			"$lookup": bson.M{
				"from":         "vehicles",
				"localField":   "vehicle_id",
				"foreignField": "_id",
				"as":           "vehicle",
			},
		},
		{
			"$unwind": bson.M{
				"path":                       "$vehicle",
				"preserveNullAndEmptyArrays": true,
			},
		},
		{
			"$lookup": bson.M{
				"from":         "users",
				"localField":   "user_id",
				"foreignField": "_id",
				"as":           "user",
			},
		},
		{
			"$unwind": bson.M{
				"path":                       "$user",
				"preserveNullAndEmptyArrays": true,
			},
		},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var actions []*models.ActionWithRelations
	for cursor.Next(ctx) {
		var action models.ActionWithRelations
		if err := cursor.Decode(&action); err != nil {
			return nil, err
		}
		actions = append(actions, &action)
	}

	return actions, nil
}

func (r *ActionRepository) Update(id string, action *models.Action) (*models.Action, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	action.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": action},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updatedAction models.Action
	if err := result.Decode(&updatedAction); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &updatedAction, nil
}

func (r *ActionRepository) Delete(id string) error {
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
