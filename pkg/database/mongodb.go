package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Connect establishes a connection to MongoDB
func Connect(mongoURI string) (*mongo.Database, error) {
	// Parse the URI to extract database name
	cs, err := connstring.ParseAndValidate(mongoURI)
	if err != nil {
		return nil, fmt.Errorf("invalid MongoDB URI: %v", err)
	}

	// Set client options
	clientOptions := options.Client().ApplyURI(mongoURI)

	// Set connection timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to MongoDB
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB")

	// Use database name from URI or default to "vehicle_management"
	dbName := cs.Database
	if dbName == "" {
		dbName = "vehicle_management"
	}

	db := client.Database(dbName)

	// Initialize indexes
	if err := createIndexes(db); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	return db, nil
}

// createIndexes creates necessary indexes for all collections
func createIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Users collection indexes
	usersCollection := db.Collection("users")
	userIndexes := []mongo.IndexModel{
		{
			Keys:    map[string]interface{}{"email": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: map[string]interface{}{"role": 1},
		},
		{
			Keys: map[string]interface{}{"created_at": 1},
		},
	}

	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		log.Printf("Failed to create user indexes: %v", err)
	}

	// Vehicles collection indexes
	vehiclesCollection := db.Collection("vehicles")
	vehicleIndexes := []mongo.IndexModel{
		{
			Keys:    map[string]interface{}{"plate_number": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: map[string]interface{}{"model_id": 1},
		},
		{
			Keys: map[string]interface{}{"is_available": 1},
		},
		{
			Keys: map[string]interface{}{"created_at": 1},
		},
	}

	if _, err := vehiclesCollection.Indexes().CreateMany(ctx, vehicleIndexes); err != nil {
		log.Printf("Failed to create vehicle indexes: %v", err)
	}

	// Vehicle models collection indexes
	modelsCollection := db.Collection("vehicle_models")
	modelIndexes := []mongo.IndexModel{
		{
			Keys: map[string]interface{}{"name": 1},
		},
		{
			Keys: map[string]interface{}{"brand": 1},
		},
		{
			Keys: map[string]interface{}{"created_at": 1},
		},
	}

	if _, err := modelsCollection.Indexes().CreateMany(ctx, modelIndexes); err != nil {
		log.Printf("Failed to create vehicle model indexes: %v", err)
	}

	// Actions collection indexes
	actionsCollection := db.Collection("actions")
	actionIndexes := []mongo.IndexModel{
		{
			Keys: map[string]interface{}{"user_id": 1},
		},
		{
			Keys: map[string]interface{}{"vehicle_id": 1},
		},
		{
			Keys: map[string]interface{}{"action_type": 1},
		},
		{
			Keys: map[string]interface{}{"created_at": -1},
		},
	}

	if _, err := actionsCollection.Indexes().CreateMany(ctx, actionIndexes); err != nil {
		log.Printf("Failed to create action indexes: %v", err)
	}

	log.Println("Database indexes created successfully")
	return nil
}

// Disconnect closes the MongoDB connection
func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %v", err)
	}

	log.Println("Disconnected from MongoDB")
	return nil
}

// Health checks the database connection health
func Health(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.Client().Ping(ctx, nil)
}
