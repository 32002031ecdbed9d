package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	remindersCollection := db.Collection("reminders")
	devicesCollection := db.Collection("devices")
	sessionsCollection := db.Collection("sessions")
	usersCollection := db.Collection("users")

	reminderIndexes := []mongo.IndexModel{
		// Listing: a user's reminders ordered by trigger date
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "trigger_date", Value: 1},
			},
			Options: options.Index().
				SetName("user_reminders_trigger").
				SetUnique(false),
		},
		// Scheduler scan: due active reminders
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "trigger_date", Value: 1},
			},
			Options: options.Index().
				SetName("due_reminders_scan"),
		},
	}

	deviceIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_devices"),
		},
		{
			Keys: bson.D{{Key: "last_active_at", Value: 1}},
			Options: options.Index().
				SetName("device_last_active"),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().
				SetName("session_id_index").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().
				SetName("user_active_sessions"),
		},
		// Mongo reaps expired session documents itself
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("session_ttl").
				SetExpireAfterSeconds(0),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_index").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_index").
				SetUnique(true),
		},
	}

	if _, err := remindersCollection.Indexes().CreateMany(ctx, reminderIndexes); err != nil {
		return fmt.Errorf("failed to create reminder indexes: %w", err)
	}
	if _, err := devicesCollection.Indexes().CreateMany(ctx, deviceIndexes); err != nil {
		return fmt.Errorf("failed to create device indexes: %w", err)
	}
	if _, err := sessionsCollection.Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
