package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DevicesRepo struct {
	MongoCollection *mongo.Collection
}

func GetDevicesRepo(client *mongo.Client) *DevicesRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("DEVICES_COLLECTION", "devices")
	return &DevicesRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// RegisterDevice upserts a device registry entry keyed by device ID. Every
// sign-in and push-token refresh lands here, so it must be idempotent.
func (r *DevicesRepo) RegisterDevice(ctx context.Context, device *model.Device) error {
	timer := utils.TrackDBOperation("upsert", "devices")
	defer timer.ObserveDuration()

	if device.DeviceID == "" || device.UserID == "" {
		utils.TrackError("database", "invalid_device_data")
		return errors.New("device ID and user ID are required")
	}

	filter := bson.M{"_id": device.DeviceID}
	update := bson.M{
		"$set": bson.M{
			"user_id":        device.UserID,
			"push_token":     device.PushToken,
			"platform":       device.Platform,
			"device_name":    device.DeviceName,
			"app_version":    device.AppVersion,
			"last_active_at": time.Now(),
		},
	}

	_, err := r.MongoCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "device_registration_failed")
		return err
	}
	return nil
}

func (r *DevicesRepo) GetUserDevices(ctx context.Context, userID string) ([]*model.Device, error) {
	timer := utils.TrackDBOperation("find", "devices")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "device_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var devices []*model.Device
	if err = cursor.All(ctx, &devices); err != nil {
		utils.TrackError("database", "device_decode_failed")
		return nil, err
	}
	return devices, nil
}

func (r *DevicesRepo) UpdateLastActive(ctx context.Context, deviceID string) error {
	timer := utils.TrackDBOperation("update", "devices")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{"last_active_at": time.Now()}}
	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": deviceID}, update)
	if err != nil {
		utils.TrackError("database", "device_update_failed")
	}
	return err
}

func (r *DevicesRepo) DeleteDevice(ctx context.Context, deviceID, userID string) error {
	timer := utils.TrackDBOperation("delete", "devices")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": deviceID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "device_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("device not found")
	}
	return nil
}

// DeleteAllUserDevices clears the user's device registry, used when the
// account itself goes away
func (r *DevicesRepo) DeleteAllUserDevices(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "devices")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "device_deletion_failed")
	}
	return err
}

// PruneStaleDevices drops registry entries that have not checked in for the
// given age, so push fan-out stops targeting dead installs.
func (r *DevicesRepo) PruneStaleDevices(ctx context.Context, maxAge time.Duration) (int, error) {
	timer := utils.TrackDBOperation("delete", "devices")
	defer timer.ObserveDuration()

	cutoff := time.Now().Add(-maxAge)
	result, err := r.MongoCollection.DeleteMany(ctx, bson.M{"last_active_at": bson.M{"$lt": cutoff}})
	if err != nil {
		utils.TrackError("database", "device_prune_failed")
		return 0, err
	}
	return int(result.DeletedCount), nil
}
