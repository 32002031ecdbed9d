package model

import "time"

// Device is one entry in a user's device registry. Every signed-in app
// install registers itself here so reminder mutations can be pushed to all
// of the user's devices.
type Device struct {
	DeviceID     string    `bson:"_id" json:"device_id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	PushToken    string    `bson:"push_token" json:"push_token"`
	Platform     string    `bson:"platform" json:"platform"` // "android" / "ios"
	DeviceName   string    `bson:"device_name" json:"device_name"`
	AppVersion   string    `bson:"app_version" json:"app_version"`
	LastActiveAt time.Time `bson:"last_active_at" json:"last_active_at"`
}
