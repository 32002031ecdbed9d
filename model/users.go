package model

import "time"

type User struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	Username     string    `bson:"username" json:"username" validate:"required,min=4,max=20"`
	Email        string    `bson:"email" json:"email" validate:"required,email"`
	PhoneNumber  string    `bson:"phone_number,omitempty" json:"phone_number,omitempty" validate:"omitempty,phone"`
	Password     string    `bson:"password" json:"-"` // argon2id hash, never serialized
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	Token        string    `bson:"token" json:"token"`
	RefreshToken string    `bson:"refresh_token" json:"refresh_token"`
}
