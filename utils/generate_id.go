package utils

import (
	"github.com/google/uuid"
)

func GenerateUserID() string {
	return uuid.New().String()
}

func GenerateReminderID() string {
	return uuid.New().String()
}
