package dto

import (
	"time"

	"main/model"
)

type ReminderResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Notes        string                `json:"notes,omitempty"`
	TriggerDate  time.Time             `json:"trigger_date"`
	Recurrence   *model.RecurrenceRule `json:"recurrence,omitempty"`
	Status       model.ReminderStatus  `json:"status"`
	SnoozedUntil *time.Time            `json:"snoozed_until,omitempty"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	Overdue      bool                  `json:"overdue"`
	TimeUntil    string                `json:"time_until,omitempty"` // computed field
}

// Convert model.Reminder to ReminderResponse
func ToReminderResponse(reminder *model.Reminder) ReminderResponse {
	response := ReminderResponse{
		ID:           reminder.ReminderID,
		Title:        reminder.Title,
		Notes:        reminder.Notes,
		TriggerDate:  reminder.TriggerDate,
		Recurrence:   reminder.Recurrence,
		Status:       reminder.Status,
		SnoozedUntil: reminder.SnoozedUntil,
		CompletedAt:  reminder.CompletedAt,
		CreatedAt:    reminder.CreatedAt,
		UpdatedAt:    reminder.UpdatedAt,
	}

	if reminder.Status == model.StatusActive {
		display := reminder.DisplayDate()
		if display.Before(time.Now()) {
			response.Overdue = true
			response.TimeUntil = "Overdue"
		} else {
			response.TimeUntil = time.Until(display).Round(time.Minute).String()
		}
	}

	return response
}

// Convert slice of model.Reminder to slice of ReminderResponse
func ToReminderResponses(reminders []*model.Reminder) []ReminderResponse {
	responses := make([]ReminderResponse, len(reminders))
	for i, reminder := range reminders {
		responses[i] = ToReminderResponse(reminder)
	}
	return responses
}

type DeviceResponse struct {
	DeviceID     string    `json:"device_id"`
	Platform     string    `json:"platform"`
	DeviceName   string    `json:"device_name"`
	AppVersion   string    `json:"app_version"`
	LastActiveAt time.Time `json:"last_active_at"`
}

func ToDeviceResponse(device *model.Device) DeviceResponse {
	return DeviceResponse{
		DeviceID:     device.DeviceID,
		Platform:     device.Platform,
		DeviceName:   device.DeviceName,
		AppVersion:   device.AppVersion,
		LastActiveAt: device.LastActiveAt,
	}
}

func ToDeviceResponses(devices []*model.Device) []DeviceResponse {
	responses := make([]DeviceResponse, len(devices))
	for i, device := range devices {
		responses[i] = ToDeviceResponse(device)
	}
	return responses
}
