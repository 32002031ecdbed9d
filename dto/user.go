package dto

import (
	"time"

	"main/model"
)

type UserLink struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

type UserProfileResponse struct {
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	PhoneNumber string              `json:"phone_number,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Links       map[string]UserLink `json:"_links,omitempty"` // HAL UserLinks
}

func ToUserProfileResponse(user *model.User, links map[string]UserLink) UserProfileResponse {
	return UserProfileResponse{
		Username:    user.Username,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
		Links:       links,
	}
}

type SessionResponse struct {
	SessionID      string    `json:"session_id"`
	DisplayName    string    `json:"display_name"`
	DeviceInfo     string    `json:"device_info"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	Current        bool      `json:"current"`
}

func ToSessionResponse(session *model.Session, currentID string) SessionResponse {
	return SessionResponse{
		SessionID:      session.SessionID,
		DisplayName:    session.DisplayName,
		DeviceInfo:     session.DeviceInfo,
		CreatedAt:      session.CreatedAt,
		LastActivityAt: session.LastActivityAt,
		Current:        session.SessionID == currentID,
	}
}
