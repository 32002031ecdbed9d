package handler

import (
	"strings"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	repo *repository.DevicesRepo
}

func NewDeviceHandler(repo *repository.DevicesRepo) *DeviceHandler {
	return &DeviceHandler{repo: repo}
}

// RegisterDevice upserts the calling device in the push registry. Clients
// call this on every sign-in and whenever their push token rotates.
func (h *DeviceHandler) RegisterDevice(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		DeviceID   string `json:"device_id" binding:"required"`
		PushToken  string `json:"push_token" binding:"required"`
		Platform   string `json:"platform" binding:"required,oneof=ios android web"`
		DeviceName string `json:"device_name"`
		AppVersion string `json:"app_version"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	device := &model.Device{
		DeviceID:   req.DeviceID,
		UserID:     userID.(string),
		PushToken:  req.PushToken,
		Platform:   req.Platform,
		DeviceName: req.DeviceName,
		AppVersion: req.AppVersion,
	}

	if err := h.repo.RegisterDevice(c.Request.Context(), device); err != nil {
		utils.InternalError(c, "Failed to register device")
		return
	}

	utils.Success(c, gin.H{"message": "Device registered"})
}

func (h *DeviceHandler) GetUserDevices(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	devices, err := h.repo.GetUserDevices(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch devices")
		return
	}

	utils.Success(c, dto.ToDeviceResponses(devices))
}

func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	deviceID := c.Param("id")
	if deviceID == "" {
		utils.BadRequest(c, "Missing device ID")
		return
	}

	if err := h.repo.DeleteDevice(c.Request.Context(), deviceID, userID.(string)); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFound(c, "Device not found")
			return
		}
		utils.InternalError(c, "Failed to delete device")
		return
	}

	utils.Success(c, gin.H{"message": "Device removed"})
}
