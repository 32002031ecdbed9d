package handler

import (
	"io"

	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// PushStreamHandler holds an SSE connection open and relays the user's push
// channel to the device. Devices re-arm their local alarms from these events
// instead of polling the store.
func PushStreamHandler(c *gin.Context, publisher *services.PushPublisher, devicesRepo *repository.DevicesRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	// A device identifies itself so its registry entry stays fresh while the
	// stream is open.
	if deviceID := c.Query("device_id"); deviceID != "" {
		if err := devicesRepo.UpdateLastActive(c.Request.Context(), deviceID); err != nil {
			utils.TrackError("push", "device_touch_failed")
		}
	}

	sub := publisher.Subscribe(c.Request.Context(), userID.(string))
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	ch := sub.Channel()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("push", msg.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
