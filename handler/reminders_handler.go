package handler

import (
	"strings"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	service *usecase.RemindersService
}

func NewReminderHandler(service *usecase.RemindersService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Title       string                `json:"title" binding:"required"`
		Notes       string                `json:"notes"`
		TriggerDate time.Time             `json:"trigger_date" binding:"required"`
		Recurrence  *model.RecurrenceRule `json:"recurrence,omitempty"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	reminder := &model.Reminder{
		UserID:      userID.(string),
		Title:       req.Title,
		Notes:       req.Notes,
		TriggerDate: req.TriggerDate,
		Recurrence:  req.Recurrence,
	}

	if err := h.service.CreateReminder(c.Request.Context(), reminder); err != nil {
		if strings.Contains(err.Error(), "invalid recurrence") ||
			strings.Contains(err.Error(), "days of week") ||
			strings.Contains(err.Error(), "is required") {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Created(c, dto.ToReminderResponse(reminder))
}

func (h *ReminderHandler) GetUserReminders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	reminders, err := h.service.GetUserReminders(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToReminderResponses(reminders))
}

func (h *ReminderHandler) GetCompletedReminders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	reminders, err := h.service.GetCompletedReminders(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToReminderResponses(reminders))
}

func (h *ReminderHandler) GetReminder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	reminderID := c.Param("id")
	if reminderID == "" {
		utils.BadRequest(c, "Missing reminder ID")
		return
	}

	reminder, err := h.service.GetReminder(c.Request.Context(), userID.(string), reminderID)
	if err != nil {
		if err == repository.ErrReminderNotFound {
			utils.NotFound(c, "Reminder not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToReminderResponse(reminder))
}

func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	reminderID := c.Param("id")
	if reminderID == "" {
		utils.BadRequest(c, "Missing reminder ID")
		return
	}

	var updates model.Reminder
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateReminder(c.Request.Context(), reminderID, userID.(string), &updates)
	if err != nil {
		if err == repository.ErrReminderNotFound {
			utils.NotFound(c, "Reminder not found")
			return
		}
		if strings.Contains(err.Error(), "invalid recurrence") ||
			strings.Contains(err.Error(), "days of week") {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToReminderResponse(updated))
}

// CompleteReminder marks the reminder done. A recurring reminder returns
// still active with its trigger date moved to the next occurrence.
func (h *ReminderHandler) CompleteReminder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	reminderID := c.Param("id")
	if reminderID == "" {
		utils.BadRequest(c, "Missing reminder ID")
		return
	}

	reminder, err := h.service.CompleteReminder(c.Request.Context(), reminderID, userID.(string), time.Now())
	if err != nil {
		if err == repository.ErrReminderNotFound {
			utils.NotFound(c, "Reminder not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToReminderResponse(reminder))
}

func (h *ReminderHandler) SnoozeReminder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	reminderID := c.Param("id")
	if reminderID == "" {
		utils.BadRequest(c, "Missing reminder ID")
		return
	}

	var req struct {
		SnoozedUntil time.Time `json:"snoozed_until" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid snooze time")
		return
	}

	reminder, err := h.service.SnoozeReminder(c.Request.Context(), reminderID, userID.(string), req.SnoozedUntil)
	if err != nil {
		if err == repository.ErrReminderNotFound {
			utils.NotFound(c, "Reminder not found")
			return
		}
		if strings.Contains(err.Error(), "must be in the future") {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToReminderResponse(reminder))
}

func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	reminderID := c.Param("id")
	if reminderID == "" {
		utils.BadRequest(c, "Missing reminder ID")
		return
	}

	if err := h.service.DeleteReminder(c.Request.Context(), reminderID, userID.(string)); err != nil {
		if err == repository.ErrReminderNotFound {
			utils.NotFound(c, "Reminder not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Reminder deleted successfully"})
}

func (h *ReminderHandler) CountUserReminders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	count, err := h.service.RemindersRepo.CountActiveReminders(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"count": count})
}
