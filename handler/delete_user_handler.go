package handler

import (
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// DeleteUserHandler removes the account, its reminders and devices, and ends
// every session so push fan-out stops.
func DeleteUserHandler(c *gin.Context, usersService *usecase.UsersService, sessionRepo *repository.SessionRepo, remindersRepo *repository.RemindersRepo, devicesRepo *repository.DevicesRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	ctx := c.Request.Context()

	if err := remindersRepo.DeleteAllUserReminders(ctx, userID.(string)); err != nil {
		utils.InternalError(c, "Failed to delete reminders")
		return
	}
	if err := devicesRepo.DeleteAllUserDevices(ctx, userID.(string)); err != nil {
		utils.InternalError(c, "Failed to delete devices")
		return
	}
	if err := sessionRepo.EndAllUserSessions(userID.(string)); err != nil {
		utils.InternalError(c, "Failed to end sessions")
		return
	}
	if err := usersService.UsersRepo.DeleteUser(ctx, userID.(string)); err != nil {
		utils.InternalError(c, "Failed to delete account")
		return
	}

	c.SetCookie("session_id", "", -1, "/", "", true, true)
	utils.Success(c, gin.H{"message": "Account deleted"})
}
