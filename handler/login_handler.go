package handler

import (
	"main/middleware"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func LoginHandler(c *gin.Context, usersService *usecase.UsersService, sessionRepo *repository.SessionRepo) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	user, err := usersService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if err == usecase.ErrInvalidCredentials {
			utils.Unauthorized(c, "Invalid username or password")
			return
		}
		utils.InternalError(c, "Failed to authenticate")
		return
	}

	token, refreshToken, err := usersService.IssueTokens(c.Request.Context(), user)
	if err != nil {
		utils.InternalError(c, "Failed to generate tokens")
		return
	}

	if _, err := middleware.CreateSession(c, user.UserID, sessionRepo); err != nil {
		utils.InternalError(c, "Failed to create session")
		return
	}

	utils.Success(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"refresh": refreshToken,
	})
}
