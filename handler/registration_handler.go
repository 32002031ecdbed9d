package handler

import (
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type registrationRequest struct {
	Username    string `json:"username" binding:"required,min=4,max=20"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,phone"`
	Password    string `json:"password" binding:"required,password"`
}

func RegistrationHandler(c *gin.Context, usersService *usecase.UsersService) {
	var req registrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user := &model.User{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}

	if err := usersService.RegisterUser(c.Request.Context(), user, req.Password); err != nil {
		switch err {
		case usecase.ErrUsernameTaken, usecase.ErrEmailTaken:
			utils.Conflict(c, err.Error())
		default:
			utils.InternalError(c, "Failed to register user")
		}
		return
	}

	token, refreshToken, err := usersService.IssueTokens(c.Request.Context(), user)
	if err != nil {
		utils.InternalError(c, "Failed to generate tokens")
		return
	}

	utils.Created(c, gin.H{
		"user_id": user.UserID,
		"token":   token,
		"refresh": refreshToken,
	})
}
