package handler

import (
	"net/http"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func GetUserProfileHandler(c *gin.Context, usersService *usecase.UsersService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := usersService.UsersRepo.FindUserByID(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Could not fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	baseURL := utils.GetBaseURL(c)
	links := map[string]dto.UserLink{
		"self":      {Href: baseURL + "/user", Method: http.MethodGet},
		"reminders": {Href: baseURL + "/reminders", Method: http.MethodGet},
		"sessions":  {Href: baseURL + "/sessions", Method: http.MethodGet},
		"devices":   {Href: baseURL + "/devices", Method: http.MethodGet},
	}

	utils.Success(c, dto.ToUserProfileResponse(user, links))
}
