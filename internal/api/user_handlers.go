package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexanderModestov/baby-sleep-pred/internal/service"
)

func PostUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.UserRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid JSON")
			return
		}
		if err := service.ValidateUserRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Validation failed")
			return
		}

		user, err := service.UpsertUser(c.Request.Context(), app.Users(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save user")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"telegram_id": user.TelegramID,
			"username":    user.Username,
			"first_name":  user.FirstName,
		})
	}
}
