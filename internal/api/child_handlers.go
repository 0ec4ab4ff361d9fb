package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexanderModestov/baby-sleep-pred/internal/service"
)

func GetChildren(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := pathID(c, "id")
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid user id")
			return
		}

		children, err := app.Children().ListChildren(c.Request.Context(), userID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch children")
			return
		}

		c.JSON(http.StatusOK, children)
	}
}

func PostChild(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.ChildRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid JSON")
			return
		}
		if err := service.ValidateChildRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Validation failed")
			return
		}

		child, err := service.CreateChild(c.Request.Context(), app.Children(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to create child")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         child.ID,
			"user_id":    child.UserID,
			"name":       child.Name,
			"birth_date": child.BirthDate,
			"gender":     child.Gender,
		})
	}
}

func PutChild(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid child id")
			return
		}

		var body service.ChildUpdateRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid JSON")
			return
		}
		if err := service.ValidateChildUpdateRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Validation failed")
			return
		}

		child, err := service.UpdateChild(c.Request.Context(), app.Children(), id, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update child")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         child.ID,
			"name":       child.Name,
			"birth_date": child.BirthDate,
			"gender":     child.Gender,
		})
	}
}

func DeleteChild(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid child id")
			return
		}

		if err := app.Children().DeleteChild(c.Request.Context(), id); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to delete child")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Child deleted successfully"})
	}
}
