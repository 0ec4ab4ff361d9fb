package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexanderModestov/baby-sleep-pred/internal/storage"
)

// Completed sessions fed into the forecast prompt.
const predictHistoryLimit = 7

func GetPredictSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		childID, err := pathID(c, "id")
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid child id")
			return
		}

		child, err := app.Children().GetChild(c.Request.Context(), childID)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Child not found"})
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch child")
			return
		}

		history, err := app.Sessions().ListCompletedSessions(c.Request.Context(), childID, predictHistoryLimit)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch sleep history")
			return
		}

		prediction := app.Predictor().Predict(c.Request.Context(), child, history)
		c.JSON(http.StatusOK, prediction)
	}
}
