package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AlexanderModestov/baby-sleep-pred/internal/service"
)

func PostSleepSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.StartSessionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid JSON")
			return
		}
		if err := service.ValidateStartSessionRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Validation failed")
			return
		}

		session, err := service.StartSession(c.Request.Context(), app.Sessions(), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to start sleep session")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         session.ID,
			"child_id":   session.ChildID,
			"start_time": session.StartTime,
			"is_ongoing": true,
		})
	}
}

func PutSleepSessionEnd(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid session id")
			return
		}

		var body service.EndSessionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid JSON")
			return
		}
		if err := service.ValidateEndSessionRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Validation failed")
			return
		}

		if err := service.EndSession(c.Request.Context(), app.Sessions(), id, &body); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to end sleep session")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         id,
			"end_time":   body.EndTime,
			"quality":    body.Quality,
			"is_ongoing": false,
		})
	}
}

func GetSleepSessions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		childID, err := pathID(c, "id")
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid child id")
			return
		}

		// A missing or non-numeric limit falls back to the default.
		limit, err := strconv.Atoi(c.Query("limit"))
		if err != nil {
			limit = service.DefaultSessionLimit
		}

		sessions, err := service.ListSessions(c.Request.Context(), app.Sessions(), childID, limit)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch sleep sessions")
			return
		}

		c.JSON(http.StatusOK, sessions)
	}
}

func GetOngoingSleepSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		childID, err := pathID(c, "id")
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Invalid child id")
			return
		}

		session, err := service.GetOngoingSession(c.Request.Context(), app.Sessions(), childID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch ongoing session")
			return
		}

		if session == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}
