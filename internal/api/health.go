package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Baby Sleep Tracker API is running",
		})
	}
}
