package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	c.JSON(status, gin.H{"error": msg + ": " + err.Error()})
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
