package api

import "github.com/gin-gonic/gin"

// NewRouter wires all routes onto a fresh engine.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/api/health", GetHealth())
	r.POST("/api/users", PostUser(app))
	r.GET("/api/users/:id/children", GetChildren(app))
	r.POST("/api/children", PostChild(app))
	r.PUT("/api/children/:id", PutChild(app))
	r.DELETE("/api/children/:id", DeleteChild(app))
	r.POST("/api/sleep-sessions", PostSleepSession(app))
	r.PUT("/api/sleep-sessions/:id/end", PutSleepSessionEnd(app))
	r.GET("/api/children/:id/sleep-sessions", GetSleepSessions(app))
	r.GET("/api/children/:id/sleep-sessions/ongoing", GetOngoingSleepSession(app))
	r.GET("/api/children/:id/predict-sleep", GetPredictSleep(app))

	return r
}
