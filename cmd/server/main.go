package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlexanderModestov/baby-sleep-pred/internal"
	"github.com/AlexanderModestov/baby-sleep-pred/internal/api"
	"github.com/AlexanderModestov/baby-sleep-pred/internal/config"
	"github.com/AlexanderModestov/baby-sleep-pred/internal/forecast"
	"github.com/AlexanderModestov/baby-sleep-pred/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	var store storage.Storage
	switch cfg.DBType {
	case "postgres":
		store, err = storage.NewPostgres(cfg.DBDSN, logger)
	default:
		store, err = storage.NewSQLite(cfg.DBPath, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	apiKey := ""
	if cfg.GeminiConfigured() {
		apiKey = cfg.GeminiAPIKey
	} else {
		logger.Warnf("GEMINI_API_KEY not configured, predictions will use fixed defaults")
	}
	predictor := forecast.NewGeminiPredictor(cfg.GeminiBaseURL, apiKey, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	app := api.NewApp(logger, store, predictor)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.NewRouter(app),
	}

	go func() {
		logger.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}
