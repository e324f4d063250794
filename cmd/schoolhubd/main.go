package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"school-hub-backend/config"
	"school-hub-backend/internal/api"
	"school-hub-backend/internal/assets"
	"school-hub-backend/internal/db"
	"school-hub-backend/internal/school"
	"school-hub-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "school-hub ", log.LstdFlags)

	// Optional .env file for local development; real deployments set the
	// environment directly.
	if err := godotenv.Load(); err == nil {
		logger.Println(".env file loaded")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded (uploads_enabled=%t)", cfg.School.UploadsEnabled)

	// The store connects lazily on first use, so startup succeeds even while
	// the database is still coming up.
	conn := db.New(&cfg.Database)
	appStore := store.NewGormStore(conn)

	gateway := assets.NewGateway(cfg.Assets.Dir)

	svc := school.NewService(appStore, gateway, school.Options{
		UploadsEnabled:  cfg.School.UploadsEnabled,
		DefaultImageURL: cfg.School.DefaultImageURL,
		MaxUploadBytes:  cfg.Assets.MaxUploadBytes,
	})

	router := api.NewRouter(cfg, svc, gateway)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
