package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hsm-gustavo/users-graphql/internal/api/auth"
	"github.com/hsm-gustavo/users-graphql/internal/api/routes"
	"github.com/hsm-gustavo/users-graphql/internal/config"
	"github.com/hsm-gustavo/users-graphql/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	database, err := db.Connect(context.Background(), cfg.Mongo)
	if err != nil {
		logger.Error("Unable to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer database.Client().Disconnect(context.Background())

	if err := db.RunMigrations(cfg.Mongo.URI); err != nil {
		logger.Error("Error applying migrations", "error", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		logger.Error("Error creating token service", "error", err)
		os.Exit(1)
	}

	router, err := routes.SetupRoutes(database, tokens, logger)
	if err != nil {
		logger.Error("Error building schema", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starts server in a goroutine
	go func() {
		logger.Info("Server running", "port", cfg.Server.Port)
		err := server.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting the server", "error", err)
			os.Exit(1)
		}
	}()

	// channel to capture quit signals (e.g. CTRL+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down the server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error on server shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server shut down successfully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
