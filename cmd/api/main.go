// Package main provides the backend API server.
//
// This is a deliberately small HTTP service: one fixed business endpoint, a
// health probe, and a metrics endpoint. The container built from it is what
// the ECS service in stacks runs behind the load balancer.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stackmesa/backend-api/internal/api"
	"github.com/stackmesa/backend-api/internal/metrics"
)

// Config holds server configuration from environment variables.
type Config struct {
	// ListenAddr is the address to listen on. The container port in the
	// task definition must match.
	ListenAddr string `env:"API_LISTEN_ADDR" envDefault:":80"`

	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string `env:"API_LOG_LEVEL" envDefault:"info"`

	// LogFormat is the log format (json, console).
	LogFormat string `env:"API_LOG_FORMAT" envDefault:"json"`

	// InstanceID is this task instance's UUID (auto-generated if not provided).
	InstanceID string `env:"API_INSTANCE_ID"`

	// ImageRevision is stamped into the image at build time.
	ImageRevision string `env:"IMAGE_REVISION" envDefault:"dev"`
}

// parseConfig reads configuration from the environment.
func parseConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Generate instance ID if not provided
	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.New().String()
	}
	if _, err := uuid.Parse(cfg.InstanceID); err != nil {
		return nil, fmt.Errorf("invalid instance ID format: %w", err)
	}

	return &cfg, nil
}

// setupLogger creates a Zap logger based on configuration.
func setupLogger(cfg *Config) (*zap.Logger, error) {
	// Parse log level
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	// Create logger config
	var zapConfig zap.Config
	if cfg.LogFormat == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	// Build logger
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}

func main() {
	// Parse configuration
	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting backend-api",
		zap.String("instance_id", cfg.InstanceID),
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("log_level", cfg.LogLevel),
		zap.String("image_revision", cfg.ImageRevision),
	)

	// Initialize metrics
	metrics.MustInit()

	// Setup HTTP router
	router := api.SetupRouter(&api.RouterConfig{
		Logger:     logger,
		InstanceID: cfg.InstanceID,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown: ECS sends SIGTERM before it kills the task.
	done := make(chan error, 1)
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		logger.Info("shutting down", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		done <- srv.Shutdown(ctx)
	}()

	// Start HTTP server
	logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server failed", zap.Error(err))
	}

	if err := <-done; err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
	logger.Info("server stopped")
}
