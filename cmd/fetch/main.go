package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexcpass/fraud-test-kaggle/internal/config"
	"github.com/alexcpass/fraud-test-kaggle/internal/fetch"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.LogLevel)

	if cfg.FetchURL == "" {
		log.Fatal().Msg("FETCH_URL is required")
	}

	// 2. Download the dataset to the configured data file
	downloader := fetch.New(fetch.Options{
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: 5,
	})
	if err := downloader.Download(ctx, cfg.FetchURL, cfg.DataFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to download dataset")
	}
}

// setupSignalHandling configures signal handling for graceful shutdown
func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

// setupLogging configures the logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
