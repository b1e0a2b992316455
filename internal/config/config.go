package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	DataFile         string   `env:"DATA_FILE" envDefault:"data.csv"`
	FetchURL         string   `env:"FETCH_URL" envDefault:"-"`
	LogLevel         string   `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout   int      `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds
	AmountZThreshold float64  `env:"AMOUNT_Z_THRESHOLD" envDefault:"2.0"`
	DistanceSigma    float64  `env:"DISTANCE_SIGMA" envDefault:"2.0"`
	ZScoreEpsilon    float64  `env:"Z_SCORE_EPSILON" envDefault:"1e-9"`
	Categories       []string `env:"CATEGORIES" envDefault:""` // comma-separated, empty = all
	AnomaliesOnly    bool     `env:"ANOMALIES_ONLY" envDefault:"false"`
	TopAlerts        int      `env:"TOP_ALERTS" envDefault:"20"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.DataFile = getEnvWithDefault("DATA_FILE", "data.csv")
	cfg.FetchURL = os.Getenv("FETCH_URL")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)
	cfg.AmountZThreshold = getEnvFloatWithDefault("AMOUNT_Z_THRESHOLD", 2.0)
	cfg.DistanceSigma = getEnvFloatWithDefault("DISTANCE_SIGMA", 2.0)
	cfg.ZScoreEpsilon = getEnvFloatWithDefault("Z_SCORE_EPSILON", 1e-9)
	cfg.Categories = getEnvListWithDefault("CATEGORIES", nil)
	cfg.AnomaliesOnly = getEnvBoolWithDefault("ANOMALIES_ONLY", false)
	cfg.TopAlerts = getEnvIntWithDefault("TOP_ALERTS", 20)

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvListWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
