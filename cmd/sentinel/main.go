package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexcpass/fraud-test-kaggle/internal/config"
	"github.com/alexcpass/fraud-test-kaggle/internal/filter"
	"github.com/alexcpass/fraud-test-kaggle/internal/ingest"
	"github.com/alexcpass/fraud-test-kaggle/internal/model"
	"github.com/alexcpass/fraud-test-kaggle/internal/pipeline"
	"github.com/alexcpass/fraud-test-kaggle/internal/score"
	"github.com/alexcpass/fraud-test-kaggle/internal/summary"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	setupLogging(cfg.LogLevel)
	log.Info().Msg("Starting Fraud Sentinel")

	// 3. Ingest the transaction batch
	raw, err := ingest.LoadFile(cfg.DataFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.DataFile).Msg("Failed to load dataset")
	}

	// 4. Run enrichment and scoring
	snapshot := pipeline.Run(raw, pipeline.Options{
		Scoring: score.Options{
			AmountZThreshold: cfg.AmountZThreshold,
			DistanceSigma:    cfg.DistanceSigma,
			Epsilon:          cfg.ZScoreEpsilon,
		},
	})

	// 5. Apply the configured view filter
	categories := cfg.Categories
	if len(categories) == 0 {
		categories = snapshot.Categories()
	}
	view := filter.Apply(snapshot.Transactions, model.FilterCriteria{
		Categories:    categories,
		AnomaliesOnly: cfg.AnomaliesOnly,
	})

	// 6. Report the headline numbers
	printSummary(snapshot, view, cfg.TopAlerts)
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

func printSummary(snapshot *model.Snapshot, view []model.ScoredTransaction, topN int) {
	kpi := summary.Compute(view)

	log.Info().
		Int("rows", kpi.Rows).
		Str("total_amount", kpi.TotalAmount.StringFixed(2)).
		Float64("fraud_rate", kpi.FraudRate).
		Float64("mean_distance_km", kpi.MeanDistanceKM).
		Int("amount_anomalies", kpi.AmountAnomalies).
		Int("distance_anomalies", kpi.DistanceAnomalies).
		Msg("Filtered view")

	log.Info().
		Float64("mean_distance_km", snapshot.GlobalDistance.MeanKM).
		Float64("stddev_distance_km", snapshot.GlobalDistance.StddevKM).
		Int("categories", len(snapshot.CategoryStats)).
		Msg("Batch statistics")

	for _, alert := range summary.TopAlerts(view, topN) {
		event := log.Info().
			Str("category", alert.Category).
			Str("amount", alert.Amount.StringFixed(2)).
			Float64("z_score", alert.AmountZScore).
			Float64("distance_km", alert.DistanceKM).
			Bool("confirmed_fraud", alert.IsFraud)
		if alert.Timestamp != nil {
			event = event.Time("time", *alert.Timestamp)
		}
		event.Msg("Alert")
	}
}
