package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alexcpass/fraud-test-kaggle/internal/enrich"
	"github.com/alexcpass/fraud-test-kaggle/internal/model"
	"github.com/alexcpass/fraud-test-kaggle/internal/score"
)

// Options bundles the stage parameters for one run.
type Options struct {
	// EvaluationTime pins the instant ages are computed against. Zero means
	// time.Now().
	EvaluationTime time.Time
	Scoring        score.Options
}

// Run executes enrichment then scoring over a raw batch and publishes the
// result as a single immutable snapshot. Scoring only starts once the whole
// batch is enriched, since it needs the full-batch aggregates. The caller
// hands the snapshot to every downstream consumer; nothing is cached here,
// re-running on the same batch produces the same rows and statistics.
func Run(raw []model.RawTransaction, opts Options) *model.Snapshot {
	logger := log.With().Str("component", "pipeline").Logger()

	start := time.Now()
	enriched := enrich.Apply(raw, enrich.Options{EvaluationTime: opts.EvaluationTime})
	logStage(logger, "enrich", len(enriched), start)

	start = time.Now()
	scored, catStats, global := score.Apply(enriched, opts.Scoring)
	logStage(logger, "score", len(scored), start)

	return &model.Snapshot{
		ID:             uuid.New(),
		GeneratedAt:    time.Now(),
		Transactions:   scored,
		CategoryStats:  catStats,
		GlobalDistance: global,
	}
}

func logStage(logger zerolog.Logger, stage string, rows int, start time.Time) {
	logger.Info().
		Str("stage", stage).
		Int("rows", rows).
		Dur("elapsed", time.Since(start)).
		Msg("stage complete")
}
