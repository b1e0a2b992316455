package score

import (
	"math"

	"github.com/alexcpass/fraud-test-kaggle/internal/model"
)

// Options controls the scoring thresholds. Zero values fall back to the
// defaults used by the dashboard.
type Options struct {
	// AmountZThreshold flags amounts whose z-score is strictly above it.
	AmountZThreshold float64
	// DistanceSigma is the multiplier on the global distance stddev.
	DistanceSigma float64
	// Epsilon is added to the stddev denominator so single-member and
	// zero-variance categories still produce a finite z-score.
	Epsilon float64
}

func (o Options) withDefaults() Options {
	if o.AmountZThreshold == 0 {
		o.AmountZThreshold = 2.0
	}
	if o.DistanceSigma == 0 {
		o.DistanceSigma = 2.0
	}
	if o.Epsilon == 0 {
		o.Epsilon = 1e-9
	}
	return o
}

// accumulator collects count, sum and sum of squares for one statistics key.
type accumulator struct {
	count int
	sum   float64
	sumSq float64
}

func (a *accumulator) add(v float64) {
	a.count++
	a.sum += v
	a.sumSq += v * v
}

func (a *accumulator) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// stddev is the population standard deviation. The variance is clamped at
// zero to absorb floating-point cancellation on near-constant groups.
func (a *accumulator) stddev() float64 {
	if a.count == 0 {
		return 0
	}
	m := a.mean()
	v := a.sumSq/float64(a.count) - m*m
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// Apply computes the anomaly signals over a fully enriched batch. It is a
// pure transform: two aggregation passes build the per-category amount
// statistics and the global distance statistics, then every row is scored by
// key lookup. Output order matches input order; running it twice on the same
// batch yields identical output.
//
// Rows whose amount or distance is NaN are excluded from the aggregates and
// can never be flagged, since NaN fails every strict comparison.
func Apply(rows []model.EnrichedTransaction, opts Options) ([]model.ScoredTransaction, map[string]model.CategoryStatistic, model.GlobalDistanceStatistic) {
	opts = opts.withDefaults()

	// First pass: accumulate per-category amount and global distance sums.
	byCategory := make(map[string]*accumulator)
	var distance accumulator
	for i := range rows {
		if amt := rows[i].AmountFloat(); !math.IsNaN(amt) {
			acc := byCategory[rows[i].Category]
			if acc == nil {
				acc = &accumulator{}
				byCategory[rows[i].Category] = acc
			}
			acc.add(amt)
		}
		if d := rows[i].DistanceKM; !math.IsNaN(d) {
			distance.add(d)
		}
	}

	// Second pass: finalize the statistics.
	catStats := make(map[string]model.CategoryStatistic, len(byCategory))
	for cat, acc := range byCategory {
		catStats[cat] = model.CategoryStatistic{
			Category:     cat,
			Count:        acc.count,
			MeanAmount:   acc.mean(),
			StddevAmount: acc.stddev(),
		}
	}
	global := model.GlobalDistanceStatistic{
		Count:    distance.count,
		MeanKM:   distance.mean(),
		StddevKM: distance.stddev(),
	}

	// Score every row against the published statistics.
	distanceThreshold := global.MeanKM + opts.DistanceSigma*global.StddevKM
	out := make([]model.ScoredTransaction, len(rows))
	for i := range rows {
		s := model.ScoredTransaction{EnrichedTransaction: rows[i]}

		amt := rows[i].AmountFloat()
		if stat, ok := catStats[rows[i].Category]; ok {
			s.AmountZScore = (amt - stat.MeanAmount) / (stat.StddevAmount + opts.Epsilon)
		} else {
			s.AmountZScore = math.NaN()
		}
		s.IsAmountAnomaly = s.AmountZScore > opts.AmountZThreshold
		s.IsDistanceAnomaly = rows[i].DistanceKM > distanceThreshold

		out[i] = s
	}
	return out, catStats, global
}
