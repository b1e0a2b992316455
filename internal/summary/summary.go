package summary

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/alexcpass/fraud-test-kaggle/internal/model"
)

// Summary holds the headline reductions a dashboard shows for the current
// filtered view. All of them are single passes over the view.
type Summary struct {
	Rows              int
	TotalAmount       decimal.Decimal // exact sum of parsable amounts
	FraudRate         float64         // share of rows with the ground-truth label
	MeanDistanceKM    float64
	AmountAnomalies   int
	DistanceAnomalies int
}

// Compute reduces a (possibly filtered) view to its headline numbers. An
// empty view yields a zero Summary.
func Compute(view []model.ScoredTransaction) Summary {
	s := Summary{Rows: len(view), TotalAmount: decimal.Zero}
	if len(view) == 0 {
		return s
	}

	var frauds int
	var distSum float64
	var distCount int
	for i := range view {
		if view[i].AmountOK {
			s.TotalAmount = s.TotalAmount.Add(view[i].Amount)
		}
		if view[i].IsFraud {
			frauds++
		}
		if d := view[i].DistanceKM; !math.IsNaN(d) {
			distSum += d
			distCount++
		}
		if view[i].IsAmountAnomaly {
			s.AmountAnomalies++
		}
		if view[i].IsDistanceAnomaly {
			s.DistanceAnomalies++
		}
	}

	s.FraudRate = float64(frauds) / float64(len(view))
	if distCount > 0 {
		s.MeanDistanceKM = distSum / float64(distCount)
	}
	return s
}

// TopAlerts returns up to n rows sorted by amount z-score descending. The
// input view is left untouched. NaN scores sort last.
func TopAlerts(view []model.ScoredTransaction, n int) []model.ScoredTransaction {
	out := make([]model.ScoredTransaction, len(view))
	copy(out, view)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].AmountZScore, out[j].AmountZScore
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		if math.IsNaN(a) {
			return false
		}
		return a > b
	})

	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
