package summary

import (
	"github.com/alexcpass/fraud-test-kaggle/internal/model"
)

// AgeBand is a demographic bucket for the hour-of-day risk matrix.
type AgeBand string

const (
	AgeYouth   AgeBand = "Youth (0-25)"
	AgeAdult   AgeBand = "Adult (26-40)"
	AgeSenior  AgeBand = "Senior (41-60)"
	AgeElderly AgeBand = "Elderly (60+)"
)

// AgeBands lists the buckets in display order.
var AgeBands = []AgeBand{AgeYouth, AgeAdult, AgeSenior, AgeElderly}

// ageBand buckets an age using half-open (lo, hi] intervals. Ages outside
// (0, 100] fall in no band, matching the source dashboard's binning.
func ageBand(age int) (AgeBand, bool) {
	if age <= 0 || age > 100 {
		return "", false
	}
	switch {
	case age <= 25:
		return AgeYouth, true
	case age <= 40:
		return AgeAdult, true
	case age <= 60:
		return AgeSenior, true
	default:
		return AgeElderly, true
	}
}

// RiskMatrix counts confirmed frauds per age band and hour of day over a
// view. Rows with an undefined age or hour are skipped.
func RiskMatrix(view []model.ScoredTransaction) map[AgeBand][]int {
	m := make(map[AgeBand][]int, len(AgeBands))
	for _, band := range AgeBands {
		m[band] = make([]int, 24)
	}

	for i := range view {
		if !view[i].IsFraud || view[i].Age == nil || view[i].Hour == nil {
			continue
		}
		band, ok := ageBand(*view[i].Age)
		if !ok {
			continue
		}
		m[band][*view[i].Hour]++
	}
	return m
}
