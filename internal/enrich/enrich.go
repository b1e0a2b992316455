package enrich

import (
	"math"
	"time"

	"github.com/alexcpass/fraud-test-kaggle/internal/model"
)

// Options controls the enrichment stage.
type Options struct {
	// EvaluationTime is the instant ages are computed against. Zero means
	// time.Now(). Tests pin it for reproducible output.
	EvaluationTime time.Time
}

// Apply derives the row-local features for every transaction: approximate
// age, hour of day and cardholder-to-merchant distance. Output length and
// order match the input exactly; rows with unparsable source fields keep nil
// derived values instead of being dropped.
func Apply(rows []model.RawTransaction, opts Options) []model.EnrichedTransaction {
	at := opts.EvaluationTime
	if at.IsZero() {
		at = time.Now()
	}

	out := make([]model.EnrichedTransaction, len(rows))
	for i, row := range rows {
		e := model.EnrichedTransaction{RawTransaction: row}

		if row.Timestamp != nil {
			h := row.Timestamp.Hour()
			e.Hour = &h
		}
		if row.DOB != nil {
			a := ageYears(at, *row.DOB)
			e.Age = &a
		}
		e.DistanceKM = Haversine(row.Lat, row.Long, row.MerchLat, row.MerchLong)

		out[i] = e
	}
	return out
}

// ageYears is the deliberately simple day-count age: floor of elapsed days
// divided by 365, no leap-year or calendar-month correction. Treat it as an
// approximate year count, not a legal age.
func ageYears(at, dob time.Time) int {
	days := math.Floor(at.Sub(dob).Hours() / 24)
	return int(math.Floor(days / 365))
}
