package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexcpass/fraud-test-kaggle/internal/filter"
	"github.com/alexcpass/fraud-test-kaggle/internal/model"
)

func rawBatch() []model.RawTransaction {
	mk := func(ts string, category string, amount float64, lat, lon, mlat, mlon float64, dob string, fraud bool, merchant string) model.RawTransaction {
		tsv, _ := time.Parse("2006-01-02 15:04", ts)
		dobv, _ := time.Parse("2006-01-02", dob)
		return model.RawTransaction{
			Timestamp: &tsv,
			Category:  category,
			Amount:    decimal.NewFromFloat(amount),
			AmountOK:  true,
			Lat:       lat, Long: lon,
			MerchLat: mlat, MerchLong: mlon,
			DOB:     &dobv,
			IsFraud: fraud,
			Merchant: merchant,
		}
	}

	return []model.RawTransaction{
		mk("2020-06-15 14:30", "grocery", 10, 40.7, -74.0, 40.8, -73.9, "1980-12-25", false, "Acme"),
		mk("2020-06-15 18:05", "grocery", 1010, 40.7, -74.0, 40.7, -74.0, "1995-01-01", false, "Acme"),
		mk("2020-06-16 03:40", "travel", 2500, 51.5, -0.12, 48.85, 2.35, "1970-07-07", true, "Globex"),
		mk("2020-06-16 11:00", "misc", 5, 34.05, -118.24, 34.05, -118.24, "2001-03-03", false, "Initech"),
	}
}

func TestRunProducesScoredSnapshot(t *testing.T) {
	evalTime := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	snap := Run(rawBatch(), Options{EvaluationTime: evalTime})
	require.NotNil(t, snap)
	require.Len(t, snap.Transactions, 4)

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", snap.ID.String())
	assert.Len(t, snap.CategoryStats, 3)
	assert.Equal(t, 4, snap.GlobalDistance.Count)

	// Enriched fields made it through scoring.
	first := snap.Transactions[0]
	require.NotNil(t, first.Hour)
	assert.Equal(t, 14, *first.Hour)
	require.NotNil(t, first.Age)

	// Same-coordinate rows have exactly zero distance.
	assert.Equal(t, 0.0, snap.Transactions[1].DistanceKM)
}

func TestRunIsIdempotent(t *testing.T) {
	evalTime := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	raw := rawBatch()

	first := Run(raw, Options{EvaluationTime: evalTime})
	second := Run(raw, Options{EvaluationTime: evalTime})

	assert.Equal(t, first.Transactions, second.Transactions)
	assert.Equal(t, first.CategoryStats, second.CategoryStats)
	assert.Equal(t, first.GlobalDistance, second.GlobalDistance)
}

func TestRunPreservesOrder(t *testing.T) {
	raw := rawBatch()
	snap := Run(raw, Options{EvaluationTime: time.Now()})

	require.Len(t, snap.Transactions, len(raw))
	for i := range raw {
		assert.Equal(t, raw[i].Merchant, snap.Transactions[i].Merchant)
		assert.Equal(t, raw[i].Category, snap.Transactions[i].Category)
	}
}

func TestRunEmptyBatch(t *testing.T) {
	snap := Run(nil, Options{})

	assert.Empty(t, snap.Transactions)
	assert.Empty(t, snap.CategoryStats)
	assert.Equal(t, model.GlobalDistanceStatistic{}, snap.GlobalDistance)
}

func TestSnapshotCategories(t *testing.T) {
	snap := Run(rawBatch(), Options{EvaluationTime: time.Now()})
	assert.Equal(t, []string{"grocery", "misc", "travel"}, snap.Categories())
}

func TestFilteredViewLeavesSnapshotIntact(t *testing.T) {
	snap := Run(rawBatch(), Options{EvaluationTime: time.Now()})
	before := make([]model.ScoredTransaction, len(snap.Transactions))
	copy(before, snap.Transactions)

	view := filter.Apply(snap.Transactions, model.FilterCriteria{
		Categories:    []string{"grocery"},
		AnomaliesOnly: false,
	})

	require.Len(t, view, 2)
	assert.Equal(t, before, snap.Transactions)
}
