package summary

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexcpass/fraud-test-kaggle/internal/model"
)

func viewRow(amount float64, fraud bool, distance, zScore float64) model.ScoredTransaction {
	return model.ScoredTransaction{
		EnrichedTransaction: model.EnrichedTransaction{
			RawTransaction: model.RawTransaction{
				Amount:   decimal.NewFromFloat(amount),
				AmountOK: true,
				IsFraud:  fraud,
			},
			DistanceKM: distance,
		},
		AmountZScore: zScore,
	}
}

func TestComputeHeadlineNumbers(t *testing.T) {
	view := []model.ScoredTransaction{
		viewRow(10, true, 1, 0.5),
		viewRow(20, false, 2, -0.2),
		viewRow(30, false, 3, 2.5),
	}
	view[2].IsAmountAnomaly = true
	view[1].IsDistanceAnomaly = true

	got := Compute(view)

	assert.Equal(t, 3, got.Rows)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(60)))
	assert.InDelta(t, 1.0/3.0, got.FraudRate, 1e-9)
	assert.InDelta(t, 2.0, got.MeanDistanceKM, 1e-9)
	assert.Equal(t, 1, got.AmountAnomalies)
	assert.Equal(t, 1, got.DistanceAnomalies)
}

func TestComputeSkipsUnparsableValues(t *testing.T) {
	bad := model.ScoredTransaction{}
	bad.DistanceKM = math.NaN() // AmountOK is false too

	view := []model.ScoredTransaction{
		viewRow(100, false, 4, 0),
		bad,
	}

	got := Compute(view)

	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(100)))
	assert.InDelta(t, 4.0, got.MeanDistanceKM, 1e-9)
	assert.Equal(t, 2, got.Rows)
}

func TestComputeEmptyView(t *testing.T) {
	got := Compute(nil)

	assert.Equal(t, 0, got.Rows)
	assert.True(t, got.TotalAmount.IsZero())
	assert.Equal(t, 0.0, got.FraudRate)
	assert.Equal(t, 0.0, got.MeanDistanceKM)
}

func TestTopAlertsSortsByZScoreDescending(t *testing.T) {
	view := []model.ScoredTransaction{
		viewRow(1, false, 0, 0.5),
		viewRow(2, false, 0, 3.1),
		viewRow(3, false, 0, math.NaN()),
		viewRow(4, false, 0, 1.7),
	}

	got := TopAlerts(view, 3)
	require.Len(t, got, 3)

	assert.InDelta(t, 3.1, got[0].AmountZScore, 1e-9)
	assert.InDelta(t, 1.7, got[1].AmountZScore, 1e-9)
	assert.InDelta(t, 0.5, got[2].AmountZScore, 1e-9)

	// The input view keeps its order.
	assert.InDelta(t, 0.5, view[0].AmountZScore, 1e-9)
	assert.InDelta(t, 3.1, view[1].AmountZScore, 1e-9)
}

func TestTopAlertsLargerThanView(t *testing.T) {
	view := []model.ScoredTransaction{viewRow(1, false, 0, 1)}
	got := TopAlerts(view, 20)
	assert.Len(t, got, 1)
}

func TestAgeBand(t *testing.T) {
	tests := []struct {
		age  int
		band AgeBand
		ok   bool
	}{
		{0, "", false},
		{1, AgeYouth, true},
		{25, AgeYouth, true},
		{26, AgeAdult, true},
		{40, AgeAdult, true},
		{41, AgeSenior, true},
		{60, AgeSenior, true},
		{61, AgeElderly, true},
		{100, AgeElderly, true},
		{101, "", false},
		{-3, "", false},
	}

	for _, tt := range tests {
		band, ok := ageBand(tt.age)
		assert.Equal(t, tt.ok, ok, "age %d", tt.age)
		assert.Equal(t, tt.band, band, "age %d", tt.age)
	}
}

func TestRiskMatrixCountsFraudsByBandAndHour(t *testing.T) {
	age1, age2 := 23, 55
	hour1, hour2 := 2, 14

	view := []model.ScoredTransaction{
		{EnrichedTransaction: model.EnrichedTransaction{
			RawTransaction: model.RawTransaction{IsFraud: true}, Age: &age1, Hour: &hour1,
		}},
		{EnrichedTransaction: model.EnrichedTransaction{
			RawTransaction: model.RawTransaction{IsFraud: true}, Age: &age1, Hour: &hour1,
		}},
		{EnrichedTransaction: model.EnrichedTransaction{
			RawTransaction: model.RawTransaction{IsFraud: true}, Age: &age2, Hour: &hour2,
		}},
		// Not fraud: ignored.
		{EnrichedTransaction: model.EnrichedTransaction{Age: &age1, Hour: &hour1}},
		// Fraud with undefined age: ignored.
		{EnrichedTransaction: model.EnrichedTransaction{
			RawTransaction: model.RawTransaction{IsFraud: true}, Hour: &hour1,
		}},
	}

	m := RiskMatrix(view)

	assert.Equal(t, 2, m[AgeYouth][2])
	assert.Equal(t, 1, m[AgeSenior][14])
	assert.Equal(t, 0, m[AgeAdult][2])
	assert.Equal(t, 0, m[AgeYouth][3])
}
