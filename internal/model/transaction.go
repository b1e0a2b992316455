package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction is a single input row as read from the dataset. Fields that
// failed to parse keep a recoverable sentinel (nil time, NaN coordinate,
// AmountOK=false) instead of dropping the row.
type RawTransaction struct {
	Timestamp *time.Time      // trans_date_trans_time, nil if unparsable
	Category  string          // merchant category key
	Amount    decimal.Decimal // amt
	AmountOK  bool            // false when amt was unparsable
	Lat       float64         // cardholder latitude, NaN if unparsable
	Long      float64         // cardholder longitude
	MerchLat  float64         // merchant latitude
	MerchLong float64         // merchant longitude
	DOB       *time.Time      // cardholder date of birth, nil if unparsable
	IsFraud   bool            // ground-truth label when present
	Merchant  string
}

// AmountFloat returns the amount for statistical use. Unparsable amounts
// surface as NaN so they propagate through aggregates the same way bad
// coordinates do.
func (t *RawTransaction) AmountFloat() float64 {
	if !t.AmountOK {
		return math.NaN()
	}
	f, _ := t.Amount.Float64()
	return f
}

// EnrichedTransaction adds the row-local derived features. One-to-one with
// RawTransaction, same order as the input batch.
type EnrichedTransaction struct {
	RawTransaction

	Age        *int    // approximate years, nil when DOB was unparsable
	Hour       *int    // 0-23, nil when the timestamp was unparsable
	DistanceKM float64 // cardholder-to-merchant great-circle distance
}

// ScoredTransaction adds the anomaly signals computed from batch statistics.
type ScoredTransaction struct {
	EnrichedTransaction

	AmountZScore      float64
	IsAmountAnomaly   bool
	IsDistanceAnomaly bool
}

// CategoryStatistic holds per-category amount statistics. StddevAmount is the
// population standard deviation, computed over every row of the category with
// a parsable amount.
type CategoryStatistic struct {
	Category     string
	Count        int
	MeanAmount   float64
	StddevAmount float64
}

// GlobalDistanceStatistic holds the batch-wide distance statistics used for
// the geographic anomaly threshold. StddevKM is the population standard
// deviation.
type GlobalDistanceStatistic struct {
	Count    int
	MeanKM   float64
	StddevKM float64
}

// FilterCriteria selects a sub-view of a scored batch. An empty category set
// selects nothing.
type FilterCriteria struct {
	Categories    []string
	AnomaliesOnly bool
}
