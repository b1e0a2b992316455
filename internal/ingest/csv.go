package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/alexcpass/fraud-test-kaggle/internal/model"
)

// requiredColumns are the dataset columns the pipeline depends on. Any other
// column in the file is ignored.
var requiredColumns = []string{
	"trans_date_trans_time",
	"category",
	"amt",
	"lat",
	"long",
	"merch_lat",
	"merch_long",
	"dob",
	"is_fraud",
	"merchant",
}

// The dataset ships with day-first dates; ISO layouts are accepted as a
// fallback for re-exported files.
var timestampLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
}

// MissingColumnError reports a required column absent from the header. The
// whole batch is rejected before enrichment in that case.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return "missing required column: " + e.Column
}

// LoadFile reads the full transaction batch from a CSV file on disk.
func LoadFile(path string) ([]model.RawTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return rows, nil
}

// Read parses a CSV transaction batch. A missing required column or an
// unreadable stream is fatal; a malformed field inside a row is not — the row
// is kept and the affected derived value becomes undefined downstream.
func Read(r io.Reader) ([]model.RawTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("dataset has no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}

	var rows []model.RawTransaction
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		rows = append(rows, parseRow(record, idx, line))
	}

	log.Debug().Int("rows", len(rows)).Msg("dataset loaded")
	return rows, nil
}

func parseRow(record []string, idx map[string]int, line int) model.RawTransaction {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	tx := model.RawTransaction{
		Category: field("category"),
		Merchant: field("merchant"),
	}

	tx.Timestamp = parseTime(field("trans_date_trans_time"), timestampLayouts)
	if tx.Timestamp == nil {
		log.Warn().Int("row", line).Str("value", field("trans_date_trans_time")).Msg("unparsable transaction timestamp")
	}

	tx.DOB = parseTime(field("dob"), dateLayouts)
	if tx.DOB == nil {
		log.Warn().Int("row", line).Str("value", field("dob")).Msg("unparsable date of birth")
	}

	if amt, err := decimal.NewFromString(field("amt")); err == nil {
		tx.Amount = amt
		tx.AmountOK = true
	} else {
		log.Warn().Int("row", line).Str("value", field("amt")).Msg("unparsable amount")
	}

	tx.Lat = parseCoord(field("lat"), "lat", line)
	tx.Long = parseCoord(field("long"), "long", line)
	tx.MerchLat = parseCoord(field("merch_lat"), "merch_lat", line)
	tx.MerchLong = parseCoord(field("merch_long"), "merch_long", line)

	if v, err := strconv.ParseBool(field("is_fraud")); err == nil {
		tx.IsFraud = v
	}

	return tx
}

func parseTime(s string, layouts []string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseCoord(s, col string, line int) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Warn().Int("row", line).Str("column", col).Str("value", s).Msg("unparsable coordinate")
		return math.NaN()
	}
	return v
}
