package filter

import (
	"github.com/alexcpass/fraud-test-kaggle/internal/model"
)

// Apply selects the sub-view of a scored batch matching the criteria: the
// row's category must be in the selected set, and when AnomaliesOnly is set
// at least one anomaly flag must be raised. The filter is stable (input order
// preserved) and non-mutating; the returned slice holds copies the caller may
// sort or truncate freely.
func Apply(rows []model.ScoredTransaction, criteria model.FilterCriteria) []model.ScoredTransaction {
	selected := make(map[string]struct{}, len(criteria.Categories))
	for _, cat := range criteria.Categories {
		selected[cat] = struct{}{}
	}

	out := make([]model.ScoredTransaction, 0, len(rows))
	for _, row := range rows {
		if _, ok := selected[row.Category]; !ok {
			continue
		}
		if criteria.AnomaliesOnly && !row.IsAmountAnomaly && !row.IsDistanceAnomaly {
			continue
		}
		out = append(out, row)
	}
	return out
}
