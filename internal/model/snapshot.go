package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the immutable result of one enrichment+scoring run over a
// batch. Downstream consumers (filter, summaries, presentation) read it; they
// never write back into it.
type Snapshot struct {
	ID          uuid.UUID
	GeneratedAt time.Time

	Transactions   []ScoredTransaction
	CategoryStats  map[string]CategoryStatistic
	GlobalDistance GlobalDistanceStatistic
}

// Categories returns the distinct category keys present in the batch, sorted.
func (s *Snapshot) Categories() []string {
	seen := make(map[string]struct{})
	for _, tx := range s.Transactions {
		seen[tx.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}
