// Package riskhistory implements the append-only, size-capped per-contract
// risk history store of spec §4.F: trend, flag-delta, and windowed
// statistics derivations over a contract's score time series.
package riskhistory

import (
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// Store holds, per contract, an ordered, size-capped sequence of
// RiskHistoryEntry. Writes for one contract are serialized so the
// 100-entry cap and append-order invariants hold; reads see the result of
// the last completed write.
type Store struct {
	mu      sync.Mutex
	entries map[string][]domain.RiskHistoryEntry
}

// NewStore constructs an empty, in-process risk history store.
func NewStore() *Store {
	return &Store{entries: make(map[string][]domain.RiskHistoryEntry)}
}

// Append adds entry to contractID's history in append order, evicting the
// oldest entries so length never exceeds domain.MaxHistoryEntries.
func (s *Store) Append(contractID string, entry domain.RiskHistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.entries[contractID], entry)
	if len(list) > domain.MaxHistoryEntries {
		list = list[len(list)-domain.MaxHistoryEntries:]
	}
	s.entries[contractID] = list
}

// Get returns the RiskHistory for contractID, or nil if none exists.
func (s *Store) Get(contractID string) *domain.RiskHistory {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.entries[contractID]
	if !ok {
		return nil
	}
	out := make([]domain.RiskHistoryEntry, len(list))
	copy(out, list)
	return &domain.RiskHistory{ContractID: contractID, Entries: out}
}

// Delete removes all history for contractID.
func (s *Store) Delete(contractID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, contractID)
}

// Trend derives the three-way trend classification from the last two
// entries of contractID's history. With no entries, returns a zero-value
// TrendResult with TrendNew. With exactly one entry, Previous is 0 and
// ScoreChange is 0 (no prior score to compare against).
func (s *Store) Trend(contractID string) domain.TrendResult {
	s.mu.Lock()
	list := s.entries[contractID]
	s.mu.Unlock()

	if len(list) == 0 {
		return domain.TrendResult{Trend: domain.TrendNew}
	}
	current := list[len(list)-1].Score
	if len(list) == 1 {
		return domain.TrendResult{Current: current, Trend: domain.TrendNew}
	}
	previous := list[len(list)-2].Score
	change := current - previous
	trend := domain.TrendStable
	switch {
	case change > 5:
		trend = domain.TrendImproving
	case change < -5:
		trend = domain.TrendWorsening
	}
	return domain.TrendResult{Current: current, Previous: previous, ScoreChange: change, Trend: trend}
}

// FlagChanges compares the flag-code sets of the last two entries of
// contractID's history. New holds flags present in the latest entry but
// not the previous one; Resolved holds the reverse. The full flag objects
// are preserved, not just codes. Calling FlagChanges twice in succession
// returns identical diffs (spec invariant 8): the store is read-only here.
func (s *Store) FlagChanges(contractID string) domain.FlagChanges {
	s.mu.Lock()
	list := s.entries[contractID]
	s.mu.Unlock()

	if len(list) < 2 {
		if len(list) == 1 {
			return domain.FlagChanges{New: append([]domain.RiskFlag{}, list[0].Flags...)}
		}
		return domain.FlagChanges{}
	}
	current := list[len(list)-1].Flags
	previous := list[len(list)-2].Flags

	prevSet := make(map[string]bool, len(previous))
	for _, f := range previous {
		prevSet[f.Code] = true
	}
	currSet := make(map[string]bool, len(current))
	for _, f := range current {
		currSet[f.Code] = true
	}

	var result domain.FlagChanges
	for _, f := range current {
		if !prevSet[f.Code] {
			result.New = append(result.New, f)
		}
	}
	for _, f := range previous {
		if !currSet[f.Code] {
			result.Resolved = append(result.Resolved, f)
		}
	}
	return result
}

// windowed returns the entries of contractID's history whose AnalyzedAt is
// within days of now, and the full (unfiltered) list for fallback.
func (s *Store) windowed(contractID string, days int) (windowed, all []domain.RiskHistoryEntry) {
	s.mu.Lock()
	list := append([]domain.RiskHistoryEntry{}, s.entries[contractID]...)
	s.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -days)
	for _, e := range list {
		if !e.AnalyzedAt.Before(cutoff) {
			windowed = append(windowed, e)
		}
	}
	return windowed, list
}

// AverageScoreOverTime returns the rounded arithmetic mean of scores within
// the last days. Falls back to the latest entry's score if the window is
// empty, and 0 if there are no entries at all.
func (s *Store) AverageScoreOverTime(contractID string, days int) int {
	windowed, all := s.windowed(contractID, days)
	if len(windowed) == 0 {
		if len(all) == 0 {
			return 0
		}
		return all[len(all)-1].Score
	}
	sum := 0
	for _, e := range windowed {
		sum += e.Score
	}
	return int(math.Round(float64(sum) / float64(len(windowed))))
}

// Statistics computes average/min/max/volatility/entryCount over the last
// days, with the same empty-window fallback rules as AverageScoreOverTime.
func (s *Store) Statistics(contractID string, days int) domain.HistoryStatistics {
	windowed, all := s.windowed(contractID, days)
	if len(windowed) == 0 {
		if len(all) == 0 {
			return domain.HistoryStatistics{}
		}
		score := all[len(all)-1].Score
		return domain.HistoryStatistics{AverageScore: score, MinScore: score, MaxScore: score, EntryCount: 0}
	}

	scores := make([]float64, len(windowed))
	min, max := windowed[0].Score, windowed[0].Score
	for i, e := range windowed {
		scores[i] = float64(e.Score)
		if e.Score < min {
			min = e.Score
		}
		if e.Score > max {
			max = e.Score
		}
	}
	mean := stat.Mean(scores, nil)
	sd := stat.StdDev(scores, nil)

	return domain.HistoryStatistics{
		AverageScore: int(math.Round(mean)),
		MinScore:     min,
		MaxScore:     max,
		Volatility:   math.Round(sd*100) / 100,
		EntryCount:   len(windowed),
	}
}
