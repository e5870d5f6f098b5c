package choices

import (
	"math"
	"sort"

	"gorm.io/gorm"
)

// Entry is one candidate's share of a scope's votes.
type Entry[C comparable] struct {
	Candidate  C
	Count      int64
	Percentage float64
}

// Counted is a raw per-candidate count, before percentages are derived.
type Counted[C comparable] struct {
	Candidate C
	N         int64
}

// Distribution is the on-demand aggregation of all choices within one scope.
type Distribution[C comparable] struct {
	Entries []Entry[C]
	Total   int64
}

// Tally groups all choice rows for one scope by candidate and computes counts
// and percentages. It never mutates register state and may be called
// repeatedly. For closed candidate sets (match outcomes) pass the full set so
// zero-vote candidates still appear; pass nil for open sets (clubs), where
// candidates are discovered from data.
func Tally[T any, S any, C comparable](db *gorm.DB, b Binding[T, S, C], scope S, closed []C) (Distribution[C], error) {
	var row T
	var counts []Counted[C]
	err := db.Model(&row).
		Select(b.CandidateColumn+" AS candidate, COUNT(*) AS n").
		Where(b.ScopeColumn+" = ?", scope).
		Group(b.CandidateColumn).
		Order("n DESC, " + b.CandidateColumn).
		Scan(&counts).Error
	if err != nil {
		return Distribution[C]{}, err
	}
	return Compute(counts, closed), nil
}

// Compute turns raw counts into a Distribution: candidates missing from counts
// but present in the closed set are padded with zero rows, percentages are
// rounded half away from zero to one decimal, and entries are ordered by count
// descending (ties keep their incoming order, zero-padded candidates keep the
// closed set's order). A scope with zero votes yields percentage 0 for every
// candidate; the zero total is handled explicitly, not left to division.
func Compute[C comparable](counts []Counted[C], closed []C) Distribution[C] {
	seen := make(map[C]bool, len(counts))
	merged := make([]Counted[C], 0, len(counts)+len(closed))
	for _, c := range counts {
		if !seen[c.Candidate] {
			seen[c.Candidate] = true
			merged = append(merged, c)
		}
	}
	for _, candidate := range closed {
		if !seen[candidate] {
			seen[candidate] = true
			merged = append(merged, Counted[C]{Candidate: candidate})
		}
	}

	var total int64
	for _, c := range merged {
		total += c.N
	}

	entries := make([]Entry[C], 0, len(merged))
	for _, c := range merged {
		entries = append(entries, Entry[C]{Candidate: c.Candidate, Count: c.N, Percentage: percentage(c.N, total)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return Distribution[C]{Entries: entries, Total: total}
}

func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
