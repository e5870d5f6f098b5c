package choices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePercentages(t *testing.T) {
	t.Run("Thirds round to one decimal", func(t *testing.T) {
		dist := Compute([]Counted[string]{
			{Candidate: "a", N: 1},
			{Candidate: "b", N: 1},
			{Candidate: "c", N: 1},
		}, nil)

		assert.Equal(t, int64(3), dist.Total)
		for _, e := range dist.Entries {
			assert.Equal(t, 33.3, e.Percentage)
		}
	})

	t.Run("Two to one split", func(t *testing.T) {
		dist := Compute([]Counted[string]{
			{Candidate: "a", N: 2},
			{Candidate: "b", N: 1},
		}, nil)

		assert.Equal(t, int64(3), dist.Total)
		assert.Equal(t, "a", dist.Entries[0].Candidate)
		assert.Equal(t, 66.7, dist.Entries[0].Percentage)
		assert.Equal(t, 33.3, dist.Entries[1].Percentage)
	})

	t.Run("Single voter gets 100", func(t *testing.T) {
		dist := Compute([]Counted[string]{{Candidate: "a", N: 1}}, nil)

		assert.Equal(t, int64(1), dist.Total)
		assert.Equal(t, 100.0, dist.Entries[0].Percentage)
	})

	t.Run("Rounding is half away from zero", func(t *testing.T) {
		// 1/8 = 12.5%, 7/8 = 87.5%: both ties round up.
		dist := Compute([]Counted[string]{
			{Candidate: "a", N: 7},
			{Candidate: "b", N: 1},
		}, nil)

		assert.Equal(t, 87.5, dist.Entries[0].Percentage)
		assert.Equal(t, 12.5, dist.Entries[1].Percentage)
	})
}

func TestComputeZeroTotal(t *testing.T) {
	t.Run("No counts and no closed set", func(t *testing.T) {
		dist := Compute[string](nil, nil)

		assert.Equal(t, int64(0), dist.Total)
		assert.Empty(t, dist.Entries)
	})

	t.Run("Closed set with no votes", func(t *testing.T) {
		dist := Compute(nil, []string{"home_win", "away_win", "draw"})

		assert.Equal(t, int64(0), dist.Total)
		assert.Len(t, dist.Entries, 3)
		for _, e := range dist.Entries {
			assert.Equal(t, int64(0), e.Count)
			assert.Equal(t, 0.0, e.Percentage)
		}
	})
}

func TestComputeClosedSetPadding(t *testing.T) {
	dist := Compute([]Counted[string]{
		{Candidate: "home_win", N: 3},
	}, []string{"home_win", "away_win", "draw"})

	assert.Equal(t, int64(3), dist.Total)
	assert.Len(t, dist.Entries, 3)

	assert.Equal(t, "home_win", dist.Entries[0].Candidate)
	assert.Equal(t, 100.0, dist.Entries[0].Percentage)

	// Zero-padded outcomes keep the closed set's order.
	assert.Equal(t, "away_win", dist.Entries[1].Candidate)
	assert.Equal(t, "draw", dist.Entries[2].Candidate)
	assert.Equal(t, int64(0), dist.Entries[1].Count)
	assert.Equal(t, int64(0), dist.Entries[2].Count)
}

func TestComputeOrdering(t *testing.T) {
	t.Run("Sorted by count descending", func(t *testing.T) {
		dist := Compute([]Counted[string]{
			{Candidate: "mid", N: 5},
			{Candidate: "top", N: 9},
			{Candidate: "low", N: 1},
		}, nil)

		assert.Equal(t, "top", dist.Entries[0].Candidate)
		assert.Equal(t, "mid", dist.Entries[1].Candidate)
		assert.Equal(t, "low", dist.Entries[2].Candidate)
	})

	t.Run("Ties keep incoming order", func(t *testing.T) {
		dist := Compute([]Counted[string]{
			{Candidate: "first", N: 2},
			{Candidate: "second", N: 2},
		}, nil)

		assert.Equal(t, "first", dist.Entries[0].Candidate)
		assert.Equal(t, "second", dist.Entries[1].Candidate)
	})
}

func TestComputeDuplicateCounts(t *testing.T) {
	// A candidate repeated in the input keeps only its first row.
	dist := Compute([]Counted[string]{
		{Candidate: "a", N: 4},
		{Candidate: "a", N: 2},
	}, nil)

	assert.Equal(t, int64(4), dist.Total)
	assert.Len(t, dist.Entries, 1)
}

func TestPercentagesSumNearHundred(t *testing.T) {
	dist := Compute([]Counted[string]{
		{Candidate: "a", N: 1},
		{Candidate: "b", N: 1},
		{Candidate: "c", N: 1},
	}, nil)

	var sum float64
	for _, e := range dist.Entries {
		sum += e.Percentage
	}
	// Rounded thirds sum to 99.9, not 100; the API exposes them as-is.
	assert.InDelta(t, 100.0, sum, 0.2)
}
