package scheduler

import (
	"math"
	"math/rand"
)

type fuzzEntry struct {
	start, end float64
	factor     float64
}

var fuzzRanges = []fuzzEntry{
	{2.5, 7.0, 0.15},
	{7.0, 20.0, 0.10},
	{20.0, math.Inf(1), 0.05},
}

// fuzzDelta computes the fuzz spread for a given interval:
// delta = 1.0 + Σ(factor * max(min(interval, end) - start, 0))
func fuzzDelta(interval float64) float64 {
	delta := 1.0
	for _, r := range fuzzRanges {
		delta += r.factor * math.Max(math.Min(interval, r.end)-r.start, 0)
	}
	return delta
}

// applyFuzz randomizes a review interval to prevent cards reviewed
// together from clustering forever. Intervals under 2.5 days pass
// through unchanged.
func applyFuzz(interval, maxIvl int, rng *rand.Rand) int {
	if float64(interval) < 2.5 {
		return interval
	}

	ivl := float64(interval)
	delta := fuzzDelta(ivl)

	lo := int(math.Round(ivl - delta))
	if lo < 2 {
		lo = 2
	}
	hi := int(math.Round(ivl + delta))
	if hi > maxIvl {
		hi = maxIvl
	}
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
