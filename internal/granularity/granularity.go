// Package granularity picks the grid interval of a temporal axis and
// generates the grid dates for it.
package granularity

import (
	"math"

	"github.com/wandb/axiskit/internal/timeunit"
)

// DefaultCandidates is the ordered table of grid intervals, finest first.
var DefaultCandidates = []timeunit.Interval{
	{Unit: timeunit.Millisecond, Count: 1},
	{Unit: timeunit.Millisecond, Count: 5},
	{Unit: timeunit.Millisecond, Count: 10},
	{Unit: timeunit.Millisecond, Count: 50},
	{Unit: timeunit.Millisecond, Count: 100},
	{Unit: timeunit.Millisecond, Count: 500},
	{Unit: timeunit.Second, Count: 1},
	{Unit: timeunit.Second, Count: 5},
	{Unit: timeunit.Second, Count: 10},
	{Unit: timeunit.Second, Count: 30},
	{Unit: timeunit.Minute, Count: 1},
	{Unit: timeunit.Minute, Count: 5},
	{Unit: timeunit.Minute, Count: 10},
	{Unit: timeunit.Minute, Count: 30},
	{Unit: timeunit.Hour, Count: 1},
	{Unit: timeunit.Hour, Count: 3},
	{Unit: timeunit.Hour, Count: 6},
	{Unit: timeunit.Hour, Count: 12},
	{Unit: timeunit.Day, Count: 1},
	{Unit: timeunit.Day, Count: 2},
	{Unit: timeunit.Week, Count: 1},
	{Unit: timeunit.Month, Count: 1},
	{Unit: timeunit.Month, Count: 2},
	{Unit: timeunit.Month, Count: 3},
	{Unit: timeunit.Month, Count: 6},
	{Unit: timeunit.Year, Count: 1},
	{Unit: timeunit.Year, Count: 2},
	{Unit: timeunit.Year, Count: 5},
	{Unit: timeunit.Year, Count: 10},
	{Unit: timeunit.Year, Count: 50},
	{Unit: timeunit.Year, Count: 100},
	{Unit: timeunit.Year, Count: 200},
	{Unit: timeunit.Year, Count: 500},
	{Unit: timeunit.Year, Count: 1000},
	{Unit: timeunit.Year, Count: 10000},
}

// Choice is the result of Choose.
type Choice struct {
	Interval timeunit.Interval

	// Count is the number of grid cells the interval produces.
	Count int

	// Overflow is set when no candidate fits the target and the coarsest
	// usable interval was returned anyway.
	Overflow bool
}

// Choose returns the first candidate, walking from finest to coarsest, that
// splits a duration of durationMs milliseconds into at most target cells.
//
// Candidates finer than base are skipped. If every candidate is finer than
// base, base itself is returned.
func Choose(
	candidates []timeunit.Interval,
	durationMs float64,
	target int,
	base timeunit.Interval,
) Choice {
	if target < 1 {
		target = 1
	}
	if !(durationMs > 0) {
		durationMs = base.Milliseconds()
	}
	duration := durationMs

	var last *timeunit.Interval
	for i := range candidates {
		c := candidates[i]
		if timeunit.Less(c, base) {
			continue
		}
		last = &candidates[i]

		// Walking finest first means the first fit is never coarser than
		// needed, including when duration is shorter than one step of c.
		if count := cellCount(duration, c); count <= target {
			return Choice{Interval: c, Count: count}
		}
	}

	if last == nil {
		return Choice{
			Interval: base,
			Count:    cellCount(duration, base),
			Overflow: cellCount(duration, base) > target,
		}
	}
	return Choice{
		Interval: *last,
		Count:    cellCount(duration, *last),
		Overflow: true,
	}
}

func cellCount(durationMs float64, iv timeunit.Interval) int {
	return int(math.Ceil(durationMs / iv.Milliseconds()))
}

// Selector caches the last choice for a visible duration.
//
// Reset must be called when breaks change because the break-adjusted
// duration of the same window changes with them.
type Selector struct {
	Candidates []timeunit.Interval
	Target     int

	// Override, when set, is used instead of searching the table.
	Override *timeunit.Interval

	cached     *Choice
	cachedFor  float64
	cachedBase timeunit.Interval
}

// Select returns the grid interval for a visible duration in milliseconds.
func (s *Selector) Select(duration float64, base timeunit.Interval) Choice {
	if s.Override != nil {
		iv := *s.Override
		if timeunit.Less(iv, base) {
			iv = base
		}
		return Choice{Interval: iv, Count: cellCount(duration, iv)}
	}

	if s.cached != nil && s.cachedFor == duration && s.cachedBase == base {
		return *s.cached
	}

	candidates := s.Candidates
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	choice := Choose(candidates, duration, s.Target, base)
	s.cached = &choice
	s.cachedFor = duration
	s.cachedBase = base
	return choice
}

// Reset drops the cached choice.
func (s *Selector) Reset() {
	s.cached = nil
}
