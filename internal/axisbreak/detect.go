package axisbreak

import (
	"time"

	"github.com/wandb/axiskit/internal/sparselist"
	"github.com/wandb/axiskit/internal/timeunit"
)

// maxDetectSteps bounds the walk over the domain.
const maxDetectSteps = 1_000_000

// HasDataFunc reports whether any data item falls in [from, to).
type HasDataFunc func(from, to time.Time) bool

// step is one base interval of the domain.
type step struct {
	from, to time.Time
}

// Detect returns a break for every run of base intervals in [min, max)
// that holds no data.
//
// A break covers its empty steps from the start of the first one up to one
// millisecond before the next step with data, so the next data point is
// never inside it.
func Detect(
	min, max time.Time,
	base timeunit.Interval,
	hasData HasDataFunc,
	breakSize float64,
) []Break {
	if hasData == nil || !min.Before(max) {
		return nil
	}

	empty := sparselist.SparseList[step]{}
	cur := timeunit.Round(min, base)
	for i := 0; i < maxDetectSteps && cur.Before(max); i++ {
		next := nextStep(cur, base)
		if !next.After(cur) {
			break
		}
		if !hasData(cur, next) {
			empty.Put(i, step{from: cur, to: next})
		}
		cur = next
	}

	runs := empty.ToRuns()
	breaks := make([]Break, 0, len(runs))
	for _, run := range runs {
		first := run.Items[0]
		last := run.Items[len(run.Items)-1]
		breaks = append(breaks, Break{
			StartValue: float64(first.from.UnixMilli()),
			EndValue:   float64(last.to.UnixMilli() - 1),
			BreakSize:  breakSize,
		})
	}
	return breaks
}

// nextStep returns the base boundary after cur.
//
// Steps stay on the boundaries that data timestamps are rounded to, which
// for multi-day bases restart on the first of each month.
func nextStep(cur time.Time, base timeunit.Interval) time.Time {
	next := timeunit.Round(timeunit.Add(cur, base), base)
	if !next.After(cur) {
		// A repeated wall clock hour rounds back onto cur.
		next = timeunit.Add(cur, base)
	}
	return next
}
