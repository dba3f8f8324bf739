package granularity

import (
	"math"
	"time"

	"github.com/wandb/axiskit/internal/timeunit"
)

// maxGridDates bounds a single Generate call.
const maxGridDates = 10_000

// BreakMap is the view of an axis' breaks that grid generation needs.
//
// Values are epoch milliseconds.
type BreakMap interface {
	// Containing returns the bounds of the break that contains v.
	Containing(v float64) (start, end float64, ok bool)

	// AdjustedDifference returns b-a with collapsed break widths removed.
	AdjustedDifference(a, b float64) float64
}

// GridDate is one generated grid line.
type GridDate struct {
	Time time.Time

	// PeriodChange is set when the date starts a new period of the next
	// coarser unit, e.g. a new month on a day grid.
	PeriodChange bool
}

// gridCursor is the state carried between grid dates.
type gridCursor struct {
	date    time.Time
	prev    time.Time
	hasPrev bool
}

// Generate returns the grid dates of interval iv from the boundary at or
// before start through end.
//
// Dates that would fall inside a break are moved past it, and when a break
// shrinks the effective distance between two grid dates below one interval
// the later date is pushed out by another interval until the distance fits.
// breaks may be nil.
func Generate(start, end time.Time, iv timeunit.Interval, breaks BreakMap) []GridDate {
	iv = timeunit.Of(iv.Unit, iv.Count)
	cur := gridCursor{date: timeunit.Round(start, iv)}
	cur.date = exitBreak(cur.date, iv, breaks)

	var dates []GridDate
	for len(dates) < maxGridDates && !cur.date.After(end) {
		change := cur.hasPrev &&
			iv.Unit != timeunit.Year &&
			timeunit.CheckChange(cur.prev, cur.date, iv.Unit.Next())
		dates = append(dates, GridDate{Time: cur.date, PeriodChange: change})

		cur.prev = cur.date
		cur.hasPrev = true
		cur.date = nextGridDate(cur.date, iv, breaks, end)
	}
	return dates
}

// nextGridDate returns the grid date following date.
func nextGridDate(
	date time.Time,
	iv timeunit.Interval,
	breaks BreakMap,
	end time.Time,
) time.Time {
	unit := timeunit.Of(iv.Unit, 1)
	from := timeunit.Round(date, unit)
	if breaks == nil {
		return timeunit.Add(from, iv)
	}

	unitMs := unit.Milliseconds()
	for step := iv.Count; ; step += iv.Count {
		next := exitBreak(timeunit.Add(from, timeunit.Of(iv.Unit, step)), iv, breaks)
		if next.After(end) {
			return next
		}

		effective := breaks.AdjustedDifference(millis(from), millis(next))
		if math.Round(effective/unitMs) >= float64(iv.Count) {
			return next
		}
	}
}

// exitBreak moves a date that falls inside a break to the first unit
// boundary after the break.
func exitBreak(date time.Time, iv timeunit.Interval, breaks BreakMap) time.Time {
	if breaks == nil {
		return date
	}

	for range maxGridDates {
		_, breakEnd, ok := breaks.Containing(millis(date))
		if !ok {
			break
		}

		// First representable instant after the break.
		endDate := timeunit.FromMillis(int64(math.Floor(breakEnd))+1, date.Location())
		unit := timeunit.Of(iv.Unit, 1)
		out := timeunit.Round(endDate, unit)
		if out.Before(endDate) {
			out = timeunit.Add(out, unit)
		}
		date = out
	}
	return date
}

func millis(t time.Time) float64 {
	return float64(t.UnixMilli())
}
