package axis

import (
	"log/slog"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/wandb/axiskit/internal/axisbreak"
	"github.com/wandb/axiskit/internal/granularity"
	"github.com/wandb/axiskit/internal/indexresolver"
	"github.com/wandb/axiskit/internal/timeunit"
)

// TemporalOptions configures a temporal axis.
type TemporalOptions struct {
	// BaseInterval fixes the base interval instead of detecting it.
	BaseInterval *timeunit.Interval

	// GridIntervals replaces the candidate grid intervals.
	GridIntervals []timeunit.Interval

	// GridInterval fixes the grid interval.
	GridInterval *timeunit.Interval

	// SkipEmptyPeriods collapses base intervals that hold no data.
	SkipEmptyPeriods bool

	// BreakSize is the size of detected breaks.
	BreakSize float64

	// Location is used for calendar rounding. Defaults to UTC.
	Location *time.Location
}

// Temporal is a date axis. Values are epoch milliseconds.
type Temporal struct {
	*base

	opts TemporalOptions
	loc  *time.Location

	baseInterval timeunit.Interval
	baseDetected bool

	// items are the data timestamps rounded to the base interval.
	items    *indexresolver.Resolver[int64]
	min, max time.Time

	declaredBreaks []axisbreak.Break
	selector       granularity.Selector
	gridInterval   granularity.Choice
}

var _ Axis = (*Temporal)(nil)

// NewTemporal returns a date axis.
func NewTemporal(opts Options) *Temporal {
	loc := opts.Temporal.Location
	if loc == nil {
		loc = time.UTC
	}

	a := &Temporal{
		base:           newBase(KindTemporal, opts),
		opts:           opts.Temporal,
		loc:            loc,
		baseInterval:   timeunit.DefaultBase,
		items:          indexresolver.New[int64](nil, millisValue),
		declaredBreaks: slices.Clone(opts.Breaks),
		selector: granularity.Selector{
			Candidates: opts.Temporal.GridIntervals,
			Target:     opts.GridCount,
			Override:   opts.Temporal.GridInterval,
		},
	}
	if a.selector.Target <= 0 {
		a.selector.Target = defaultGridCount
	}
	if iv := opts.Temporal.BaseInterval; iv != nil {
		a.baseInterval = timeunit.Of(iv.Unit, iv.Count)
	}
	a.d = a
	a.SetDates(nil)
	return a
}

func millisValue(ms int64) float64 {
	return float64(ms)
}

// SetDates sets the timestamps of the attached series' data items.
//
// It detects the base interval, recomputes the domain and, with
// SkipEmptyPeriods, the breaks.
func (a *Temporal) SetDates(dates []time.Time) {
	sorted := make([]time.Time, len(dates))
	for i, t := range dates {
		sorted[i] = t.In(a.loc)
	}
	slices.SortFunc(sorted, func(x, y time.Time) int { return x.Compare(y) })

	if a.opts.BaseInterval == nil {
		a.baseInterval, a.baseDetected = timeunit.DetectBase(sorted)
		if !a.baseDetected {
			a.logger.Debug(
				"axis: no base interval in data, using fallback",
				"base", a.baseInterval.String(),
			)
		}
	}

	keys := make([]int64, 0, len(sorted))
	for _, t := range sorted {
		ms := timeunit.Round(t.In(a.loc), a.baseInterval).UnixMilli()
		if n := len(keys); n == 0 || keys[n-1] != ms {
			keys = append(keys, ms)
		}
	}
	a.items.Rebuild(keys)

	if len(sorted) == 0 {
		a.min = timeunit.Round(time.Unix(0, 0).In(a.loc), a.baseInterval)
		a.max = timeunit.Add(a.min, a.baseInterval)
	} else {
		a.min = timeunit.Round(sorted[0].In(a.loc), a.baseInterval)
		a.max = timeunit.Add(
			timeunit.Round(sorted[len(sorted)-1].In(a.loc), a.baseInterval),
			a.baseInterval,
		)
	}

	a.recomputeBreaks()
	a.Invalidate()
	for _, s := range a.series {
		s.InvalidateDataRange()
	}
}

// SetBreaks replaces the declared breaks. Detected breaks are kept.
func (a *Temporal) SetBreaks(breaks []axisbreak.Break) {
	a.declaredBreaks = slices.Clone(breaks)
	a.recomputeBreaks()
	a.Invalidate()
}

// SetSkipEmptyPeriods turns break detection on or off.
func (a *Temporal) SetSkipEmptyPeriods(skip bool) {
	if a.opts.SkipEmptyPeriods == skip {
		return
	}
	a.opts.SkipEmptyPeriods = skip
	a.recomputeBreaks()
	a.Invalidate()
}

// recomputeBreaks rebuilds the break set from declared and detected
// breaks.
//
// Grid elements and the cached grid interval depend on break-adjusted
// durations and are dropped.
func (a *Temporal) recomputeBreaks() {
	breaks := slices.Clone(a.declaredBreaks)
	if a.opts.SkipEmptyPeriods && a.items.Len() > 0 {
		detected := axisbreak.Detect(
			a.min, a.max,
			a.baseInterval,
			a.hasData,
			a.opts.BreakSize,
		)
		breaks = append(breaks, detected...)
	}

	a.breaks.Replace(breaks)
	a.selector.Reset()
	a.pool.invalidate()
}

// hasData reports whether any data item falls in [from, to).
func (a *Temporal) hasData(from, to time.Time) bool {
	keys := a.items.Keys()
	lo, hi := from.UnixMilli(), to.UnixMilli()
	i := sort.Search(len(keys), func(i int) bool { return keys[i] >= lo })
	return i < len(keys) && keys[i] < hi
}

// BaseInterval returns the detected or declared base interval.
func (a *Temporal) BaseInterval() timeunit.Interval {
	return a.baseInterval
}

// GridInterval returns the grid interval chosen by the last Validate.
func (a *Temporal) GridInterval() granularity.Choice {
	return a.gridInterval
}

// Min and Max return the domain bounds.
func (a *Temporal) Min() time.Time { return a.min }
func (a *Temporal) Max() time.Time { return a.max }

// Location returns the time zone used for calendar rounding.
func (a *Temporal) Location() *time.Location { return a.loc }

// DateToPosition returns the position of a date.
//
// The date is rounded to its base interval and location places the point
// within that interval: 0 is its start and 1 its end.
func (a *Temporal) DateToPosition(t time.Time, location float64) float64 {
	start := timeunit.Round(t.In(a.loc), a.baseInterval)
	end := timeunit.Add(start, a.baseInterval)
	v := float64(start.UnixMilli()) + location*float64(end.Sub(start).Milliseconds())
	return a.ValueToPosition(v)
}

// PositionToDate returns the date at a position.
func (a *Temporal) PositionToDate(p float64) time.Time {
	return timeunit.FromMillis(int64(math.Round(a.PositionToValue(p))), a.loc)
}

// ZoomToDates zooms to the dates [from, to].
func (a *Temporal) ZoomToDates(from, to time.Time) ZoomRange {
	return a.Zoom(ZoomRange{
		Start: a.ValueToPosition(float64(from.UnixMilli())),
		End:   a.ValueToPosition(float64(to.UnixMilli())),
	}, false, true)
}

// Dates returns the base-rounded timestamps of the data items.
// The slice must not be modified.
func (a *Temporal) Dates() []int64 {
	return a.items.Keys()
}

// DateIndex returns the index of the data item whose base interval
// contains t.
func (a *Temporal) DateIndex(t time.Time) (int, bool) {
	return a.items.Index(timeunit.Round(t.In(a.loc), a.baseInterval).UnixMilli())
}

// PositionToIndex returns the index of the data item nearest to a position.
func (a *Temporal) PositionToIndex(p float64) int {
	return a.items.Nearest(a.PositionToValue(p))
}

// VisibleIndexRange returns the first and last data item index to draw.
//
// The range includes the item just outside each edge of the zoom window
// so lines crossing the window edge stay connected.
func (a *Temporal) VisibleIndexRange() (first, last int) {
	lo, hi := a.visibleValues()
	return a.items.FindClosestIndex(math.Round(lo)-1, indexresolver.Left),
		a.items.FindClosestIndex(math.Round(hi), indexresolver.Right)
}

func (a *Temporal) bounds() (lo, hi float64) {
	return float64(a.min.UnixMilli()), float64(a.max.UnixMilli())
}

func (a *Temporal) date(v float64) time.Time {
	return timeunit.FromMillis(int64(math.Round(v)), a.loc)
}

func (a *Temporal) floor(v float64) float64 {
	return float64(timeunit.Round(a.date(v), a.baseInterval).UnixMilli())
}

func (a *Temporal) ceil(v float64) float64 {
	return float64(timeunit.Ceil(a.date(v), a.baseInterval).UnixMilli())
}

func (a *Temporal) step(v float64, n int) float64 {
	t := a.date(v)
	for ; n > 0; n-- {
		t = timeunit.Add(t, a.baseInterval)
	}
	for ; n < 0; n++ {
		t = timeunit.Round(t.Add(-time.Millisecond), a.baseInterval)
	}
	return float64(t.UnixMilli())
}

func (a *Temporal) minWidth() float64 {
	return minPositionWidth
}

func (a *Temporal) zoomFactor() float64 {
	lo, hi := a.bounds()
	return max(math.Round((hi-lo)/a.baseInterval.Milliseconds()), 1)
}

func (a *Temporal) grid(lo, hi float64) []gridCell {
	duration := a.breaks.AdjustedDifference(lo, hi)
	if !(duration > 0) {
		a.logger.Debug("axis: degenerate visible duration", "duration", duration)
	}

	a.gridInterval = a.selector.Select(duration, a.baseInterval)
	if a.gridInterval.Overflow {
		a.logger.Debug(
			"axis: grid interval exceeds target count",
			slog.String("interval", a.gridInterval.Interval.String()),
			slog.Int("count", a.gridInterval.Count),
		)
	}

	iv := a.gridInterval.Interval
	dates := granularity.Generate(a.date(lo), a.date(hi), iv, a.breaks)
	cells := make([]gridCell, 0, len(dates))
	for i, d := range dates {
		end := timeunit.Add(d.Time, iv)
		if i+1 < len(dates) {
			end = dates[i+1].Time
		}
		cells = append(cells, gridCell{
			label:        FormatDate(d.Time, iv.Unit, d.PeriodChange),
			value:        float64(d.Time.UnixMilli()),
			endValue:     float64(end.UnixMilli()),
			periodChange: d.PeriodChange,
		})
	}
	return cells
}
