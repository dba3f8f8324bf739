package axis

import (
	"log/slog"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/wandb/axiskit/internal/axisbreak"
	"github.com/wandb/axiskit/internal/observability"
)

const (
	defaultGridCount = 10

	// maxAlignSteps bounds how far alignment widens a window that is too
	// narrow, e.g. one that sits inside a collapsed break.
	maxAlignSteps = 10_000

	// minPositionWidth is the narrowest window a quantized axis accepts.
	minPositionWidth = 1e-9
)

// Options configures a new axis.
//
// Fields that do not apply to an axis kind are ignored.
type Options struct {
	Name     string
	Inversed bool

	// GridCount is the target maximum number of grid lines.
	GridCount int

	// Length is the pixel length of the axis.
	Length float64

	// Breaks are declared breaks in value space.
	Breaks []axisbreak.Break

	// Min and Max fix the domain of a continuous axis.
	Min, Max *float64

	// MaxZoomFactor limits zooming on a continuous axis.
	MaxZoomFactor float64

	// Categories are the initial categories of a discrete axis.
	Categories []string

	Temporal TemporalOptions

	// GridPoolSize bounds the number of pooled grid elements.
	GridPoolSize int

	Logger *observability.CoreLogger
}

// RangeAnimator is implemented by attached series that animate zoom
// transitions.
type RangeAnimator interface {
	AnimateRange(r ZoomRange, instant bool)
}

// domain is the part of an axis that depends on its kind.
type domain interface {
	// bounds returns the domain minimum and maximum in value space.
	bounds() (lo, hi float64)

	// floor and ceil align a value to the nearest boundary below or above.
	floor(v float64) float64
	ceil(v float64) float64

	// step moves an aligned value by n units.
	step(v float64, n int) float64

	// minWidth is the narrowest window, in position space.
	minWidth() float64

	zoomFactor() float64

	// grid returns the grid lines for the visible values [lo, hi].
	grid(lo, hi float64) []gridCell
}

// base implements Axis on top of a domain.
type base struct {
	id       uuid.UUID
	name     string
	kind     Kind
	inversed bool

	start, end float64
	length     float64
	gridCount  int

	breaks *axisbreak.Set
	pool   *gridPool
	series []DataRangeInvalidator

	invalid    bool
	validating bool

	logger *observability.CoreLogger
	d      domain
}

func newBase(kind Kind, opts Options) *base {
	gridCount := opts.GridCount
	if gridCount <= 0 {
		gridCount = defaultGridCount
	}
	length := opts.Length
	if !(length > 0) {
		length = 1
	}

	id := uuid.New()
	return &base{
		id:        id,
		name:      opts.Name,
		kind:      kind,
		inversed:  opts.Inversed,
		start:     0,
		end:       1,
		length:    length,
		gridCount: gridCount,
		breaks:    axisbreak.NewSet(opts.Breaks...),
		pool:      newGridPool(opts.GridPoolSize),
		invalid:   true,
		logger: observability.OrNoOp(opts.Logger).With(
			"axis", opts.Name,
			"axis_kind", kind.String(),
		),
	}
}

func (a *base) ID() uuid.UUID { return a.id }
func (a *base) Name() string { return a.name }
func (a *base) Kind() Kind { return a.kind }
func (a *base) Start() float64 { return a.start }
func (a *base) End() float64 { return a.end }
func (a *base) Inversed() bool { return a.inversed }
func (a *base) Length() float64 { return a.length }
func (a *base) Breaks() *axisbreak.Set { return a.breaks }
func (a *base) MaxZoomFactor() float64 { return a.d.zoomFactor() }
func (a *base) GridCount() int { return a.gridCount }
func (a *base) Window() ZoomRange { return ZoomRange{Start: a.start, End: a.end} }
func (a *base) Logger() *observability.CoreLogger { return a.logger }

// SetBreaks replaces the declared breaks.
func (a *base) SetBreaks(breaks []axisbreak.Break) {
	a.breaks.Replace(breaks)
	a.pool.invalidate()
	a.Invalidate()
}

func (a *base) SetLength(px float64) {
	if px > 0 && px != a.length {
		a.length = px
		a.Invalidate()
	}
}

// toPosition maps a value to a position ignoring inversion.
func (a *base) toPosition(v float64) float64 {
	lo, hi := a.d.bounds()
	alo, ahi := a.breaks.Adjust(lo), a.breaks.Adjust(hi)
	if ahi == alo {
		return 0
	}
	return (a.breaks.Adjust(v) - alo) / (ahi - alo)
}

// toValue is the inverse of toPosition.
func (a *base) toValue(p float64) float64 {
	lo, hi := a.d.bounds()
	alo, ahi := a.breaks.Adjust(lo), a.breaks.Adjust(hi)
	return a.breaks.Unadjust(alo + p*(ahi-alo))
}

func (a *base) ValueToPosition(v float64) float64 {
	p := a.toPosition(v)
	if a.inversed {
		return 1 - p
	}
	return p
}

func (a *base) PositionToValue(p float64) float64 {
	if a.inversed {
		p = 1 - p
	}
	return a.toValue(p)
}

func (a *base) PositionToCoordinate(p float64) float64 {
	w := a.end - a.start
	if w == 0 || math.IsNaN(p) {
		return 0
	}
	c := (p - a.start) / w * a.length
	return min(max(c, -MaxCoordinate), MaxCoordinate)
}

func (a *base) CoordinateToPosition(c float64) float64 {
	return a.start + c/a.length*(a.end-a.start)
}

func (a *base) SetRange(start, end float64) {
	if start == a.start && end == a.end {
		return
	}

	a.start, a.end = start, end
	a.Invalidate()
	for _, s := range a.series {
		s.InvalidateDataRange()
	}
}

func (a *base) Zoom(r ZoomRange, animate, instant bool) ZoomRange {
	normalized := r.Normalize()
	if normalized != r {
		a.logger.Debug(
			"axis: corrected zoom range",
			"start", r.Start,
			"end", r.End,
		)
	}

	aligned := normalized
	if a.inversed {
		aligned = aligned.Flip()
	}
	aligned = a.align(aligned)
	if a.inversed {
		aligned = aligned.Flip()
	}

	a.SetRange(aligned.Start, aligned.End)
	applied := ZoomRange{Start: a.start, End: a.end, Priority: r.Priority}

	if animate {
		for _, s := range a.series {
			if animator, ok := s.(RangeAnimator); ok {
				animator.AnimateRange(applied, instant)
			}
		}
	}
	return applied
}

// align snaps an uninversed range to domain boundaries and widens it to
// the minimum width.
func (a *base) align(r ZoomRange) ZoomRange {
	lo, hi := a.d.bounds()
	vs := clamp(a.d.floor(a.toValue(r.Start)), lo, hi)
	ve := clamp(a.d.ceil(a.toValue(r.End)), lo, hi)

	minWidth := a.d.minWidth() * (1 - 1e-9)
	for i := 0; i < maxAlignSteps; i++ {
		if ve > vs && a.toPosition(ve)-a.toPosition(vs) >= minWidth {
			break
		}
		if vs <= lo && ve >= hi {
			break
		}

		growStart := (r.Priority == PriorityEnd && vs > lo) || ve >= hi
		if growStart {
			vs = max(a.d.step(vs, -1), lo)
		} else {
			ve = min(a.d.step(ve, 1), hi)
		}
	}

	return ZoomRange{
		Start:    a.toPosition(vs),
		End:      a.toPosition(ve),
		Priority: r.Priority,
	}
}

// visibleValues returns the value bounds of the zoom window.
func (a *base) visibleValues() (lo, hi float64) {
	w := a.Window()
	if a.inversed {
		w = w.Flip()
	}
	dlo, dhi := a.d.bounds()
	return clamp(a.toValue(w.Start), dlo, dhi), clamp(a.toValue(w.End), dlo, dhi)
}

func (a *base) Invalidate() {
	a.invalid = true
}

// Invalid reports whether the axis needs a Validate.
func (a *base) Invalid() bool {
	return a.invalid
}

func (a *base) Validate() {
	if !a.invalid {
		return
	}
	if a.validating {
		a.logger.Debug("axis: validation deferred")
		return
	}

	a.validating = true
	a.invalid = false
	defer func() { a.validating = false }()

	lo, hi := a.visibleValues()
	cells := a.d.grid(lo, hi)

	a.pool.begin(len(cells))
	for _, c := range cells {
		el := a.pool.acquire(c.label, c.value)
		el.Value = c.value
		el.EndValue = c.endValue
		el.Position = a.ValueToPosition(c.value)
		el.EndPosition = a.ValueToPosition(c.endValue)
		el.PeriodChange = c.periodChange
	}
	a.pool.finish()

	a.logger.Debug(
		"axis: validated",
		slog.Int("grid_elements", len(cells)),
		slog.Float64("start", a.start),
		slog.Float64("end", a.end),
	)
}

func (a *base) GridElements() []*GridElement {
	return a.pool.elements()
}

func (a *base) AttachSeries(s DataRangeInvalidator) {
	if s == nil || slices.Contains(a.series, s) {
		return
	}
	a.series = append(a.series, s)
}

func (a *base) DetachSeries(s DataRangeInvalidator) {
	a.series = slices.DeleteFunc(a.series, func(x DataRangeInvalidator) bool {
		return x == s
	})
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
