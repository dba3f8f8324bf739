// Package axis maps domain values to positions and coordinates along one
// chart dimension and applies zoom windows to it.
//
// Every axis has a value space and a position space. Values are raw numbers
// for continuous axes, category indices for discrete axes and epoch
// milliseconds for temporal axes. Positions run from 0 at the domain minimum
// to 1 at the maximum after breaks are applied, and are flipped for inversed
// axes. The zoom window [Start, End] is a range of positions.
package axis

import (
	"github.com/google/uuid"

	"github.com/wandb/axiskit/internal/axisbreak"
)

// MaxCoordinate bounds every pixel coordinate returned by an axis.
const MaxCoordinate = 20000

// Kind is the domain type of an axis.
type Kind int

const (
	KindContinuous Kind = iota
	KindDiscrete
	KindTemporal
)

func (k Kind) String() string {
	switch k {
	case KindContinuous:
		return "continuous"
	case KindDiscrete:
		return "discrete"
	case KindTemporal:
		return "temporal"
	default:
		return "unknown"
	}
}

// DataRangeInvalidator is notified when an axis' visible window changes.
//
// Series implement it to re-clip their visible data items.
type DataRangeInvalidator interface {
	InvalidateDataRange()
}

// Axis is one coordinate dimension of a chart.
type Axis interface {
	ID() uuid.UUID
	Name() string
	Kind() Kind

	// Start and End are the zoom window in position space.
	Start() float64
	End() float64

	// SetRange sets the zoom window as given, without alignment or clamping.
	//
	// Pan gestures use it to move the window past the domain edges.
	SetRange(start, end float64)

	Inversed() bool

	// ValueToPosition maps a domain value to a position on the full domain.
	ValueToPosition(v float64) float64

	// PositionToValue is the inverse of ValueToPosition.
	PositionToValue(p float64) float64

	// Zoom aligns r to the axis' natural boundaries, applies it and returns
	// the window that was actually applied.
	//
	// The window is applied immediately; animate and instant only tell
	// attached series how to transition.
	Zoom(r ZoomRange, animate, instant bool) ZoomRange

	// MaxZoomFactor is how many times the axis can be zoomed in.
	MaxZoomFactor() float64

	// Breaks returns the breaks of the axis. The result may be nil.
	Breaks() *axisbreak.Set

	// Length is the pixel length of the axis.
	Length() float64
	SetLength(px float64)

	// PositionToCoordinate maps a position to a pixel offset within the
	// current zoom window, clamped to ±MaxCoordinate.
	PositionToCoordinate(p float64) float64

	// CoordinateToPosition is the inverse of PositionToCoordinate.
	CoordinateToPosition(c float64) float64

	// Invalidate marks the axis for recomputation by the next Validate.
	Invalidate()

	// Validate recomputes the axis if it is invalid.
	//
	// An Invalidate during Validate is deferred to the next Validate.
	Validate()

	// GridElements returns the pooled grid elements, enabled ones first in
	// domain order.
	GridElements() []*GridElement

	AttachSeries(s DataRangeInvalidator)
	DetachSeries(s DataRangeInvalidator)
}
