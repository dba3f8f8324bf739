package axis

import (
	"fmt"
	"math"
)

// Priority names the edge of a ZoomRange that alignment must preserve.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityStart
	PriorityEnd
)

func (p Priority) String() string {
	switch p {
	case PriorityStart:
		return "start"
	case PriorityEnd:
		return "end"
	default:
		return "none"
	}
}

// ZoomRange is a window in position space.
type ZoomRange struct {
	Start    float64  `yaml:"start" json:"start"`
	End      float64  `yaml:"end" json:"end"`
	Priority Priority `yaml:"-" json:"-"`
}

// FullRange is the unzoomed window.
var FullRange = ZoomRange{Start: 0, End: 1}

// Width returns End - Start.
func (r ZoomRange) Width() float64 {
	return r.End - r.Start
}

// Flip mirrors the range for an inversed axis.
func (r ZoomRange) Flip() ZoomRange {
	return ZoomRange{Start: 1 - r.End, End: 1 - r.Start, Priority: r.Priority.opposite()}
}

func (p Priority) opposite() Priority {
	switch p {
	case PriorityStart:
		return PriorityEnd
	case PriorityEnd:
		return PriorityStart
	default:
		return PriorityNone
	}
}

// Normalize reorders an inverted range and clamps it to [0, 1].
//
// NaN bounds are replaced by the full range.
func (r ZoomRange) Normalize() ZoomRange {
	if math.IsNaN(r.Start) {
		r.Start = 0
	}
	if math.IsNaN(r.End) {
		r.End = 1
	}
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
		r.Priority = r.Priority.opposite()
	}
	r.Start = min(max(r.Start, 0), 1)
	r.End = min(max(r.End, 0), 1)
	return r
}

// Shift moves the range back inside [0, 1] keeping its width.
func (r ZoomRange) Shift() ZoomRange {
	w := min(r.Width(), 1)
	switch {
	case r.Start < 0:
		r.Start, r.End = 0, w
	case r.End > 1:
		r.Start, r.End = 1-w, 1
	}
	return r
}

func (r ZoomRange) String() string {
	return fmt.Sprintf("[%.4f, %.4f]", r.Start, r.End)
}
