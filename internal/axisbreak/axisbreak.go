// Package axisbreak compresses stretches of an axis domain.
//
// A break is a domain range [StartValue, EndValue] drawn at BreakSize times
// its normal width. Position math runs on adjusted values: a domain value
// minus the width removed by every break before it.
package axisbreak

import (
	"cmp"
	"math"
	"slices"
)

// Break is a compressed range of the domain.
type Break struct {
	StartValue float64 `yaml:"start" json:"start"`
	EndValue   float64 `yaml:"end" json:"end"`

	// BreakSize is the fraction of the normal width that is kept.
	// Zero collapses the break completely.
	BreakSize float64 `yaml:"breakSize" json:"breakSize"`

	// AdjustedStartValue and AdjustedEndValue are the break bounds after
	// earlier breaks are applied. They are filled in by Set.
	AdjustedStartValue float64 `yaml:"-" json:"adjustedStart"`
	AdjustedEndValue   float64 `yaml:"-" json:"adjustedEnd"`
}

// Width returns the domain width of the break.
func (b Break) Width() float64 {
	return b.EndValue - b.StartValue
}

// Contains reports whether v lies inside the break, bounds included.
func (b Break) Contains(v float64) bool {
	return v >= b.StartValue && v <= b.EndValue
}

// removed returns how much of the domain the break removes up to v.
func (b Break) removed(v float64) float64 {
	switch {
	case v <= b.StartValue:
		return 0
	case v >= b.EndValue:
		return b.Width() * (1 - b.BreakSize)
	default:
		return (v - b.StartValue) * (1 - b.BreakSize)
	}
}

// Set is an ordered list of non-overlapping breaks.
//
// A nil *Set has no breaks; every method is safe to call on it.
type Set struct {
	breaks []Break
}

// NewSet returns a set holding the given breaks, normalized.
func NewSet(breaks ...Break) *Set {
	s := &Set{}
	s.Replace(breaks)
	return s
}

// Replace discards the current breaks and stores the given ones.
//
// Bounds are reordered, BreakSize is clamped to [0,1], and overlapping or
// touching breaks are merged, keeping the smaller BreakSize.
func (s *Set) Replace(breaks []Break) {
	normalized := make([]Break, 0, len(breaks))
	for _, b := range breaks {
		if math.IsNaN(b.StartValue) || math.IsNaN(b.EndValue) {
			continue
		}
		if b.StartValue > b.EndValue {
			b.StartValue, b.EndValue = b.EndValue, b.StartValue
		}
		b.BreakSize = min(max(b.BreakSize, 0), 1)
		normalized = append(normalized, b)
	}

	slices.SortFunc(normalized, func(a, b Break) int {
		return cmp.Compare(a.StartValue, b.StartValue)
	})

	merged := normalized[:0]
	for _, b := range normalized {
		if n := len(merged); n > 0 && b.StartValue <= merged[n-1].EndValue {
			last := &merged[n-1]
			last.EndValue = max(last.EndValue, b.EndValue)
			last.BreakSize = min(last.BreakSize, b.BreakSize)
			continue
		}
		merged = append(merged, b)
	}

	s.breaks = merged
	for i := range s.breaks {
		s.breaks[i].AdjustedStartValue = s.Adjust(s.breaks[i].StartValue)
		s.breaks[i].AdjustedEndValue = s.Adjust(s.breaks[i].EndValue)
	}
}

// Clear removes all breaks.
func (s *Set) Clear() {
	if s != nil {
		s.breaks = nil
	}
}

// Len returns the number of breaks.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.breaks)
}

// Breaks returns a copy of the breaks in domain order.
func (s *Set) Breaks() []Break {
	if s == nil {
		return nil
	}
	return slices.Clone(s.breaks)
}

// Adjust maps a domain value to its break-adjusted value.
//
// Adjust is monotonic: a < b implies Adjust(a) <= Adjust(b).
func (s *Set) Adjust(v float64) float64 {
	if s == nil {
		return v
	}

	removed := 0.0
	for _, b := range s.breaks {
		if v <= b.StartValue {
			break
		}
		removed += b.removed(v)
	}
	return v - removed
}

// Unadjust is the inverse of Adjust.
//
// A fully collapsed break maps back to its start value.
func (s *Set) Unadjust(adjusted float64) float64 {
	if s == nil {
		return adjusted
	}

	removed := 0.0
	for _, b := range s.breaks {
		adjStart := b.StartValue - removed
		kept := b.Width() * b.BreakSize
		if adjusted <= adjStart || (kept == 0 && nearlyEqual(adjusted, adjStart)) {
			break
		}

		if adjusted < adjStart+kept {
			return b.StartValue + (adjusted-adjStart)/b.BreakSize
		}
		removed += b.Width() * (1 - b.BreakSize)
	}
	return adjusted + removed
}

// nearlyEqual reports whether a and b are within a few ulps.
//
// Positions converted back to adjusted values carry rounding noise, and a
// value that lands just past a collapsed break would otherwise jump to the
// break end.
func nearlyEqual(a, b float64) bool {
	mag := max(math.Abs(a), math.Abs(b))
	ulp := math.Nextafter(mag, math.Inf(1)) - mag
	return math.Abs(a-b) <= 4*ulp
}

// AdjustedDifference returns Adjust(b) - Adjust(a).
func (s *Set) AdjustedDifference(a, b float64) float64 {
	return s.Adjust(b) - s.Adjust(a)
}

// Containing returns the bounds of the break that contains v.
func (s *Set) Containing(v float64) (start, end float64, ok bool) {
	b, ok := s.Find(v)
	if !ok {
		return 0, 0, false
	}
	return b.StartValue, b.EndValue, true
}

// Find returns the break that contains v.
func (s *Set) Find(v float64) (Break, bool) {
	if s == nil {
		return Break{}, false
	}

	i, found := slices.BinarySearchFunc(s.breaks, v, func(b Break, v float64) int {
		return cmp.Compare(b.StartValue, v)
	})
	if found {
		return s.breaks[i], true
	}
	if i > 0 && s.breaks[i-1].Contains(v) {
		return s.breaks[i-1], true
	}
	return Break{}, false
}

// Removed returns the total width removed by breaks inside [from, to].
func (s *Set) Removed(from, to float64) float64 {
	return (to - from) - s.AdjustedDifference(from, to)
}
