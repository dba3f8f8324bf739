package zoom

import (
	"slices"

	"github.com/wandb/axiskit/internal/axis"
)

//go:generate mockgen -destination=../zoomtest/rangelistener_mock.go -package=zoomtest github.com/wandb/axiskit/internal/zoom RangeListener

// RangeListener is notified when a scrollbar's window changes.
type RangeListener interface {
	RangeChanged(r axis.ZoomRange)
}

// Scrollbar is the state of a scrollbar widget, without any drawing.
type Scrollbar struct {
	r         axis.ZoomRange
	listeners []RangeListener
}

// NewScrollbar returns a scrollbar showing the full range.
func NewScrollbar() *Scrollbar {
	return &Scrollbar{r: axis.FullRange}
}

// Range returns the current window.
func (s *Scrollbar) Range() axis.ZoomRange {
	return s.r
}

// OnChange registers a listener.
func (s *Scrollbar) OnChange(l RangeListener) {
	if l != nil && !slices.Contains(s.listeners, l) {
		s.listeners = append(s.listeners, l)
	}
}

// RemoveListener unregisters a listener.
func (s *Scrollbar) RemoveListener(l RangeListener) {
	s.listeners = slices.DeleteFunc(s.listeners, func(x RangeListener) bool {
		return x == l
	})
}

// SetRange moves the scrollbar.
//
// Listeners are notified unless skipEcho is set. Updates that originate
// from the axes the scrollbar controls use skipEcho.
func (s *Scrollbar) SetRange(r axis.ZoomRange, skipEcho bool) {
	r = r.Normalize()
	if r.Start == s.r.Start && r.End == s.r.End {
		return
	}

	s.r = r
	if skipEcho {
		return
	}
	for _, l := range slices.Clone(s.listeners) {
		l.RangeChanged(r)
	}
}
