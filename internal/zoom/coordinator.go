package zoom

import (
	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/observability"
)

// DefaultOverPan is how far past the domain edges a pan may drag, as a
// fraction of the domain.
const DefaultOverPan = 0.1

// CoordinatorParams configures a Coordinator.
type CoordinatorParams struct {
	// Scrollbar is kept in sync with the axes. It may be nil.
	Scrollbar *Scrollbar

	// OverPan is the rubber-band fraction allowed during a pan.
	// Negative means DefaultOverPan.
	OverPan float64

	Logger *observability.CoreLogger
}

// Coordinator zooms a group of axes together.
type Coordinator struct {
	axes      []axis.Axis
	scrollbar *Scrollbar
	overPan   float64
	logger    *observability.CoreLogger

	// propagating is set while the coordinator pushes a window out. A
	// zoom requested meanwhile is kept in pending and applied once the
	// pass is over; the latest request wins.
	propagating bool
	pending     *zoomRequest

	pan *panGesture
}

// maxDeferredZooms bounds how many deferred requests one Zoom applies.
const maxDeferredZooms = 8

// zoomRequest is a zoom deferred while propagating.
type zoomRequest struct {
	r       axis.ZoomRange
	instant bool
}

// panGesture is the state of an ongoing pan.
type panGesture struct {
	origin  axis.ZoomRange
	current axis.ZoomRange
}

// NewCoordinator returns a coordinator for a group of axes and registers it
// with the scrollbar.
func NewCoordinator(axes []axis.Axis, params CoordinatorParams) *Coordinator {
	overPan := params.OverPan
	if overPan < 0 {
		overPan = DefaultOverPan
	}

	c := &Coordinator{
		axes:      axes,
		scrollbar: params.Scrollbar,
		overPan:   overPan,
		logger:    observability.OrNoOp(params.Logger).With("component", "zoom"),
	}
	if c.scrollbar != nil {
		c.scrollbar.OnChange(c)
	}
	return c
}

// Axes returns the coordinated axes.
func (c *Coordinator) Axes() []axis.Axis {
	return c.axes
}

// Range returns the common window of the axes.
func (c *Coordinator) Range() axis.ZoomRange {
	return CommonRange(c.axes)
}

// RangeChanged handles a window proposed by the scrollbar.
func (c *Coordinator) RangeChanged(r axis.ZoomRange) {
	c.HandleScrollbarChange(r)
}

// HandleScrollbarChange zooms the axes to a proposed window and echoes the
// applied window back to the scrollbar.
func (c *Coordinator) HandleScrollbarChange(r axis.ZoomRange) axis.ZoomRange {
	return c.Zoom(r, true)
}

// Zoom zooms the axes to r and returns the applied window.
//
// A Zoom called while the coordinator is propagating, for example by a
// series reacting to its axis moving, is deferred until the current pass
// is done. Only the last deferred request is applied, and a request equal
// to the one just applied is dropped.
func (c *Coordinator) Zoom(r axis.ZoomRange, instant bool) axis.ZoomRange {
	if c.propagating {
		c.logger.Debug(
			"zoom: deferred zoom while propagating",
			"start", r.Start,
			"end", r.End,
		)
		c.pending = &zoomRequest{r: r, instant: instant}
		return c.Range()
	}

	c.propagating = true
	defer func() {
		c.propagating = false
		c.pending = nil
	}()

	applied := c.apply(r, instant)
	last := r
	for range maxDeferredZooms {
		req := c.pending
		c.pending = nil
		if req == nil {
			break
		}
		if req.r == last {
			c.logger.Debug(
				"zoom: dropped repeated zoom",
				"start", req.r.Start,
				"end", req.r.End,
			)
			continue
		}
		applied = c.apply(req.r, req.instant)
		last = req.r
	}
	return applied
}

func (c *Coordinator) apply(r axis.ZoomRange, instant bool) axis.ZoomRange {
	applied := ZoomAxes(c.axes, r, instant)
	if c.scrollbar != nil {
		c.scrollbar.SetRange(applied, true)
	}
	return applied
}

// ZoomAround scales the common window by factor, keeping the point at
// anchor fixed.
//
// anchor is relative to the window: 0 is its start and 1 its end. A factor
// below 1 zooms in.
func (c *Coordinator) ZoomAround(anchor, factor float64) axis.ZoomRange {
	if !(factor > 0) {
		return c.Range()
	}
	anchor = min(max(anchor, 0), 1)

	cur := c.Range()
	width := min(cur.Width()*factor, 1)
	pivot := cur.Start + anchor*cur.Width()

	next := axis.ZoomRange{
		Start: pivot - anchor*width,
		End:   pivot + (1-anchor)*width,
	}
	return c.Zoom(next.Shift(), true)
}

// BeginPan starts a pan gesture from the current window.
func (c *Coordinator) BeginPan() {
	r := c.Range()
	c.pan = &panGesture{origin: r, current: r}
}

// Pan moves the window by delta relative to where the gesture started.
//
// The window may go past the domain edges by the over-pan fraction. Axes
// get the window without alignment until EndPan.
func (c *Coordinator) Pan(delta float64) axis.ZoomRange {
	if c.pan == nil {
		c.BeginPan()
	}

	origin := c.pan.origin
	lo := -c.overPan - origin.Start
	hi := 1 + c.overPan - origin.End
	delta = min(max(delta, lo), hi)

	r := axis.ZoomRange{Start: origin.Start + delta, End: origin.End + delta}
	c.pan.current = r
	for _, a := range c.axes {
		setGroupRange(a, r)
	}
	if c.scrollbar != nil {
		c.scrollbar.SetRange(r.Shift(), true)
	}
	return r
}

// EndPan commits the pan, moving the window back inside the domain.
func (c *Coordinator) EndPan() axis.ZoomRange {
	if c.pan == nil {
		return c.Range()
	}

	final := c.pan.current.Shift()
	c.pan = nil
	return c.Zoom(final, false)
}

// Panning reports whether a pan gesture is in progress.
func (c *Coordinator) Panning() bool {
	return c.pan != nil
}
