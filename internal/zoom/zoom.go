// Package zoom keeps a group of axes and a scrollbar on the same zoom window.
//
// Axes align a requested window to their own boundaries, so the window an
// axis applies may differ from the one it was asked for. The coordinator
// reads the applied window back and echoes it to the scrollbar without
// triggering the scrollbar's own change handling.
package zoom

import (
	"github.com/wandb/axiskit/internal/axis"
)

// CommonRange returns the union of the axes' zoom windows.
//
// Inversed axes are flipped first so that windows compare in the same
// direction. It returns the full range for an empty group.
func CommonRange(axes []axis.Axis) axis.ZoomRange {
	if len(axes) == 0 {
		return axis.FullRange
	}

	out := axis.ZoomRange{Start: 1, End: 0}
	for _, a := range axes {
		r := groupRange(a)
		out.Start = min(out.Start, r.Start)
		out.End = max(out.End, r.End)
	}
	return out
}

// ZoomAxes zooms every axis to r and returns the window applied by the last
// axis.
//
// Axes that align differently are left on their own windows; the last one
// is authoritative for the group.
func ZoomAxes(axes []axis.Axis, r axis.ZoomRange, instant bool) axis.ZoomRange {
	applied := r.Normalize()
	for _, a := range axes {
		req := r
		if a.Inversed() {
			req = req.Flip()
		}

		got := a.Zoom(req, !instant, instant)
		if a.Inversed() {
			got = got.Flip()
		}
		applied = got
	}
	return applied
}

// groupRange returns an axis' window in group orientation.
func groupRange(a axis.Axis) axis.ZoomRange {
	r := axis.ZoomRange{Start: a.Start(), End: a.End()}
	if a.Inversed() {
		r = r.Flip()
	}
	return r
}

// setGroupRange sets an axis' window from group orientation without
// alignment.
func setGroupRange(a axis.Axis, r axis.ZoomRange) {
	if a.Inversed() {
		r = r.Flip()
	}
	a.SetRange(r.Start, r.End)
}
