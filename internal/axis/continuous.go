package axis

import (
	"math"
)

const defaultMaxZoomFactor = 1000

// Continuous is a numeric axis.
type Continuous struct {
	*base

	fixedMin, fixedMax *float64
	dataMin, dataMax   float64
	hasData            bool
	maxZoomFactor      float64
}

var _ Axis = (*Continuous)(nil)

// NewContinuous returns a numeric axis.
func NewContinuous(opts Options) *Continuous {
	a := &Continuous{
		base:          newBase(KindContinuous, opts),
		fixedMin:      opts.Min,
		fixedMax:      opts.Max,
		maxZoomFactor: opts.MaxZoomFactor,
	}
	if !(a.maxZoomFactor >= 1) {
		a.maxZoomFactor = defaultMaxZoomFactor
	}
	a.d = a
	return a
}

// SetDataRange sets the range of the attached series' values.
func (a *Continuous) SetDataRange(lo, hi float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		a.hasData = false
	} else {
		a.dataMin, a.dataMax = min(lo, hi), max(lo, hi)
		a.hasData = true
	}
	a.Invalidate()
	for _, s := range a.series {
		s.InvalidateDataRange()
	}
}

// ZoomToValues zooms to the values [lo, hi].
func (a *Continuous) ZoomToValues(lo, hi float64) ZoomRange {
	return a.Zoom(ZoomRange{
		Start: a.ValueToPosition(lo),
		End:   a.ValueToPosition(hi),
	}, false, true)
}

func (a *Continuous) bounds() (lo, hi float64) {
	lo, hi = 0, 1
	if a.hasData {
		lo, hi = a.dataMin, a.dataMax
	}
	if a.fixedMin != nil {
		lo = *a.fixedMin
	}
	if a.fixedMax != nil {
		hi = *a.fixedMax
	}

	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		pad := math.Abs(lo) * 0.1
		if pad == 0 {
			pad = 1
		}
		lo, hi = lo-pad, hi+pad
	}
	return lo, hi
}

func (a *Continuous) floor(v float64) float64 { return v }
func (a *Continuous) ceil(v float64) float64 { return v }

func (a *Continuous) step(v float64, n int) float64 {
	lo, hi := a.bounds()
	return v + float64(n)*(hi-lo)/a.maxZoomFactor
}

func (a *Continuous) minWidth() float64 {
	return 1 / a.maxZoomFactor
}

func (a *Continuous) zoomFactor() float64 {
	return a.maxZoomFactor
}

func (a *Continuous) grid(lo, hi float64) []gridCell {
	span := hi - lo
	if !(span > 0) {
		return nil
	}

	step := NiceStep(span / float64(max(a.gridCount-1, 1)))
	first := math.Ceil(lo/step-1e-9) * step

	var cells []gridCell
	for i := 0; i <= a.gridCount; i++ {
		v := first + float64(i)*step
		if v > hi+step*1e-9 {
			break
		}
		// Avoid labels like "-0" and "0.30000000000000004".
		v = math.Round(v/step) * step
		cells = append(cells, gridCell{
			label:    FormatNumber(v, step),
			value:    v,
			endValue: v + step,
		})
	}
	return cells
}

// NiceStep returns the smallest 1, 2 or 5 times a power of ten that is at
// least raw.
func NiceStep(raw float64) float64 {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return 1
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * magnitude; step >= raw*(1-1e-12) {
			return step
		}
	}
	return 10 * magnitude
}
