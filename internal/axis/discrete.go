package axis

import (
	"math"

	"github.com/wandb/axiskit/internal/indexresolver"
)

// indexEpsilon absorbs float error when snapping to whole indices.
const indexEpsilon = 1e-6

// Discrete is a category axis.
//
// Category i occupies the values [i, i+1).
type Discrete struct {
	*base

	categories *indexresolver.Resolver[string]
}

var _ Axis = (*Discrete)(nil)

// NewDiscrete returns a category axis.
func NewDiscrete(opts Options) *Discrete {
	a := &Discrete{
		base:       newBase(KindDiscrete, opts),
		categories: indexresolver.New(opts.Categories, nil),
	}
	a.d = a
	return a
}

// SetCategories replaces the categories.
func (a *Discrete) SetCategories(categories []string) {
	a.categories.Rebuild(categories)
	a.pool.invalidate()
	a.Invalidate()
	for _, s := range a.series {
		s.InvalidateDataRange()
	}
}

// Categories returns the categories in axis order.
func (a *Discrete) Categories() []string {
	return a.categories.Keys()
}

// CategoryIndex returns the index of a category.
func (a *Discrete) CategoryIndex(category string) (int, bool) {
	return a.categories.Index(category)
}

// CategoryToPosition returns the position of a category.
//
// location places the point within the category cell: 0 is its start,
// 0.5 its middle and 1 its end.
func (a *Discrete) CategoryToPosition(category string, location float64) (float64, bool) {
	i, ok := a.categories.Index(category)
	if !ok {
		return 0, false
	}
	return a.ValueToPosition(float64(i) + location), true
}

// PositionToCategory returns the category at a position.
func (a *Discrete) PositionToCategory(p float64) (string, bool) {
	return a.categories.Key(a.PositionToIndex(p))
}

// PositionToIndex returns the index of the category cell at a position,
// clamped to the valid indices.
func (a *Discrete) PositionToIndex(p float64) int {
	n := a.categories.Len()
	if n == 0 {
		return -1
	}
	i := int(math.Floor(a.PositionToValue(p) + indexEpsilon))
	return min(max(i, 0), n-1)
}

// VisibleIndexRange returns the first and last category index to draw.
//
// The range includes the item just outside each edge of the zoom window
// so lines crossing the window edge stay connected.
func (a *Discrete) VisibleIndexRange() (first, last int) {
	lo, hi := a.visibleValues()
	return a.categories.FindClosestIndex(lo-indexEpsilon, indexresolver.Left),
		a.categories.FindClosestIndex(hi-indexEpsilon, indexresolver.Right)
}

// ZoomToCategories zooms so that the categories from and to, and all
// categories between them, are visible.
func (a *Discrete) ZoomToCategories(from, to string) (ZoomRange, bool) {
	i, ok := a.categories.Index(from)
	if !ok {
		return a.Window(), false
	}
	j, ok := a.categories.Index(to)
	if !ok {
		return a.Window(), false
	}
	if i > j {
		i, j = j, i
	}

	return a.Zoom(ZoomRange{
		Start: a.ValueToPosition(float64(i)),
		End:   a.ValueToPosition(float64(j + 1)),
	}, false, true), true
}

func (a *Discrete) bounds() (lo, hi float64) {
	return 0, float64(max(a.categories.Len(), 1))
}

func (a *Discrete) floor(v float64) float64 {
	return math.Floor(v + indexEpsilon)
}

func (a *Discrete) ceil(v float64) float64 {
	return math.Ceil(v - indexEpsilon)
}

func (a *Discrete) step(v float64, n int) float64 {
	return v + float64(n)
}

func (a *Discrete) minWidth() float64 {
	return minPositionWidth
}

func (a *Discrete) zoomFactor() float64 {
	return float64(max(a.categories.Len(), 1))
}

func (a *Discrete) grid(lo, hi float64) []gridCell {
	n := a.categories.Len()
	if n == 0 {
		return nil
	}

	first := max(int(math.Floor(lo+indexEpsilon)), 0)
	last := min(int(math.Ceil(hi-indexEpsilon)), n) - 1
	count := last - first + 1
	if count <= 0 {
		return nil
	}

	every := max((count+a.gridCount-1)/a.gridCount, 1)
	cells := make([]gridCell, 0, count/every+1)
	for i := first; i <= last; i += every {
		label, _ := a.categories.Key(i)
		cells = append(cells, gridCell{
			label:    label,
			value:    float64(i),
			endValue: float64(min(i+every, n)),
		})
	}
	return cells
}
