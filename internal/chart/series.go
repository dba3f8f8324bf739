package chart

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/indexresolver"
)

// SeriesOptions declares a series.
type SeriesOptions struct {
	Name string

	// XAxis and YAxis are axis names.
	XAxis string
	YAxis string

	// XField and YField are the data item fields read for each axis.
	XField string
	YField string
}

// Series is a list of data items plotted against two axes.
type Series struct {
	id   uuid.UUID
	opts SeriesOptions

	items []DataItem

	// xs and ys are the parsed item fields.
	xs, ys []fieldValue

	// x and y are the item values in their axis' value space.
	x, y []float64

	// byX orders item indices by x value.
	byX *indexresolver.Resolver[int]

	rangeDirty   bool
	first, last  int
	animations   int
	lastAnimated axis.ZoomRange
}

var _ axis.DataRangeInvalidator = (*Series)(nil)
var _ axis.RangeAnimator = (*Series)(nil)

func newSeries(opts SeriesOptions) *Series {
	return &Series{
		id:         uuid.New(),
		opts:       opts,
		rangeDirty: true,
		first:      -1,
		last:       -1,
	}
}

func (s *Series) ID() uuid.UUID { return s.id }
func (s *Series) Name() string { return s.opts.Name }
func (s *Series) Options() SeriesOptions { return s.opts }
func (s *Series) Len() int { return len(s.items) }
func (s *Series) Items() []DataItem { return s.items }

// Item returns the data item at an index.
func (s *Series) Item(i int) (DataItem, bool) {
	if i < 0 || i >= len(s.items) {
		return nil, false
	}
	return s.items[i], true
}

// Values returns the x and y values of an item in axis value space.
func (s *Series) Values(i int) (x, y float64, ok bool) {
	if i < 0 || i >= len(s.x) {
		return 0, 0, false
	}
	return s.x[i], s.y[i], true
}

// InvalidateDataRange marks the visible item range for recomputation.
func (s *Series) InvalidateDataRange() {
	s.rangeDirty = true
}

// AnimateRange records a zoom transition on the series' axes.
func (s *Series) AnimateRange(r axis.ZoomRange, _ bool) {
	s.animations++
	s.lastAnimated = r
}

// setValues stores the item values and reindexes them.
func (s *Series) setValues(x, y []float64) {
	s.x, s.y = x, y

	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(x[a], x[b])
	})

	s.byX = indexresolver.New(order, func(i int) float64 { return x[i] })
	s.rangeDirty = true
}

// visibleRange returns the first and last item, in x order, within the
// values [lo, hi] plus one item past each end.
func (s *Series) visibleRange(lo, hi float64) (first, last int) {
	if !s.rangeDirty {
		return s.first, s.last
	}
	if s.byX == nil || s.byX.Len() == 0 {
		s.first, s.last = -1, -1
	} else {
		s.first = s.byX.FindClosestIndex(lo, indexresolver.Left)
		s.last = s.byX.FindClosestIndex(hi, indexresolver.Right)
	}
	s.rangeDirty = false
	return s.first, s.last
}

// nearest returns the item whose x value is closest to v.
func (s *Series) nearest(v float64) (int, bool) {
	if s.byX == nil {
		return -1, false
	}
	i := s.byX.Nearest(v)
	if i < 0 {
		return -1, false
	}
	item, _ := s.byX.Key(i)
	return item, true
}

// itemsInOrder returns item indices from first to last in x order.
func (s *Series) itemsInOrder(first, last int) []int {
	if first < 0 || last < first || s.byX == nil {
		return nil
	}
	return slices.Clone(s.byX.Keys()[first : last+1])
}
