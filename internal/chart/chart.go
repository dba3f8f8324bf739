// Package chart hosts axes and series.
//
// A Chart owns its axes and series explicitly: series are keyed by id, and
// each series names the axes it is plotted against. Validate feeds the
// series data to the axes and recomputes them.
package chart

import (
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/observability"
	"github.com/wandb/axiskit/internal/observability/axiserr"
)

// Params configures a new Chart.
type Params struct {
	// Factory creates axes by type name. Defaults to axis.DefaultFactory.
	Factory axis.Factory

	Logger *observability.CoreLogger
}

// Chart is a set of axes and the series plotted against them.
type Chart struct {
	factory axis.Factory
	logger  *observability.CoreLogger

	axes      map[uuid.UUID]axis.Axis
	axisOrder []uuid.UUID
	byName    map[string]uuid.UUID

	// declared holds the categories a discrete axis was created with.
	declared map[uuid.UUID][]string

	series      map[uuid.UUID]*Series
	seriesOrder []uuid.UUID
}

// Axes that accept data from series.
type (
	dataRangeSetter interface{ SetDataRange(lo, hi float64) }
	categorySetter  interface{ SetCategories(categories []string) }
	dateSetter      interface{ SetDates(dates []time.Time) }
	locationGetter  interface{ Location() *time.Location }

	categoryLocator interface {
		CategoryToPosition(category string, location float64) (float64, bool)
	}
	dateLocator interface {
		DateToPosition(t time.Time, location float64) float64
	}
)

// New returns an empty chart.
func New(params Params) *Chart {
	factory := params.Factory
	if factory == nil {
		factory = axis.DefaultFactory()
	}

	return &Chart{
		factory:  factory,
		logger:   observability.OrNoOp(params.Logger).With("component", "chart"),
		axes:     make(map[uuid.UUID]axis.Axis),
		byName:   make(map[string]uuid.UUID),
		declared: make(map[uuid.UUID][]string),
		series:   make(map[uuid.UUID]*Series),
	}
}

// AddAxis creates an axis of the named type.
func (c *Chart) AddAxis(typeName string, opts axis.Options) (axis.Axis, error) {
	if opts.Name == "" {
		return nil, axiserr.Newf("chart: axis has no name").
			Kind(axiserr.KindConfig)
	}
	if _, ok := c.byName[opts.Name]; ok {
		return nil, axiserr.Newf("chart: duplicate axis %q", opts.Name).
			Kind(axiserr.KindConfig).
			Attr(slog.String("axis", opts.Name))
	}
	if opts.Logger == nil {
		opts.Logger = c.logger
	}

	a, err := c.factory.New(typeName, opts)
	if err != nil {
		return nil, err
	}

	c.axes[a.ID()] = a
	c.axisOrder = append(c.axisOrder, a.ID())
	c.byName[opts.Name] = a.ID()
	if len(opts.Categories) > 0 {
		c.declared[a.ID()] = slices.Clone(opts.Categories)
	}
	return a, nil
}

// Axis returns the axis with the given name.
func (c *Chart) Axis(name string) (axis.Axis, bool) {
	id, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.axes[id], true
}

// Axes returns the axes in creation order.
func (c *Chart) Axes() []axis.Axis {
	out := make([]axis.Axis, 0, len(c.axisOrder))
	for _, id := range c.axisOrder {
		out = append(out, c.axes[id])
	}
	return out
}

// AddSeries creates a series plotted against two existing axes.
//
// It is a configuration error for the series to name an axis that does not
// exist, or to leave an axis or field unset.
func (c *Chart) AddSeries(opts SeriesOptions) (*Series, error) {
	for _, s := range c.series {
		if s.opts.Name == opts.Name {
			return nil, axiserr.Newf("chart: duplicate series %q", opts.Name).
				Kind(axiserr.KindConfig).
				Attr(slog.String("series", opts.Name))
		}
	}

	for _, ref := range []struct{ dim, axis, field string }{
		{"x", opts.XAxis, opts.XField},
		{"y", opts.YAxis, opts.YField},
	} {
		if ref.axis == "" {
			return nil, axiserr.Newf(
				"chart: series %q has no %s axis", opts.Name, ref.dim,
			).Kind(axiserr.KindConfig).Attr(slog.String("series", opts.Name))
		}
		if _, ok := c.byName[ref.axis]; !ok {
			return nil, axiserr.Newf(
				"chart: series %q references unknown %s axis %q",
				opts.Name, ref.dim, ref.axis,
			).Kind(axiserr.KindConfig).
				Attr(slog.String("series", opts.Name)).
				Attr(slog.String("axis", ref.axis))
		}
		if ref.field == "" {
			return nil, axiserr.Newf(
				"chart: series %q has no %s field", opts.Name, ref.dim,
			).Kind(axiserr.KindConfig).Attr(slog.String("series", opts.Name))
		}
	}

	s := newSeries(opts)
	c.series[s.id] = s
	c.seriesOrder = append(c.seriesOrder, s.id)

	x, y := c.seriesAxes(s)
	x.AttachSeries(s)
	if y != x {
		y.AttachSeries(s)
	}
	return s, nil
}

// RemoveSeries detaches and forgets a series.
func (c *Chart) RemoveSeries(s *Series) {
	if _, ok := c.series[s.id]; !ok {
		return
	}

	x, y := c.seriesAxes(s)
	x.DetachSeries(s)
	y.DetachSeries(s)

	delete(c.series, s.id)
	c.seriesOrder = slices.DeleteFunc(c.seriesOrder, func(id uuid.UUID) bool {
		return id == s.id
	})
}

// Series returns the series with the given name.
func (c *Chart) Series(name string) (*Series, bool) {
	for _, id := range c.seriesOrder {
		if s := c.series[id]; s.opts.Name == name {
			return s, true
		}
	}
	return nil, false
}

// AllSeries returns the series in creation order.
func (c *Chart) AllSeries() []*Series {
	out := make([]*Series, 0, len(c.seriesOrder))
	for _, id := range c.seriesOrder {
		out = append(out, c.series[id])
	}
	return out
}

// SetData replaces a series' data items.
//
// Every item must carry the series' x and y fields in a form its axes
// accept. On error, the series keeps its previous data.
func (c *Chart) SetData(s *Series, items []DataItem) error {
	if _, ok := c.series[s.id]; !ok {
		return axiserr.Newf("chart: unknown series %q", s.opts.Name).
			Kind(axiserr.KindConfig)
	}

	x, y := c.seriesAxes(s)
	xs := make([]fieldValue, len(items))
	ys := make([]fieldValue, len(items))

	for i, item := range items {
		var err error
		xs[i], err = parseField(item, s.opts.XField, x.Kind(), location(x))
		if err == nil {
			ys[i], err = parseField(item, s.opts.YField, y.Kind(), location(y))
		}
		if err != nil {
			return axiserr.Bubblef(err, "chart: series %q item %d", s.opts.Name, i).
				Attr(slog.String("series", s.opts.Name)).
				Attr(slog.Int("item", i))
		}
	}

	s.items = slices.Clone(items)
	s.xs, s.ys = xs, ys
	s.x, s.y = nil, nil
	s.byX = nil
	s.rangeDirty = true
	return nil
}

// Validate feeds series data to the axes and recomputes them.
func (c *Chart) Validate() {
	for _, id := range c.axisOrder {
		c.feedAxis(c.axes[id])
	}

	for _, id := range c.seriesOrder {
		c.computeValues(c.series[id])
	}

	for _, id := range c.axisOrder {
		c.axes[id].Validate()
	}

	c.logger.Debug(
		"chart: validated",
		"axes", len(c.axisOrder),
		"series", len(c.seriesOrder),
	)
}

// feedAxis passes the values of every series plotted against a to it.
func (c *Chart) feedAxis(a axis.Axis) {
	var fields []fieldValue
	used := false
	for _, id := range c.seriesOrder {
		s := c.series[id]
		x, y := c.seriesAxes(s)
		if x == a {
			fields = append(fields, s.xs...)
			used = true
		}
		if y == a {
			fields = append(fields, s.ys...)
			used = true
		}
	}
	if !used {
		return
	}

	switch target := a.(type) {
	case dataRangeSetter:
		lo, hi := math.NaN(), math.NaN()
		for i, f := range fields {
			if i == 0 {
				lo, hi = f.number, f.number
				continue
			}
			lo, hi = min(lo, f.number), max(hi, f.number)
		}
		target.SetDataRange(lo, hi)

	case categorySetter:
		categories := slices.Clone(c.declared[a.ID()])
		seen := make(map[string]struct{}, len(categories))
		for _, cat := range categories {
			seen[cat] = struct{}{}
		}
		for _, f := range fields {
			if _, ok := seen[f.category]; !ok {
				seen[f.category] = struct{}{}
				categories = append(categories, f.category)
			}
		}
		target.SetCategories(categories)

	case dateSetter:
		dates := make([]time.Time, len(fields))
		for i, f := range fields {
			dates[i] = f.date
		}
		target.SetDates(dates)
	}
}

// computeValues places a series' items in its axes' value space.
func (c *Chart) computeValues(s *Series) {
	x, y := c.seriesAxes(s)
	xv := make([]float64, len(s.xs))
	yv := make([]float64, len(s.ys))
	for i := range s.xs {
		xv[i] = x.PositionToValue(position(x, s.xs[i]))
		yv[i] = y.PositionToValue(position(y, s.ys[i]))
	}
	s.setValues(xv, yv)
}

// VisibleItems returns the indices of the items of s to draw, in x order.
//
// The items just outside the x axis' zoom window are included.
func (c *Chart) VisibleItems(s *Series) []int {
	x, _ := c.seriesAxes(s)
	a, b := x.PositionToValue(x.Start()), x.PositionToValue(x.End())
	first, last := s.visibleRange(min(a, b), max(a, b))
	return s.itemsInOrder(first, last)
}

// Point returns the pixel coordinates of an item of s.
func (c *Chart) Point(s *Series, i int) (px, py float64, ok bool) {
	if i < 0 || i >= len(s.xs) {
		return 0, 0, false
	}

	x, y := c.seriesAxes(s)
	return x.PositionToCoordinate(position(x, s.xs[i])),
		y.PositionToCoordinate(position(y, s.ys[i])),
		true
}

// SeriesDataItemAt returns the item of s nearest to a position on its
// x axis.
func (c *Chart) SeriesDataItemAt(s *Series, p float64) (int, bool) {
	x, _ := c.seriesAxes(s)
	return s.nearest(x.PositionToValue(p))
}

func (c *Chart) seriesAxes(s *Series) (x, y axis.Axis) {
	return c.axes[c.byName[s.opts.XAxis]], c.axes[c.byName[s.opts.YAxis]]
}

// position returns the position of a parsed field on an axis.
//
// Discrete and temporal items sit in the middle of their cell.
func position(a axis.Axis, f fieldValue) float64 {
	switch l := a.(type) {
	case categoryLocator:
		p, ok := l.CategoryToPosition(f.category, 0.5)
		if !ok {
			return math.NaN()
		}
		return p
	case dateLocator:
		return l.DateToPosition(f.date, 0.5)
	default:
		return a.ValueToPosition(f.number)
	}
}

func location(a axis.Axis) *time.Location {
	if l, ok := a.(locationGetter); ok {
		return l.Location()
	}
	return time.UTC
}
