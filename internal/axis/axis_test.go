package axis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/axisbreak"
	"github.com/wandb/axiskit/internal/observability/axiserr"
	"github.com/wandb/axiskit/internal/observabilitytest"
)

const tolerance = 1e-5

type fakeSeries struct {
	invalidated int
	animated    []axis.ZoomRange
}

func (s *fakeSeries) InvalidateDataRange() {
	s.invalidated++
}

func (s *fakeSeries) AnimateRange(r axis.ZoomRange, _ bool) {
	s.animated = append(s.animated, r)
}

func ptr[T any](v T) *T {
	return &v
}

func letters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func enabledLabels(a axis.Axis) []string {
	var labels []string
	for _, el := range a.GridElements() {
		if !el.Disabled {
			labels = append(labels, el.Label)
		}
	}
	return labels
}

func assertRoundTrip(t *testing.T, a axis.Axis) {
	t.Helper()
	for i := 0; i <= 100; i++ {
		p := float64(i) / 100
		assert.InDelta(t, p, a.ValueToPosition(a.PositionToValue(p)), tolerance, "p=%v", p)
	}
}

func TestRoundTrip(t *testing.T) {
	breaks := []axisbreak.Break{
		{StartValue: 20, EndValue: 40, BreakSize: 0},
		{StartValue: 60, EndValue: 70, BreakSize: 0.5},
	}

	testCases := []struct {
		name string
		axis axis.Axis
	}{
		{"continuous", axis.NewContinuous(axis.Options{Min: ptr(0.0), Max: ptr(100.0)})},
		{"continuous with breaks", axis.NewContinuous(axis.Options{
			Min: ptr(0.0), Max: ptr(100.0), Breaks: breaks,
		})},
		{"continuous inversed", axis.NewContinuous(axis.Options{
			Min: ptr(-5.0), Max: ptr(5.0), Inversed: true, Breaks: breaks,
		})},
		{"discrete", axis.NewDiscrete(axis.Options{Categories: letters(7)})},
		{"discrete with breaks", axis.NewDiscrete(axis.Options{
			Categories: letters(7),
			Breaks:     []axisbreak.Break{{StartValue: 2, EndValue: 4, BreakSize: 0.2}},
		})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertRoundTrip(t, tc.axis)
		})
	}
}

func TestContinuous_Inversed(t *testing.T) {
	a := axis.NewContinuous(axis.Options{Min: ptr(0.0), Max: ptr(10.0), Inversed: true})

	assert.Equal(t, 1.0, a.ValueToPosition(0))
	assert.Equal(t, 0.0, a.ValueToPosition(10))
	assert.InDelta(t, 7.5, a.PositionToValue(0.25), tolerance)
}

func TestContinuous_DegenerateDataRange(t *testing.T) {
	a := axis.NewContinuous(axis.Options{})
	a.SetDataRange(5, 5)

	assert.InDelta(t, 0.5, a.ValueToPosition(5), tolerance)
	assert.InDelta(t, 0.0, a.ValueToPosition(4.5), tolerance)
}

func TestContinuous_Zoom(t *testing.T) {
	a := axis.NewContinuous(axis.Options{Min: ptr(0.0), Max: ptr(100.0), MaxZoomFactor: 100})

	inverted := a.Zoom(axis.ZoomRange{Start: 0.6, End: 0.3}, false, true)
	again := a.Zoom(inverted, false, true)
	narrow := a.Zoom(axis.ZoomRange{Start: 0.5, End: 0.5}, false, true)

	assert.InDelta(t, 0.3, inverted.Start, tolerance)
	assert.InDelta(t, 0.6, inverted.End, tolerance)
	assert.InDelta(t, inverted.Start, again.Start, 1e-9)
	assert.InDelta(t, inverted.End, again.End, 1e-9)
	assert.InDelta(t, 0.5, narrow.Start, tolerance)
	assert.InDelta(t, 0.51, narrow.End, tolerance)
}

func TestContinuous_ZoomToValues(t *testing.T) {
	a := axis.NewContinuous(axis.Options{Min: ptr(0.0), Max: ptr(200.0)})

	r := a.ZoomToValues(150, 50)

	assert.InDelta(t, 0.25, r.Start, tolerance)
	assert.InDelta(t, 0.75, r.End, tolerance)
}

func TestContinuous_Grid(t *testing.T) {
	a := axis.NewContinuous(axis.Options{Min: ptr(0.0), Max: ptr(100.0), GridCount: 6})

	a.Validate()

	assert.Equal(t, []string{"0", "20", "40", "60", "80", "100"}, enabledLabels(a))
}

func TestCoordinates_Clamped(t *testing.T) {
	a := axis.NewContinuous(axis.Options{
		Min: ptr(0.0), Max: ptr(100.0),
		Length:        500,
		MaxZoomFactor: 1e6,
	})
	a.Zoom(axis.ZoomRange{Start: 0.5, End: 0.5001}, false, true)

	assert.Equal(t, float64(axis.MaxCoordinate), a.PositionToCoordinate(1))
	assert.Equal(t, float64(-axis.MaxCoordinate), a.PositionToCoordinate(0))
	assert.InDelta(t, 250, a.PositionToCoordinate(0.50005), 1e-3)
	assert.InDelta(t, 0.50005, a.CoordinateToPosition(250), 1e-9)
}

func TestDiscrete_Zoom(t *testing.T) {
	testCases := []struct {
		name     string
		inversed bool
		request  axis.ZoomRange
		want     axis.ZoomRange
	}{
		{"aligned", false, axis.ZoomRange{Start: 0.2, End: 0.8}, axis.ZoomRange{Start: 0.2, End: 0.8}},
		{"snaps outward", false, axis.ZoomRange{Start: 0.25, End: 0.71}, axis.ZoomRange{Start: 0.2, End: 0.8}},
		{"inverted request", false, axis.ZoomRange{Start: 0.8, End: 0.2}, axis.ZoomRange{Start: 0.2, End: 0.8}},
		{"out of bounds", false, axis.ZoomRange{Start: -1, End: 3}, axis.ZoomRange{Start: 0, End: 1}},
		{"zero width", false, axis.ZoomRange{Start: 0.5, End: 0.5}, axis.ZoomRange{Start: 0.5, End: 0.6}},
		{"zero width at end", false, axis.ZoomRange{Start: 1, End: 1}, axis.ZoomRange{Start: 0.9, End: 1}},
		{
			"end priority",
			false,
			axis.ZoomRange{Start: 0.55, End: 0.55, Priority: axis.PriorityEnd},
			axis.ZoomRange{Start: 0.5, End: 0.6},
		},
		{"inversed", true, axis.ZoomRange{Start: 0.05, End: 0.33}, axis.ZoomRange{Start: 0, End: 0.4}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := axis.NewDiscrete(axis.Options{Categories: letters(10), Inversed: tc.inversed})

			got := a.Zoom(tc.request, false, true)

			assert.InDelta(t, tc.want.Start, got.Start, tolerance)
			assert.InDelta(t, tc.want.End, got.End, tolerance)
			assert.Equal(t, got.Start, a.Start())
			assert.Equal(t, got.End, a.End())
		})
	}
}

func TestDiscrete_ZoomIdempotent(t *testing.T) {
	a := axis.NewDiscrete(axis.Options{
		Categories: letters(13),
		Breaks:     []axisbreak.Break{{StartValue: 4, EndValue: 6, BreakSize: 0}},
	})

	for i := 0; i < 20; i++ {
		for j := i; j < 20; j++ {
			r := axis.ZoomRange{Start: float64(i) / 20, End: float64(j) / 20}
			first := a.Zoom(r, false, true)
			second := a.Zoom(first, false, true)

			assert.InDelta(t, first.Start, second.Start, 1e-9, "range %v", r)
			assert.InDelta(t, first.End, second.End, 1e-9, "range %v", r)
			assert.Greater(t, first.Width(), 0.0, "range %v", r)
		}
	}
}

func TestDiscrete_Categories(t *testing.T) {
	a := axis.NewDiscrete(axis.Options{Categories: letters(10)})

	p, ok := a.CategoryToPosition("c", 0.5)
	require.True(t, ok)
	assert.InDelta(t, 0.25, p, tolerance)

	_, ok = a.CategoryToPosition("zz", 0.5)
	assert.False(t, ok)

	c, ok := a.PositionToCategory(0.37)
	require.True(t, ok)
	assert.Equal(t, "d", c)

	c, ok = a.PositionToCategory(1)
	require.True(t, ok)
	assert.Equal(t, "j", c)
}

func TestDiscrete_VisibleIndexRange(t *testing.T) {
	a := axis.NewDiscrete(axis.Options{Categories: letters(10)})
	a.Zoom(axis.ZoomRange{Start: 0.2, End: 0.8}, false, true)

	first, last := a.VisibleIndexRange()

	// The window shows c through h; b and i are the neighbours outside it.
	assert.Equal(t, 1, first)
	assert.Equal(t, 8, last)

	a.Zoom(axis.FullRange, false, true)
	first, last = a.VisibleIndexRange()

	assert.Equal(t, 0, first)
	assert.Equal(t, 9, last)
}

func TestDiscrete_ZoomToCategories(t *testing.T) {
	a := axis.NewDiscrete(axis.Options{Categories: letters(10)})

	r, ok := a.ZoomToCategories("e", "c")
	require.True(t, ok)
	assert.InDelta(t, 0.2, r.Start, tolerance)
	assert.InDelta(t, 0.5, r.End, tolerance)

	_, ok = a.ZoomToCategories("c", "missing")
	assert.False(t, ok)
}

func TestDiscrete_GridThinsToTarget(t *testing.T) {
	a := axis.NewDiscrete(axis.Options{Categories: letters(10), GridCount: 5})

	a.Validate()

	assert.Equal(t, []string{"a", "c", "e", "g", "i"}, enabledLabels(a))
}

func TestGridElements_Pooled(t *testing.T) {
	a := axis.NewDiscrete(axis.Options{Categories: letters(10)})
	a.Validate()

	var c *axis.GridElement
	for _, el := range a.GridElements() {
		if el.Label == "c" {
			c = el
		}
	}
	require.NotNil(t, c)
	assert.InDelta(t, 0.2, c.Position, tolerance)
	assert.InDelta(t, 0.3, c.EndPosition, tolerance)

	a.Zoom(axis.ZoomRange{Start: 0.5, End: 1}, false, true)
	a.Validate()

	elements := a.GridElements()
	require.Len(t, elements, 10)
	assert.Equal(t, []string{"f", "g", "h", "i", "j"}, enabledLabels(a))
	assert.True(t, c.Disabled)
	assert.True(t, elements[9].Disabled)

	a.Zoom(axis.FullRange, false, true)
	a.Validate()

	assert.False(t, c.Disabled)
	assert.Contains(t, a.GridElements(), c)
}

func TestGridElements_MoreCellsThanPool(t *testing.T) {
	a := axis.NewDiscrete(axis.Options{
		Categories:   letters(20),
		GridCount:    100,
		GridPoolSize: 8,
	})
	a.Validate()

	assert.Equal(t, letters(20), enabledLabels(a))

	a.Zoom(axis.ZoomRange{Start: 0, End: 0.25}, false, true)
	a.Validate()

	assert.Equal(t, letters(5), enabledLabels(a))
	assert.Len(t, a.GridElements(), 8)
}

func TestSeriesNotified(t *testing.T) {
	a := axis.NewDiscrete(axis.Options{Categories: letters(10)})
	series := &fakeSeries{}
	a.AttachSeries(series)
	a.AttachSeries(series)

	a.Zoom(axis.ZoomRange{Start: 0.2, End: 0.8}, true, false)
	a.Zoom(axis.ZoomRange{Start: 0.2, End: 0.8}, false, false)

	assert.Equal(t, 1, series.invalidated)
	require.Len(t, series.animated, 1)
	assert.InDelta(t, 0.2, series.animated[0].Start, tolerance)

	a.DetachSeries(series)
	a.Zoom(axis.FullRange, false, false)
	assert.Equal(t, 1, series.invalidated)
}

func TestValidate_ClearsInvalid(t *testing.T) {
	logger, logs := observabilitytest.NewRecordingTestLogger(t)
	a := axis.NewDiscrete(axis.Options{Name: "x", Categories: letters(3), Logger: logger})

	assert.True(t, a.Invalid())
	a.Validate()
	assert.False(t, a.Invalid())

	a.SetRange(0, 0.5)
	assert.True(t, a.Invalid())
	assert.Contains(t, logs.String(), `"axis":"x"`)
}

func TestFactory(t *testing.T) {
	f := axis.DefaultFactory()

	a, err := f.New("Temporal", axis.Options{Name: "date"})
	require.NoError(t, err)
	assert.Equal(t, axis.KindTemporal, a.Kind())
	assert.Equal(t, "date", a.Name())

	_, err = f.New("radial", axis.Options{Name: "r"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, axiserr.ErrConfig))
	assert.Contains(t, err.Error(), "continuous, discrete, temporal")
}

func TestNiceStep(t *testing.T) {
	testCases := []struct {
		raw, want float64
	}{
		{0.7, 1},
		{1, 1},
		{1.2, 2},
		{3, 5},
		{7, 10},
		{20, 20},
		{0.03, 0.05},
		{0, 1},
	}
	for _, tc := range testCases {
		assert.InDelta(t, tc.want, axis.NiceStep(tc.raw), 1e-12, "raw=%v", tc.raw)
	}
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		v, step float64
		want    string
	}{
		{0, 1, "0"},
		{-0.0001, 0.1, "0"},
		{12, 1, "12"},
		{0.5, 0.1, "0.5"},
		{0.25, 0.05, "0.25"},
		{-2000, 1000, "-2k"},
		{1500, 500, "1.5k"},
		{999999.9, 1, "1M"},
		{2.5e9, 1e9, "2.5B"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, axis.FormatNumber(tc.v, tc.step), "v=%v", tc.v)
	}
}
