package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/chart"
	"github.com/wandb/axiskit/internal/render"
)

func ptr[T any](v T) *T {
	return &v
}

func hasBraille(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return r > 0x2800 && r <= 0x28FF
	})
}

func barChart(t *testing.T) (*chart.Chart, axis.Axis, axis.Axis) {
	t.Helper()
	c := chart.New(chart.Params{})
	x, err := c.AddAxis("discrete", axis.Options{
		Name:       "x",
		Categories: []string{"a", "b", "c", "d"},
	})
	require.NoError(t, err)
	y, err := c.AddAxis("continuous", axis.Options{
		Name: "y",
		Min:  ptr(0.0),
		Max:  ptr(100.0),
	})
	require.NoError(t, err)

	s, err := c.AddSeries(chart.SeriesOptions{
		Name: "s", XAxis: "x", XField: "name", YAxis: "y", YField: "v",
	})
	require.NoError(t, err)
	require.NoError(t, c.SetData(s, []chart.DataItem{
		{"name": "a", "v": 10},
		{"name": "b", "v": 90},
		{"name": "c", "v": 40},
		{"name": "d", "v": 60},
	}))
	return c, x, y
}

func TestRender(t *testing.T) {
	c, x, y := barChart(t)

	out := render.Render(c, x, y, render.Params{
		Width:  40,
		Height: 12,
		Styles: render.PlainStyles(),
	})
	lines := render.Lines(out)

	require.Len(t, lines, 12)
	assert.True(t, strings.HasPrefix(lines[0], "100┤"), lines[0])
	assert.True(t, strings.HasPrefix(lines[10], "   └"), lines[10])
	for _, label := range []string{"a", "b", "c", "d"} {
		assert.Contains(t, lines[11], label)
	}
	assert.True(t, hasBraille(out))
	assert.Equal(t, 35.0, x.Length())
	assert.Equal(t, 9.0, y.Length())
}

func TestRender_Zoomed(t *testing.T) {
	c, x, y := barChart(t)
	x.Zoom(axis.ZoomRange{Start: 0.5, End: 1}, false, true)

	lines := render.Lines(render.Render(c, x, y, render.Params{
		Width:  40,
		Height: 12,
		Styles: render.PlainStyles(),
	}))

	assert.NotContains(t, lines[11], "a")
	assert.Contains(t, lines[11], "c")
	assert.Contains(t, lines[11], "d")
}

func TestRender_BreakMarker(t *testing.T) {
	c := chart.New(chart.Params{})
	x, err := c.AddAxis("temporal", axis.Options{
		Name:     "date",
		Temporal: axis.TemporalOptions{SkipEmptyPeriods: true},
	})
	require.NoError(t, err)
	y, err := c.AddAxis("continuous", axis.Options{Name: "y"})
	require.NoError(t, err)
	s, err := c.AddSeries(chart.SeriesOptions{
		Name: "s", XAxis: "date", XField: "t", YAxis: "y", YField: "v",
	})
	require.NoError(t, err)

	var items []chart.DataItem
	for _, day := range []int{1, 2, 3, 4, 5, 8, 9, 10, 11, 12} {
		items = append(items, chart.DataItem{
			"t": time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
			"v": day,
		})
	}
	require.NoError(t, c.SetData(s, items))

	lines := render.Lines(render.Render(c, x, y, render.Params{
		Width:  60,
		Height: 10,
		Styles: render.DefaultStyles(),
	}))

	require.Len(t, lines, 10)
	assert.Contains(t, lines[8], "≈")
}

func TestRender_TooSmall(t *testing.T) {
	c, x, y := barChart(t)

	assert.Empty(t, render.Render(c, x, y, render.Params{Width: 3, Height: 3}))
}
