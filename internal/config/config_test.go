package config_test

import (
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/config"
	"github.com/wandb/axiskit/internal/observability/axiserr"
	"github.com/wandb/axiskit/internal/observabilitytest"
	"github.com/wandb/axiskit/internal/timeunit"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestLoad_Normalizes(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/charts/chart.yaml", heredoc.Doc(`
		overPan: 3
		zoom: {start: -1, end: 0.5}
		axes:
		  - name: x
		    type: continuous
		    gridCount: 500
		  - name: date
		    type: temporal
		    breakSize: 2
		    breaks:
		      - {start: "2024-01-06", end: "2024-01-07", size: -1}
		  - name: y
		    type: continuous
	`))

	spec, err := config.Load(fs, "/charts/chart.yaml", observabilitytest.NewTestLogger(t))

	require.NoError(t, err)
	assert.Equal(t, config.MaxOverPan, *spec.OverPan)
	assert.Equal(t, &config.ZoomSpec{Start: 0, End: 0.5}, spec.Zoom)
	require.Len(t, spec.Axes, 3)
	assert.Equal(t, config.MaxGridCount, spec.Axes[0].GridCount)
	assert.Equal(t, 1.0, spec.Axes[1].BreakSize)
	assert.Equal(t, 0.0, spec.Axes[1].Breaks[0].Size)
	assert.Equal(t, config.DefaultGridCount, spec.Axes[2].GridCount)
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/bad.yaml", "axes: [")

	_, err := config.Load(fs, "/bad.yaml", nil)
	assert.ErrorIs(t, err, axiserr.ErrConfig)
	assert.Contains(t, err.Error(), "/bad.yaml")

	_, err = config.Load(fs, "/missing.yaml", nil)
	assert.ErrorIs(t, err, axiserr.ErrConfig)
}

func TestReadCSV(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data.csv", heredoc.Doc(`
		date,close,label
		2024-01-01,10.5,"a, b"
		2024-01-02,-3,
	`))

	items, err := config.ReadCSV(fs, "/data.csv")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-01-01", items[0]["date"])
	assert.Equal(t, 10.5, items[0]["close"])
	assert.Equal(t, "a, b", items[0]["label"])
	assert.Equal(t, -3.0, items[1]["close"])
	assert.NotContains(t, items[1], "label")
}

func TestBuild(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/charts/chart.yaml", heredoc.Doc(`
		zoom: {start: 0.25, end: 0.75}
		axes:
		  - name: date
		    type: temporal
		    baseInterval: 1 day
		    gridInterval: 2 days
		  - name: value
		    type: continuous
		    min: 0
		    max: 100
		  - name: category
		    type: discrete
		    categories: [a, b, c, d]
		series:
		  - name: price
		    xAxis: date
		    xField: date
		    yAxis: value
		    yField: close
		    dataFile: prices.csv
		  - name: bars
		    xAxis: category
		    xField: name
		    yAxis: value
		    yField: v
		    data:
		      - {name: a, v: 1}
		      - {name: b, v: 2}
	`))
	writeFile(t, fs, "/charts/prices.csv", heredoc.Doc(`
		date,close
		2024-01-01,10
		2024-01-02,20
		2024-01-03,30
		2024-01-04,40
	`))

	spec, err := config.Load(fs, "/charts/chart.yaml", nil)
	require.NoError(t, err)
	built, err := config.Build(spec, config.BuildParams{
		Fs:     fs,
		Logger: observabilitytest.NewTestLogger(t),
	})
	require.NoError(t, err)

	date, ok := built.Chart.Axis("date")
	require.True(t, ok)
	temporal := date.(*axis.Temporal)
	assert.Equal(t, timeunit.Of(timeunit.Day, 1), temporal.BaseInterval())
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), temporal.Max())

	// Both x axes are zoomed; the category axis is last and wins.
	assert.Len(t, built.Coordinator.Axes(), 2)
	assert.InDelta(t, 0.25, built.Scrollbar.Range().Start, 1e-9)
	assert.InDelta(t, 0.75, built.Scrollbar.Range().End, 1e-9)
	assert.InDelta(t, 0.25, date.Start(), 1e-9)
	assert.InDelta(t, 0.75, date.End(), 1e-9)
	assert.NotEmpty(t, date.GridElements())
}

func TestBuild_MissingAxis(t *testing.T) {
	spec, err := config.Parse([]byte(heredoc.Doc(`
		axes:
		  - {name: x, type: continuous}
		series:
		  - {name: s, xAxis: date, xField: d, yAxis: x, yField: v}
	`)), nil)
	require.NoError(t, err)

	_, err = config.Build(spec, config.BuildParams{Fs: afero.NewMemMapFs()})

	assert.ErrorIs(t, err, axiserr.ErrConfig)
	assert.Contains(t, err.Error(), `unknown x axis "date"`)
}

func TestBuild_BadInterval(t *testing.T) {
	spec, err := config.Parse([]byte(heredoc.Doc(`
		axes:
		  - {name: date, type: temporal, baseInterval: fortnight}
	`)), nil)
	require.NoError(t, err)

	_, err = config.Build(spec, config.BuildParams{})

	assert.ErrorIs(t, err, axiserr.ErrConfig)
	assert.Contains(t, err.Error(), "baseInterval")
}

func TestBuild_MissingDataField(t *testing.T) {
	spec, err := config.Parse([]byte(heredoc.Doc(`
		axes:
		  - {name: x, type: continuous}
		series:
		  - name: s
		    xAxis: x
		    xField: a
		    yAxis: x
		    yField: b
		    data: [{a: 1}]
	`)), nil)
	require.NoError(t, err)

	_, err = config.Build(spec, config.BuildParams{})

	assert.ErrorIs(t, err, axiserr.ErrData)
}
