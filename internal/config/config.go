// Package config loads chart declaration files.
//
// A declaration is a YAML document naming the axes of a chart, the series
// plotted against them and optional initial zoom:
//
//	overPan: 0.1
//	zoom: {start: 0.2, end: 0.8}
//	axes:
//	  - name: date
//	    type: temporal
//	    skipEmptyPeriods: true
//	  - name: value
//	    type: continuous
//	series:
//	  - name: price
//	    xAxis: date
//	    xField: date
//	    yAxis: value
//	    yField: close
//	    dataFile: prices.csv
package config

import (
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wandb/axiskit/internal/observability"
	"github.com/wandb/axiskit/internal/observability/axiserr"
)

const (
	// Grid count constraints.
	MinGridCount, MaxGridCount = 1, 100
	DefaultGridCount           = 10

	// MaxOverPan bounds how far a pan may drag past the domain edges.
	MaxOverPan     = 0.5
	DefaultOverPan = 0.1

	// Sizes of collapsed breaks, relative to their uncollapsed width.
	MinBreakSize, MaxBreakSize = 0, 1
)

// ChartSpec is a chart declaration.
type ChartSpec struct {
	// OverPan is the fraction a pan may drag past the domain edges.
	OverPan *float64 `yaml:"overPan,omitempty"`

	// Zoom is the initial zoom window.
	Zoom *ZoomSpec `yaml:"zoom,omitempty"`

	Axes   []AxisSpec   `yaml:"axes"`
	Series []SeriesSpec `yaml:"series"`

	// dir is the directory of the declaration file, for relative data
	// file paths.
	dir string
}

// ZoomSpec is a zoom window in position space.
type ZoomSpec struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// AxisSpec declares an axis.
type AxisSpec struct {
	Name     string  `yaml:"name"`
	Type     string  `yaml:"type"`
	Inversed bool    `yaml:"inversed,omitempty"`
	Length   float64 `yaml:"length,omitempty"`

	GridCount int `yaml:"gridCount,omitempty"`

	// Breaks are declared breaks. Bounds are numbers on continuous and
	// discrete axes and dates on temporal axes.
	Breaks []BreakSpec `yaml:"breaks,omitempty"`

	// Continuous axes.
	Min           *float64 `yaml:"min,omitempty"`
	Max           *float64 `yaml:"max,omitempty"`
	MaxZoomFactor float64  `yaml:"maxZoomFactor,omitempty"`

	// Discrete axes.
	Categories []string `yaml:"categories,omitempty"`

	// Temporal axes. Intervals are written like "1 day" or "month".
	BaseInterval     string   `yaml:"baseInterval,omitempty"`
	GridInterval     string   `yaml:"gridInterval,omitempty"`
	GridIntervals    []string `yaml:"gridIntervals,omitempty"`
	SkipEmptyPeriods bool     `yaml:"skipEmptyPeriods,omitempty"`
	BreakSize        float64  `yaml:"breakSize,omitempty"`
	Timezone         string   `yaml:"timezone,omitempty"`
}

// BreakSpec declares an axis break.
type BreakSpec struct {
	Start string  `yaml:"start"`
	End   string  `yaml:"end"`
	Size  float64 `yaml:"size,omitempty"`
}

// SeriesSpec declares a series.
type SeriesSpec struct {
	Name   string `yaml:"name"`
	XAxis  string `yaml:"xAxis"`
	XField string `yaml:"xField"`
	YAxis  string `yaml:"yAxis"`
	YField string `yaml:"yField"`

	// Data holds inline data items.
	Data []map[string]any `yaml:"data,omitempty"`

	// DataFile is a CSV file with a header row, relative to the
	// declaration file.
	DataFile string `yaml:"dataFile,omitempty"`
}

// Load reads and normalizes a chart declaration.
func Load(
	fs afero.Fs,
	path string,
	logger *observability.CoreLogger,
) (*ChartSpec, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, axiserr.Bubblef(err, "config: reading %s", path).
			Kind(axiserr.KindConfig)
	}

	spec, err := Parse(data, logger)
	if err != nil {
		return nil, axiserr.Enrichf(err, "config: %s", path)
	}
	spec.dir = filepath.Dir(path)
	return spec, nil
}

// Parse decodes and normalizes a chart declaration.
func Parse(data []byte, logger *observability.CoreLogger) (*ChartSpec, error) {
	spec := &ChartSpec{}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, axiserr.Enrichf(err, "invalid yaml").Kind(axiserr.KindConfig)
	}

	spec.normalize(observability.OrNoOp(logger))
	return spec, nil
}

// Marshal encodes the declaration as YAML.
func (s *ChartSpec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// DataPath resolves a series' data file against the declaration file.
func (s *ChartSpec) DataPath(series SeriesSpec) string {
	if series.DataFile == "" || filepath.IsAbs(series.DataFile) {
		return series.DataFile
	}
	return filepath.Join(s.dir, series.DataFile)
}

// normalize ensures all values are within valid ranges.
func (s *ChartSpec) normalize(logger *observability.CoreLogger) {
	if s.OverPan != nil {
		overPan := clamp(*s.OverPan, 0, MaxOverPan)
		if overPan != *s.OverPan {
			logger.Debug("config: clamped overPan", "value", *s.OverPan)
		}
		s.OverPan = &overPan
	}

	if s.Zoom != nil {
		s.Zoom.Start = clamp(s.Zoom.Start, 0, 1)
		s.Zoom.End = clamp(s.Zoom.End, 0, 1)
	}

	for i := range s.Axes {
		a := &s.Axes[i]
		if a.GridCount == 0 {
			a.GridCount = DefaultGridCount
		}
		a.GridCount = clamp(a.GridCount, MinGridCount, MaxGridCount)
		a.BreakSize = clamp(a.BreakSize, MinBreakSize, MaxBreakSize)
		for j := range a.Breaks {
			a.Breaks[j].Size = clamp(a.Breaks[j].Size, MinBreakSize, MaxBreakSize)
		}
		if a.MaxZoomFactor < 0 {
			a.MaxZoomFactor = 0
		}
	}
}

func clamp[T int | float64](val, minimum, maximum T) T {
	if val < minimum {
		return minimum
	}
	if val > maximum {
		return maximum
	}
	return val
}
