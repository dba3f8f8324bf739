package config

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/axisbreak"
	"github.com/wandb/axiskit/internal/chart"
	"github.com/wandb/axiskit/internal/observability"
	"github.com/wandb/axiskit/internal/observability/axiserr"
	"github.com/wandb/axiskit/internal/timeunit"
	"github.com/wandb/axiskit/internal/zoom"
)

// BuildParams are the dependencies of Build.
type BuildParams struct {
	// Fs reads series data files.
	Fs afero.Fs

	// Factory creates axes. Defaults to axis.DefaultFactory.
	Factory axis.Factory

	Logger *observability.CoreLogger
}

// Built is a chart assembled from a declaration.
type Built struct {
	Chart       *chart.Chart
	Coordinator *zoom.Coordinator
	Scrollbar   *zoom.Scrollbar
}

// Build creates the chart a declaration describes, loads its data and
// applies the initial zoom.
//
// The coordinator groups the x axes of all series.
func Build(spec *ChartSpec, params BuildParams) (*Built, error) {
	logger := observability.OrNoOp(params.Logger)
	c := chart.New(chart.Params{Factory: params.Factory, Logger: logger})

	for _, as := range spec.Axes {
		opts, err := axisOptions(as)
		if err != nil {
			return nil, err
		}
		opts.Logger = logger
		if _, err := c.AddAxis(as.Type, opts); err != nil {
			return nil, err
		}
	}

	var xAxes []axis.Axis
	seen := make(map[string]bool)
	for _, ss := range spec.Series {
		s, err := c.AddSeries(chart.SeriesOptions{
			Name:   ss.Name,
			XAxis:  ss.XAxis,
			XField: ss.XField,
			YAxis:  ss.YAxis,
			YField: ss.YField,
		})
		if err != nil {
			return nil, err
		}

		items, err := seriesData(spec, ss, params.Fs)
		if err != nil {
			return nil, err
		}
		if err := c.SetData(s, items); err != nil {
			return nil, err
		}

		if !seen[ss.XAxis] {
			seen[ss.XAxis] = true
			a, _ := c.Axis(ss.XAxis)
			xAxes = append(xAxes, a)
		}
	}

	c.Validate()

	overPan := -1.0
	if spec.OverPan != nil {
		overPan = *spec.OverPan
	}
	scrollbar := zoom.NewScrollbar()
	coordinator := zoom.NewCoordinator(xAxes, zoom.CoordinatorParams{
		Scrollbar: scrollbar,
		OverPan:   overPan,
		Logger:    logger,
	})

	if spec.Zoom != nil {
		coordinator.Zoom(axis.ZoomRange{Start: spec.Zoom.Start, End: spec.Zoom.End}, true)
		c.Validate()
	}

	return &Built{Chart: c, Coordinator: coordinator, Scrollbar: scrollbar}, nil
}

func seriesData(spec *ChartSpec, ss SeriesSpec, fs afero.Fs) ([]chart.DataItem, error) {
	items := make([]chart.DataItem, 0, len(ss.Data))
	for _, d := range ss.Data {
		items = append(items, chart.DataItem(d))
	}

	if ss.DataFile != "" {
		if fs == nil {
			fs = afero.NewOsFs()
		}
		fromFile, err := ReadCSV(fs, spec.DataPath(ss))
		if err != nil {
			return nil, axiserr.Enrichf(err, "config: series %q", ss.Name).
				Attr(slog.String("series", ss.Name))
		}
		items = append(items, fromFile...)
	}
	return items, nil
}

// axisOptions converts an axis declaration to axis options.
func axisOptions(as AxisSpec) (axis.Options, error) {
	opts := axis.Options{
		Name:          as.Name,
		Inversed:      as.Inversed,
		GridCount:     as.GridCount,
		Length:        as.Length,
		Min:           as.Min,
		Max:           as.Max,
		MaxZoomFactor: as.MaxZoomFactor,
		Categories:    as.Categories,
	}
	fail := func(format string, args ...any) error {
		return axiserr.Newf("config: axis %q: "+format, append([]any{as.Name}, args...)...).
			Kind(axiserr.KindConfig).
			Attr(slog.String("axis", as.Name))
	}

	temporal := strings.EqualFold(as.Type, axis.KindTemporal.String())
	loc := time.UTC
	if as.Timezone != "" {
		var err error
		if loc, err = time.LoadLocation(as.Timezone); err != nil {
			return opts, fail("unknown timezone %q", as.Timezone)
		}
	}

	for _, bs := range as.Breaks {
		b, err := parseBreak(bs, temporal, loc)
		if err != nil {
			return opts, fail("%v", err)
		}
		opts.Breaks = append(opts.Breaks, b)
	}

	if !temporal {
		return opts, nil
	}

	opts.Temporal = axis.TemporalOptions{
		SkipEmptyPeriods: as.SkipEmptyPeriods,
		BreakSize:        as.BreakSize,
		Location:         loc,
	}
	if as.BaseInterval != "" {
		iv, err := timeunit.ParseInterval(as.BaseInterval)
		if err != nil {
			return opts, fail("baseInterval: %v", err)
		}
		opts.Temporal.BaseInterval = &iv
	}
	if as.GridInterval != "" {
		iv, err := timeunit.ParseInterval(as.GridInterval)
		if err != nil {
			return opts, fail("gridInterval: %v", err)
		}
		opts.Temporal.GridInterval = &iv
	}
	for _, s := range as.GridIntervals {
		iv, err := timeunit.ParseInterval(s)
		if err != nil {
			return opts, fail("gridIntervals: %v", err)
		}
		opts.Temporal.GridIntervals = append(opts.Temporal.GridIntervals, iv)
	}
	return opts, nil
}

func parseBreak(bs BreakSpec, temporal bool, loc *time.Location) (axisbreak.Break, error) {
	start, err := parseBound(bs.Start, temporal, loc)
	if err != nil {
		return axisbreak.Break{}, err
	}
	end, err := parseBound(bs.End, temporal, loc)
	if err != nil {
		return axisbreak.Break{}, err
	}
	return axisbreak.Break{StartValue: start, EndValue: end, BreakSize: bs.Size}, nil
}

// parseBound parses a break bound: a date on temporal axes and a number
// otherwise.
func parseBound(s string, temporal bool, loc *time.Location) (float64, error) {
	if !temporal {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, axiserr.Newf("bad break bound %q", s)
		}
		return v, nil
	}

	for _, layout := range []string{time.RFC3339, time.DateTime, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), loc); err == nil {
			return float64(t.UnixMilli()), nil
		}
	}
	return 0, axiserr.Newf("bad break date %q", s)
}
