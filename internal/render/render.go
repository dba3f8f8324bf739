// Package render draws a chart on a terminal canvas.
//
// The renderer only reads the grid elements and breaks of the axes and the
// pixel coordinates of series items, so it shows exactly what the axis
// engine computed.
package render

import (
	"image"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/chart"
)

const (
	axisRune        = '│'
	baselineRune    = '─'
	originRune      = '└'
	yTickRune       = '┤'
	xTickRune       = '┬'
	gridRune        = '┈'
	breakRune       = '≈'
	periodTickRune  = '╥'
	minPlotWidth    = 4
	minPlotHeight   = 2
	labelGap        = 1
	maxYLabelLength = 10
)

// Styles are the lipgloss styles of the chart parts.
type Styles struct {
	Axis   lipgloss.Style
	Grid   lipgloss.Style
	Label  lipgloss.Style
	Break  lipgloss.Style
	Series []lipgloss.Style
}

// DefaultStyles returns colored styles.
func DefaultStyles() Styles {
	return Styles{
		Axis:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Grid:  lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Break: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Series: []lipgloss.Style{
			lipgloss.NewStyle().Foreground(lipgloss.Color("#E281FE")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("#58D3DB")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("#FCBC32")),
			lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7A88")),
		},
	}
}

// PlainStyles returns styles without colors.
func PlainStyles() Styles {
	return Styles{
		Axis:  lipgloss.NewStyle(),
		Grid:  lipgloss.NewStyle(),
		Label: lipgloss.NewStyle(),
		Break: lipgloss.NewStyle(),
	}
}

func (s Styles) series(i int) lipgloss.Style {
	if len(s.Series) == 0 {
		return lipgloss.NewStyle()
	}
	return s.Series[i%len(s.Series)]
}

// Params configures Render.
type Params struct {
	Width, Height int
	Styles        Styles

	// Series limits the drawn series. Defaults to every series of the
	// chart plotted against the two axes.
	Series []*chart.Series
}

// layout is the placement of the plot area on the canvas.
type layout struct {
	left   int // first plot column
	width  int
	height int // rows above the x axis
}

// Render draws the series of c plotted against x and y.
//
// It sets the pixel lengths of the axes to the plot area and validates
// the chart.
func Render(c *chart.Chart, x, y axis.Axis, params Params) string {
	c.Validate()
	l, ok := newLayout(y, params.Width, params.Height)
	if !ok {
		return ""
	}

	// Coordinates run from 0 to length inclusive, one per cell.
	x.SetLength(float64(l.width - 1))
	y.SetLength(float64(l.height - 1))
	c.Validate()

	cv := canvas.New(params.Width, params.Height)

	series := params.Series
	if series == nil {
		for _, s := range c.AllSeries() {
			opts := s.Options()
			if opts.XAxis == x.Name() && opts.YAxis == y.Name() {
				series = append(series, s)
			}
		}
	}
	for i, s := range series {
		drawSeries(&cv, c, s, l, params.Styles.series(i))
	}

	// Grid lines only fill cells the series left empty.
	drawYAxis(&cv, y, l, params.Styles)
	drawXAxis(&cv, x, l, params.Styles)
	drawBreaks(&cv, x, l, params.Styles)

	return cv.View()
}

func newLayout(y axis.Axis, width, height int) (layout, bool) {
	labelWidth := 0
	for _, el := range y.GridElements() {
		if !el.Disabled {
			labelWidth = max(labelWidth, len([]rune(el.Label)))
		}
	}
	labelWidth = min(labelWidth, maxYLabelLength)

	l := layout{
		left:   labelWidth + 1,
		width:  width - labelWidth - 1,
		height: height - 2,
	}
	return l, l.width >= minPlotWidth && l.height >= minPlotHeight
}

// row returns the canvas row of a y coordinate.
func (l layout) row(coord float64) (int, bool) {
	r := l.height - 1 - int(math.Round(coord))
	return r, r >= 0 && r < l.height
}

// col returns the canvas column of an x coordinate.
func (l layout) col(coord float64) (int, bool) {
	c := int(math.Round(coord))
	return l.left + c, c >= 0 && c < l.width
}

func drawYAxis(cv *canvas.Model, y axis.Axis, l layout, st Styles) {
	for row := range l.height {
		cv.SetRuneWithStyle(canvas.Point{X: l.left - 1, Y: row}, axisRune, st.Axis)
	}

	for _, el := range y.GridElements() {
		if el.Disabled {
			continue
		}
		row, ok := l.row(y.PositionToCoordinate(el.Position))
		if !ok {
			continue
		}

		for col := l.left; col < l.left+l.width; col++ {
			p := canvas.Point{X: col, Y: row}
			if cv.Cell(p).Rune == 0 {
				cv.SetRuneWithStyle(p, gridRune, st.Grid)
			}
		}
		cv.SetRuneWithStyle(canvas.Point{X: l.left - 1, Y: row}, yTickRune, st.Axis)

		label := truncate(el.Label, l.left-1)
		cv.SetStringWithStyle(
			canvas.Point{X: l.left - 1 - len([]rune(label)), Y: row},
			label,
			st.Label,
		)
	}
}

func drawXAxis(cv *canvas.Model, x axis.Axis, l layout, st Styles) {
	axisRow, labelRow := l.height, l.height+1

	cv.SetRuneWithStyle(canvas.Point{X: l.left - 1, Y: axisRow}, originRune, st.Axis)
	for col := l.left; col < l.left+l.width; col++ {
		cv.SetRuneWithStyle(canvas.Point{X: col, Y: axisRow}, baselineRune, st.Axis)
	}

	nextFree := 0
	for _, el := range x.GridElements() {
		if el.Disabled {
			continue
		}
		col, ok := l.col(x.PositionToCoordinate(el.Position))
		if !ok {
			continue
		}

		tick := xTickRune
		if el.PeriodChange {
			tick = periodTickRune
		}
		cv.SetRuneWithStyle(canvas.Point{X: col, Y: axisRow}, tick, st.Axis)

		if col < nextFree {
			continue
		}
		cv.SetStringWithStyle(canvas.Point{X: col, Y: labelRow}, el.Label, st.Label)
		nextFree = col + len([]rune(el.Label)) + labelGap
	}
}

// drawBreaks marks where the x axis collapses a break.
func drawBreaks(cv *canvas.Model, x axis.Axis, l layout, st Styles) {
	for _, b := range x.Breaks().Breaks() {
		col, ok := l.col(x.PositionToCoordinate(x.ValueToPosition(b.StartValue)))
		if !ok {
			continue
		}
		cv.SetRuneWithStyle(canvas.Point{X: col, Y: l.height}, breakRune, st.Break)
	}
}

func drawSeries(
	cv *canvas.Model,
	c *chart.Chart,
	s *chart.Series,
	l layout,
	style lipgloss.Style,
) {
	maxX, maxY := float64(l.width-1), float64(l.height-1)
	grid := graph.NewBrailleGrid(l.width, l.height, 0, maxX, 0, maxY)

	// Braille cells are 2 dots wide and 4 dots high.
	bounds := image.Rect(0, 0, l.width*2, l.height*4)

	var prev *canvas.Point
	for _, i := range c.VisibleItems(s) {
		px, py, ok := c.Point(s, i)
		if !ok || math.IsNaN(px) || math.IsNaN(py) {
			prev = nil
			continue
		}

		gp := grid.GridPoint(canvas.Float64Point{X: px, Y: py})
		points := []canvas.Point{gp}
		if prev != nil {
			points = graph.GetLinePoints(*prev, gp)
		}
		for _, p := range points {
			if p.In(bounds) {
				grid.Set(p)
			}
		}
		prev = &gp
	}

	graph.DrawBraillePatterns(cv, canvas.Point{X: l.left, Y: 0}, grid.BraillePatterns(), style)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-1]) + "…"
}

// Lines splits rendered output into lines with trailing spaces removed.
func Lines(out string) []string {
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}
