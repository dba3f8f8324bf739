package axis

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wandb/axiskit/internal/timeunit"
)

// numberScales are compact suffixes for large tick values.
var numberScales = []struct {
	factor float64
	suffix string
}{
	{1, ""},
	{1e3, "k"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// FormatNumber formats a continuous axis tick.
//
// step is the tick spacing and decides how many decimals small values get.
// Values of 1000 and above use k/M/B/T suffixes.
func FormatNumber(v, step float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v < 1000 {
		out := strconv.FormatFloat(v, 'f', stepDecimals(step), 64)
		if isZero(out) {
			return "0"
		}
		return sign + out
	}

	idx := 0
	for idx+1 < len(numberScales) && v >= numberScales[idx+1].factor {
		idx++
	}

	for {
		s := numberScales[idx]
		num := trimTrailingZeros(strconv.FormatFloat(v/s.factor, 'f', 2, 64))

		// 999.999k rounds to 1000k; move to the next suffix.
		if num == "1000" && idx+1 < len(numberScales) {
			idx++
			continue
		}
		return sign + num + s.suffix
	}
}

// stepDecimals returns the decimals needed to tell ticks step apart.
func stepDecimals(step float64) int {
	if !(step > 0) || step >= 1 {
		return 0
	}
	return min(int(math.Ceil(-math.Log10(step)-1e-9)), 12)
}

func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func isZero(s string) bool {
	return strings.Trim(s, "0.") == ""
}

var dateFormats = map[timeunit.Unit]string{
	timeunit.Millisecond: "15:04:05.000",
	timeunit.Second:      "15:04:05",
	timeunit.Minute:      "15:04",
	timeunit.Hour:        "15:04",
	timeunit.Day:         "Jan 02",
	timeunit.Week:        "Jan 02",
	timeunit.Month:       "Jan",
	timeunit.Year:        "2006",
}

// periodChangeDateFormats apply to grid dates that start a coarser period.
var periodChangeDateFormats = map[timeunit.Unit]string{
	timeunit.Millisecond: "15:04:05.000",
	timeunit.Second:      "15:04:05",
	timeunit.Minute:      "15:04",
	timeunit.Hour:        "Jan 02",
	timeunit.Day:         "Jan",
	timeunit.Week:        "Jan",
	timeunit.Month:       "2006",
	timeunit.Year:        "2006",
}

// FormatDate formats a temporal axis label for a grid unit.
func FormatDate(t time.Time, unit timeunit.Unit, periodChange bool) string {
	formats := dateFormats
	if periodChange {
		formats = periodChangeDateFormats
	}
	layout, ok := formats[unit]
	if !ok {
		layout = time.RFC3339
	}
	return t.Format(layout)
}
