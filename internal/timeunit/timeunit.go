// Package timeunit implements calendar-aware time intervals.
//
// An Interval is a unit (millisecond through year) and a positive count.
// Nominal durations treat a month as 30 days and a year as 365 days; they are
// used for comparing and counting intervals. Round and Add use the calendar.
package timeunit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Unit is a calendar unit, ordered from finest to coarsest.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
	Month:       "month",
	Year:        "year",
}

var unitDurations = [...]time.Duration{
	Millisecond: time.Millisecond,
	Second:      time.Second,
	Minute:      time.Minute,
	Hour:        time.Hour,
	Day:         24 * time.Hour,
	Week:        7 * 24 * time.Hour,
	Month:       30 * 24 * time.Hour,
	Year:        365 * 24 * time.Hour,
}

func (u Unit) String() string {
	if u < Millisecond || u > Year {
		return "Unit(" + strconv.Itoa(int(u)) + ")"
	}
	return unitNames[u]
}

// Duration returns the nominal duration of one unit.
func (u Unit) Duration() time.Duration {
	if u < Millisecond || u > Year {
		return 0
	}
	return unitDurations[u]
}

// Next returns the next coarser unit, or Year for Year.
func (u Unit) Next() Unit {
	if u >= Year {
		return Year
	}
	// Weeks do not tile months, so the period change of a day grid is the
	// month, not the week.
	if u == Day {
		return Month
	}
	return u + 1
}

// ParseUnit parses a unit name such as "day" or "days".
func ParseUnit(s string) (Unit, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for u, n := range unitNames {
		if n == name {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf("timeunit: unknown unit %q", s)
}

// Interval is a count of calendar units.
type Interval struct {
	Unit  Unit `yaml:"unit" json:"unit"`
	Count int  `yaml:"count" json:"count"`
}

// Of returns an interval of count units.
func Of(unit Unit, count int) Interval {
	if count < 1 {
		count = 1
	}
	return Interval{Unit: unit, Count: count}
}

// Duration returns the nominal duration of the interval.
//
// time.Duration overflows past about 290 years; use Milliseconds to compare
// or count intervals.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.count()) * iv.Unit.Duration()
}

// Milliseconds returns the nominal duration in milliseconds.
func (iv Interval) Milliseconds() float64 {
	return float64(iv.count()) * float64(iv.Unit.Duration()/time.Millisecond)
}

func (iv Interval) count() int {
	if iv.Count < 1 {
		return 1
	}
	return iv.Count
}

func (iv Interval) String() string {
	return fmt.Sprintf("%d %s", iv.count(), iv.Unit)
}

// ParseInterval parses strings like "1 day", "5 minutes" or "month".
func ParseInterval(s string) (Interval, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		unit, err := ParseUnit(fields[0])
		if err != nil {
			return Interval{}, err
		}
		return Of(unit, 1), nil
	case 2:
		count, err := strconv.Atoi(fields[0])
		if err != nil || count < 1 {
			return Interval{}, fmt.Errorf("timeunit: bad count in %q", s)
		}
		unit, err := ParseUnit(fields[1])
		if err != nil {
			return Interval{}, err
		}
		return Of(unit, count), nil
	default:
		return Interval{}, fmt.Errorf("timeunit: cannot parse interval %q", s)
	}
}

// Less reports whether a is nominally shorter than b.
func Less(a, b Interval) bool {
	return a.Milliseconds() < b.Milliseconds()
}

// Round floors t to the start of the interval that contains it.
//
// Sub-day units are floored relative to the enclosing day, so a 15 minute
// interval always starts at :00, :15, :30 or :45. Days are counted from the
// first of the month, weeks start on Monday, months from January and years
// from year zero.
func Round(t time.Time, iv Interval) time.Time {
	count := iv.count()
	y, mo, d := t.Date()
	loc := t.Location()

	switch iv.Unit {
	case Millisecond:
		ms := t.Nanosecond() / int(time.Millisecond)
		ms -= ms % count
		return time.Date(y, mo, d, t.Hour(), t.Minute(), t.Second(), ms*int(time.Millisecond), loc)
	case Second:
		s := t.Second() - t.Second()%count
		return time.Date(y, mo, d, t.Hour(), t.Minute(), s, 0, loc)
	case Minute:
		m := t.Minute() - t.Minute()%count
		return time.Date(y, mo, d, t.Hour(), m, 0, 0, loc)
	case Hour:
		h := t.Hour() - t.Hour()%count
		return time.Date(y, mo, d, h, 0, 0, 0, loc)
	case Day:
		day := d - (d-1)%count
		return time.Date(y, mo, day, 0, 0, 0, 0, loc)
	case Week:
		offset := (int(t.Weekday()) + 6) % 7 // days since Monday
		return time.Date(y, mo, d-offset, 0, 0, 0, 0, loc)
	case Month:
		m := int(mo) - (int(mo)-1)%count
		return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, loc)
	case Year:
		year := y - y%count
		return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return t
	}
}

// Add advances t by the interval using calendar arithmetic.
func Add(t time.Time, iv Interval) time.Time {
	count := iv.count()
	switch iv.Unit {
	case Millisecond, Second, Minute, Hour:
		return t.Add(time.Duration(count) * iv.Unit.Duration())
	case Day:
		return t.AddDate(0, 0, count)
	case Week:
		return t.AddDate(0, 0, 7*count)
	case Month:
		return t.AddDate(0, count, 0)
	case Year:
		return t.AddDate(count, 0, 0)
	default:
		return t
	}
}

// Ceil returns the smallest interval boundary at or after t.
func Ceil(t time.Time, iv Interval) time.Time {
	r := Round(t, iv)
	if r.Before(t) {
		return Add(r, iv)
	}
	return r
}

// CheckChange reports whether a and b fall in different periods of unit.
//
// Used to flag grid dates where a coarser period begins, e.g. the first day
// of a new month on a day grid.
func CheckChange(a, b time.Time, unit Unit) bool {
	return !Round(a, Of(unit, 1)).Equal(Round(b, Of(unit, 1)))
}

// FromMillis converts epoch milliseconds to a time in loc.
func FromMillis(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc)
}
