package timeunit

import (
	"slices"
	"time"
)

// DefaultBase is substituted when the data has fewer than two distinct
// timestamps, so a duration is never divided by zero.
var DefaultBase = Of(Day, 1)

// Gap returns the calendar interval separating two timestamps, a before b.
//
// Timestamps with the same wall clock time are compared by calendar, so a
// daylight-saving transition (a 23 or 25 hour day) still reads as one day
// and data on the 15th of each month reads as one month. Other gaps are
// classified by duration: about a day, a month or a year is one of that
// unit, anything else the largest sub-day unit that divides it.
func Gap(a, b time.Time) (Interval, bool) {
	if !b.After(a) {
		return Interval{}, false
	}

	if sameClock(a, b) {
		if iv, ok := calendarGap(a, b); ok {
			return iv, true
		}
	}

	d := b.Sub(a)
	switch {
	case d%time.Hour == 0 && within(d, 23*time.Hour, 25*time.Hour) &&
		civilDay(b)-civilDay(a) == 1:
		return Of(Day, 1), true
	case within(d, 28*nominalDay-time.Hour, 31*nominalDay+time.Hour):
		return Of(Month, 1), true
	case within(d, 365*nominalDay-time.Hour, 366*nominalDay+time.Hour):
		return Of(Year, 1), true
	}

	for u := Hour; u > Millisecond; u-- {
		if d%u.Duration() == 0 {
			return Of(u, int(d/u.Duration())), true
		}
	}
	return Of(Millisecond, int(d/time.Millisecond)), true
}

const nominalDay = 24 * time.Hour

// calendarGap classifies a gap between timestamps at the same wall clock
// time by calendar dates.
func calendarGap(a, b time.Time) (Interval, bool) {
	if a.Day() == b.Day() {
		months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
		switch {
		case months <= 0:
			// Same date: a repeated wall clock hour when clocks go back.
			return Interval{}, false
		case months%12 == 0:
			return Of(Year, months/12), true
		default:
			return Of(Month, months), true
		}
	}

	days := int(civilDay(b) - civilDay(a))
	switch {
	case days >= 28 && days <= 31:
		// Month ends: Jan 31 to Feb 28 is still one month.
		return Of(Month, 1), true
	case days == 365 || days == 366:
		return Of(Year, 1), true
	case days%7 == 0:
		return Of(Week, days/7), true
	default:
		return Of(Day, days), true
	}
}

// DetectBase returns the smallest gap between consecutive timestamps.
//
// The second result is false if fewer than two distinct timestamps were
// given, in which case DefaultBase is returned.
func DetectBase(times []time.Time) (Interval, bool) {
	sorted := slices.Clone(times)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	var best Interval
	found := false
	for i := 1; i < len(sorted); i++ {
		gap, ok := Gap(sorted[i-1], sorted[i])
		if !ok {
			continue
		}
		if !found || Less(gap, best) {
			best = gap
			found = true
		}
	}

	if !found {
		return DefaultBase, false
	}
	return best, true
}

func sameClock(a, b time.Time) bool {
	return a.Hour() == b.Hour() &&
		a.Minute() == b.Minute() &&
		a.Second() == b.Second() &&
		a.Nanosecond() == b.Nanosecond()
}

func within(d, lo, hi time.Duration) bool {
	return d >= lo && d <= hi
}

// civilDay numbers calendar dates independently of the time zone offset.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
