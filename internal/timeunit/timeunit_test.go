package timeunit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/axiskit/internal/timeunit"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestRound(t *testing.T) {
	ts := time.Date(2024, time.March, 14, 17, 43, 27, 456_000_000, time.UTC)

	testCases := []struct {
		iv     timeunit.Interval
		expect time.Time
	}{
		{timeunit.Of(timeunit.Millisecond, 100),
			time.Date(2024, time.March, 14, 17, 43, 27, 400_000_000, time.UTC)},
		{timeunit.Of(timeunit.Second, 10), time.Date(2024, time.March, 14, 17, 43, 20, 0, time.UTC)},
		{timeunit.Of(timeunit.Minute, 15), date(2024, time.March, 14, 17, 30)},
		{timeunit.Of(timeunit.Hour, 6), date(2024, time.March, 14, 12, 0)},
		{timeunit.Of(timeunit.Day, 1), date(2024, time.March, 14, 0, 0)},
		{timeunit.Of(timeunit.Day, 5), date(2024, time.March, 11, 0, 0)},
		{timeunit.Of(timeunit.Week, 1), date(2024, time.March, 11, 0, 0)}, // Monday
		{timeunit.Of(timeunit.Month, 1), date(2024, time.March, 1, 0, 0)},
		{timeunit.Of(timeunit.Month, 6), date(2024, time.January, 1, 0, 0)},
		{timeunit.Of(timeunit.Year, 10), date(2020, time.January, 1, 0, 0)},
	}

	for _, tc := range testCases {
		t.Run(tc.iv.String(), func(t *testing.T) {
			assert.Equal(t, tc.expect, timeunit.Round(ts, tc.iv))
		})
	}
}

func TestRound_Idempotent(t *testing.T) {
	ts := time.Date(2023, time.November, 5, 3, 7, 9, 0, time.UTC)
	for u := timeunit.Millisecond; u <= timeunit.Year; u++ {
		iv := timeunit.Of(u, 1)
		once := timeunit.Round(ts, iv)
		assert.Equal(t, once, timeunit.Round(once, iv), "unit %v", u)
	}
}

func TestAdd_CalendarMonths(t *testing.T) {
	jan := date(2023, time.January, 1, 0, 0)

	feb := timeunit.Add(jan, timeunit.Of(timeunit.Month, 1))
	mar := timeunit.Add(feb, timeunit.Of(timeunit.Month, 1))

	assert.Equal(t, date(2023, time.February, 1, 0, 0), feb)
	assert.Equal(t, date(2023, time.March, 1, 0, 0), mar)
	assert.Equal(t, 28*24*time.Hour, mar.Sub(feb))
}

func TestCeil(t *testing.T) {
	iv := timeunit.Of(timeunit.Day, 1)

	assert.Equal(t,
		date(2024, time.May, 2, 0, 0),
		timeunit.Ceil(date(2024, time.May, 1, 6, 0), iv))
	assert.Equal(t,
		date(2024, time.May, 1, 0, 0),
		timeunit.Ceil(date(2024, time.May, 1, 0, 0), iv))
}

func TestCheckChange(t *testing.T) {
	assert.True(t, timeunit.CheckChange(
		date(2024, time.January, 31, 0, 0),
		date(2024, time.February, 1, 0, 0),
		timeunit.Month))
	assert.False(t, timeunit.CheckChange(
		date(2024, time.February, 2, 0, 0),
		date(2024, time.February, 1, 0, 0),
		timeunit.Month))
}

func TestParseInterval(t *testing.T) {
	iv, err := timeunit.ParseInterval("5 minutes")
	require.NoError(t, err)
	assert.Equal(t, timeunit.Of(timeunit.Minute, 5), iv)

	iv, err = timeunit.ParseInterval("month")
	require.NoError(t, err)
	assert.Equal(t, timeunit.Of(timeunit.Month, 1), iv)

	_, err = timeunit.ParseInterval("3 fortnights")
	assert.Error(t, err)

	_, err = timeunit.ParseInterval("0 days")
	assert.Error(t, err)
}

func TestNominalDurations(t *testing.T) {
	assert.Equal(t, 5*24*time.Hour, timeunit.Of(timeunit.Day, 5).Duration())
	assert.Equal(t, 30*24*time.Hour, timeunit.Of(timeunit.Month, 1).Duration())
	assert.Equal(t, float64(60_000), timeunit.Of(timeunit.Minute, 1).Milliseconds())
	assert.True(t, timeunit.Less(timeunit.Of(timeunit.Day, 6), timeunit.Of(timeunit.Week, 1)))
}
