package testutil

import "time"

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SampleDay returns SampleTime shifted by whole days.
func SampleDay(offset int) time.Time {
	return SampleTime.AddDate(0, 0, offset)
}

// MustParseDate parses a YYYY-MM-DD date in UTC or panics; intended for tests.
func MustParseDate(v string) time.Time {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		panic(err)
	}
	return t
}
