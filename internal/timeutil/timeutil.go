package timeutil

import (
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// FeedDateLayout is the compact date format scoreboard feeds expect (YYYYMMDD).
const FeedDateLayout = "20060102"

// feedInstantLayouts lists the timestamp shapes seen in feeds, most precise first.
var feedInstantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z",
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatFeedDate formats a time as YYYYMMDD in its current location.
func FormatFeedDate(t time.Time) string {
	return t.Format(FeedDateLayout)
}

// ParseFeedInstant parses a feed timestamp. Feeds often omit seconds.
func ParseFeedInstant(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range feedInstantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysAround returns the start of each calendar day from -span to +span around now, in now's location.
func DaysAround(now time.Time, span int) []time.Time {
	if span < 0 {
		span = 0
	}
	today := StartOfDay(now, now.Location())
	out := make([]time.Time, 0, 2*span+1)
	for offset := -span; offset <= span; offset++ {
		out = append(out, today.AddDate(0, 0, offset))
	}
	return out
}
