package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestParseFeedInstantAcceptsMinutePrecision(t *testing.T) {
	cases := []string{"2024-10-13T19:00Z", "2024-10-13T19:00:00Z", "2024-10-13T15:00-04:00"}
	want := time.Date(2024, 10, 13, 19, 0, 0, 0, time.UTC)
	for _, raw := range cases {
		got, ok := ParseFeedInstant(raw)
		if !ok {
			t.Fatalf("expected %q to parse", raw)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: expected %s, got %s", raw, want, got)
		}
	}
}

func TestParseFeedInstantRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "tomorrow", "2024-10-13"} {
		if _, ok := ParseFeedInstant(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestStartOfDayUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	instant := time.Date(2024, 1, 3, 2, 0, 0, 0, time.UTC) // 21:00 on Jan 2 in loc
	got := StartOfDay(instant, loc)
	if got.Day() != 2 || got.Hour() != 0 || got.Location() != loc {
		t.Fatalf("unexpected start of day %s", got)
	}
}

func TestDaysAround(t *testing.T) {
	now := time.Date(2024, 10, 13, 18, 30, 0, 0, time.UTC)
	days := DaysAround(now, 7)
	if len(days) != 15 {
		t.Fatalf("expected 15 days, got %d", len(days))
	}
	if FormatFeedDate(days[0]) != "20241006" || FormatFeedDate(days[14]) != "20241020" {
		t.Fatalf("unexpected window %s..%s", FormatFeedDate(days[0]), FormatFeedDate(days[14]))
	}
	if got := DaysAround(now, 1); len(got) != 3 || FormatFeedDate(got[1]) != "20241013" {
		t.Fatalf("unexpected standard window %v", got)
	}
}
