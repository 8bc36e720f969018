package providers

import (
	"strings"
	"time"
)

// ResolveTimezone returns the location named by tz, or fallback when tz is empty or unknown.
// A nil fallback resolves to the process local zone.
func ResolveTimezone(tz string, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.Local
	}
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return fallback
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fallback
	}
	return loc
}
