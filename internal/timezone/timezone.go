// Package timezone renders instants in the marketplace's display zone.
// Storage and comparisons always use absolute time.
package timezone

import "time"

const (
	DefaultTimezone = "UTC"
	DisplayLayout   = "2006-01-02 15:04 MST"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to UTC for unknown names.
func Location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Format renders t for humans in tz.
func Format(t time.Time, tz string) string {
	return t.In(Location(tz)).Format(DisplayLayout)
}
