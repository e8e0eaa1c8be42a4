package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DefaultTimezone is the organization's home timezone; "today" is computed there.
const DefaultTimezone = "America/New_York"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ResolveTimezone returns a location for a tz string, or nil if empty or invalid.
func ResolveTimezone(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}

// LocationOrDefault resolves tz, falling back to DefaultTimezone and then UTC.
func LocationOrDefault(tz string) *time.Location {
	if loc := ResolveTimezone(tz); loc != nil {
		return loc
	}
	if loc := ResolveTimezone(DefaultTimezone); loc != nil {
		return loc
	}
	return time.UTC
}

// Today returns now's calendar date in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now.In(loc))
}
