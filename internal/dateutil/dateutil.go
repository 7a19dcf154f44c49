// Package dateutil implements the date parsing policy shared by the expense
// and analytics endpoints.
//
// A value is parsed first as a full ISO-8601 timestamp (a trailing Z means
// UTC), then as a bare date (YYYY-MM-DD, taken as midnight UTC). What
// happens when both fail depends on the call site, so the two fallback
// branches are separate functions: ParseOrNow is the create branch (default
// to the current time) and ParseOptional is the update/filter branch (treat
// the value as absent).
package dateutil

import "time"

// layouts tried in order after RFC3339.
var layouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse parses s using the policy layouts.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	for _, layout := range layouts {
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// ParseOrNow parses s, falling back to the current UTC time when s is
// empty or unparsable. Used when creating expenses.
func ParseOrNow(s string) time.Time {
	if s == "" {
		return time.Now().UTC()
	}
	t, err := Parse(s)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}

// ParseOptional parses s, returning nil when s is empty or unparsable.
// Used for expense updates (nil means "leave unchanged") and for analytics
// date bounds (nil means "no bound").
func ParseOptional(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := Parse(s)
	if err != nil {
		return nil
	}
	return &t
}
