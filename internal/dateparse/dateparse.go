// Package dateparse parses the reference time given to CLI flags such as --now.
package dateparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/tj/go-naturaldate"
)

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse parses a date string which can be:
// - ISO 8601 datetime with offset: "2025-01-15T09:00:00Z"
// - ISO 8601 datetime or date in ref's location: "2025-01-15T09:00", "2025-01-15"
// - Natural language: "yesterday", "last friday", "2 hours ago"
//
// The reference time is used for relative expressions (e.g., "yesterday" is relative to ref).
// If ref is zero, time.Now() is used.
func Parse(s string, ref time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	if ref.IsZero() {
		ref = time.Now()
	}

	// Try ISO 8601 datetime first
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	// Try the local layouts, interpreted in ref's timezone
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, ref.Location()); err == nil {
			return t, nil
		}
	}

	// A reference time is usually described from the past ("yesterday")
	t, err := naturaldate.Parse(s, ref, naturaldate.WithDirection(naturaldate.Past))
	if err == nil {
		return t, nil
	}

	// olebedev/when knows phrasings go-naturaldate rejects ("tomorrow at 5pm")
	if t, ok := parseWhen(s, ref); ok {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("could not parse date %q: %w", s, err)
}

func parseWhen(s string, ref time.Time) (time.Time, bool) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(s, ref)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	return r.Time, true
}
