package models

import (
	"strings"
	"time"
)

// The corpus carries timestamps in several serializations depending on which
// scraper revision wrote the row. Parsing is forgiving: an unrecognized value
// means the record is skipped, never that the run fails.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a scraped timestamp string into UTC. The second
// return value is false for empty or unparsable input.
func ParseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	// Fractional seconds without an offset, e.g. "2025-01-02T03:04:05.123456".
	if i := strings.IndexByte(s, '.'); i > 0 {
		if t, err := time.Parse("2006-01-02T15:04:05", s[:i]); err == nil {
			return t.UTC(), true
		}
		if t, err := time.Parse("2006-01-02 15:04:05", s[:i]); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
