package utils

import (
	"time"
)

const (
	// CompactTimestampLayout is the upstream news timestamp form, e.g. 20240928T092400.
	CompactTimestampLayout = "20060102T150405"
	// DisplayTimestampLayout is the human readable form used in reports.
	DisplayTimestampLayout = "2006-01-02 15:04:05"
	// SeriesTimestampLayout keys intraday series points.
	SeriesTimestampLayout = "2006-01-02 15:04:05"
)

// some feed entries omit the seconds
var compactLayouts = []string{CompactTimestampLayout, "20060102T1504"}

// ParseCompactTimestamp parses an upstream compact timestamp as UTC.
func ParseCompactTimestamp(raw string) (time.Time, error) {
	var err error
	for _, layout := range compactLayouts {
		var t time.Time
		t, err = time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// FormatCompactTimestamp reformats a compact timestamp for display.
// Unparseable input is returned unchanged.
func FormatCompactTimestamp(raw string) string {
	t, err := ParseCompactTimestamp(raw)
	if err != nil {
		return raw
	}
	return t.Format(DisplayTimestampLayout)
}

// PrettyDate formats t for display.
func PrettyDate(t time.Time) string {
	return t.Format(DisplayTimestampLayout)
}

func ToPointer[T any](v T) *T {
	return &v
}
