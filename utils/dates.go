package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" (read as UTC midnight) or RFC3339.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC3339", raw)
	}
	return t.UTC(), nil
}

// ParseMonth accepts "2006-01" and returns the first day of that month in UTC.
func ParseMonth(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: want YYYY-MM", raw)
	}
	return t, nil
}
