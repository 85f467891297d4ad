package utils

import "time"

// ParseDate accepts the sheet's plain dates ("2025-01-15") as well as RFC3339
// timestamps, which is what Apps Script emits for date cells.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
