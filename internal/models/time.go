package models

import "time"

// TimeLayout is the storage format for every timestamp column: local time,
// second precision, no timezone. All SQL comparisons on these columns are
// lexical, which this layout keeps consistent with chronological order.
const TimeLayout = "2006-01-02 15:04:05"

// Now returns the current local time in storage format.
func Now() string {
	return time.Now().Format(TimeLayout)
}

// FormatTime converts a time.Time to storage format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
