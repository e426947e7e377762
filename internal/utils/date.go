package utils

import "time"

const timestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders transaction timestamps the way the API exposes them.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
