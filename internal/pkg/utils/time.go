package utils

import "time"

// NowUTC returns current timestamp in UTC timezone.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatTime renders t in the RFC3339Nano form used for persisted timestamps.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime parses a persisted timestamp; malformed values yield the zero time.
func ParseTime(raw string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
