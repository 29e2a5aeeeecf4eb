package logs

import (
	"time"
)

const displayLayout = time.DateTime

var insightsLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
}

// ParseTimestamp converts a Logs Insights @timestamp value to epoch milliseconds.
// Unparsable values yield 0.
func ParseTimestamp(value string) int64 {
	for _, layout := range insightsLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// FormatMillis renders epoch milliseconds for display in UTC.
func FormatMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(displayLayout)
}

func formatSeconds(s int64) string {
	return time.Unix(s, 0).UTC().Format(displayLayout)
}

// bounds resolves w against now, falling back to now-def..now for unset bounds.
// Both values are epoch milliseconds.
func bounds(now time.Time, w *Window, def time.Duration) (int64, int64) {
	start := now.Add(-def).Unix() * 1000
	end := now.UnixMilli()
	if w != nil {
		if w.Start > 0 {
			start = w.Start * 1000
		}
		if w.End > 0 {
			end = w.End * 1000
		}
	}
	return start, end
}
