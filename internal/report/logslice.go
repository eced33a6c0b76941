package report

import (
	"strings"
	"time"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/changelog"
)

// recentHistoryLines bounds the raw-log appendix.
const recentHistoryLines = 1000

// entry timestamps appear in both the millisecond and whole-second
// shapes; try both.
var entryTimeLayouts = []string{changelog.TimeLayout, "2006-01-02T15:04:05Z"}

func parseEntryTime(s string) (time.Time, bool) {
	for _, layout := range entryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SliceSince returns the portion of the log text starting at the first
// entry whose header timestamp is at or after since. Entries with
// unparseable timestamps are passed over; no qualifying entry yields "".
func SliceSince(logText string, since time.Time) string {
	for _, h := range changelog.ParseHeaders(logText) {
		ts, ok := parseEntryTime(h.Timestamp)
		if !ok {
			continue
		}
		if !ts.Before(since) {
			return logText[h.Start:]
		}
	}
	return ""
}

// LastLines returns at most n trailing lines of text.
func LastLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
