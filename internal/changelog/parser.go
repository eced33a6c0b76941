package changelog

import (
	"regexp"
	"strings"
)

// headerRe matches entry headers. The timestamp alternation accepts
// both the millisecond form the writer emits and a whole-second form,
// so entries written before fractional seconds were standardized still
// reconstruct. Anything the pattern does not match -- truncated
// entries, malformed timestamps -- is skipped, never an error.
var headerRe = regexp.MustCompile(`(?m)^## (CREATE|UPDATE|MANUAL_UPDATE) Task (\S+) - (\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,3})?Z)$`)

// manualStartRe extracts the asserted timestamp from a MANUAL_UPDATE
// entry body.
var manualStartRe = regexp.MustCompile(`inProgressSince: "([^"]+)"`)

// statusInProgressLine is the field line that evidences a task
// entering the in-progress state.
const statusInProgressLine = `status: "` + StatusInProgress + `"`

// Header is one parsed entry header with its position in the log text.
type Header struct {
	Action    Action
	TaskID    string
	Timestamp string
	Start     int // offset of the "##" in the log text
	End       int // offset just past the header line
}

// ParseHeaders scans the full log text for entry headers in document
// order (oldest first). It is the single place that knows the textual
// schema; a future structured log format replaces this function
// without touching the reconstruction algorithm.
func ParseHeaders(text string) []Header {
	matches := headerRe.FindAllStringSubmatchIndex(text, -1)
	headers := make([]Header, 0, len(matches))
	for _, m := range matches {
		headers = append(headers, Header{
			Action:    Action(text[m[2]:m[3]]),
			TaskID:    text[m[4]:m[5]],
			Timestamp: text[m[6]:m[7]],
			Start:     m[0],
			End:       m[1],
		})
	}
	return headers
}

// ReconstructInProgress recovers, per task, the timestamp of the most
// recent evidence that the task entered the in-progress state.
//
// The scan walks headers newest-first. A task resolves on the first
// entry that carries evidence: a MANUAL_UPDATE with an explicit
// inProgressSince field (which records the asserted timestamp, not the
// entry's own), or a CREATE/UPDATE whose status field equals the
// canonical in-progress string (which records the header timestamp).
// Entries without evidence do not block the scan -- an older entry for
// the same task may still resolve it. Tasks never observed entering
// in-progress are simply absent from the result.
func ReconstructInProgress(text string) map[string]string {
	headers := ParseHeaders(text)
	result := make(map[string]string)
	resolved := make(map[string]bool)

	for i := len(headers) - 1; i >= 0; i-- {
		h := headers[i]
		if resolved[h.TaskID] {
			continue
		}

		bodyEnd := len(text)
		if i+1 < len(headers) {
			bodyEnd = headers[i+1].Start
		}
		body := text[h.End:bodyEnd]

		switch h.Action {
		case ActionManualUpdate:
			if m := manualStartRe.FindStringSubmatch(body); m != nil {
				result[h.TaskID] = m[1]
				resolved[h.TaskID] = true
			}
		case ActionCreate, ActionUpdate:
			if strings.Contains(body, statusInProgressLine) {
				result[h.TaskID] = h.Timestamp
				resolved[h.TaskID] = true
			}
		}
	}

	return result
}
