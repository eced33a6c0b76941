package changelog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Action identifies the kind of change an entry records.
type Action string

const (
	ActionCreate       Action = "CREATE"
	ActionUpdate       Action = "UPDATE"
	ActionManualUpdate Action = "MANUAL_UPDATE"
)

// StatusInProgress is the canonical in-progress status string as it
// appears in logged field lines.
const StatusInProgress = "IN PROGRESS"

// FieldInProgressSince is the field name a MANUAL_UPDATE entry uses to
// assert a corrected in-progress start time.
const FieldInProgressSince = "inProgressSince"

// TimeLayout is the entry timestamp shape, UTC with milliseconds.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Fields excluded from logging: comments are rendered separately,
// custom-field blobs and parent linkage are internal and must never
// appear in the log.
var excludedFields = map[string]bool{
	"comment":       true,
	"custom_fields": true,
	"parent":        true,
}

// FormatEntry renders one textual log entry:
//
//	\n## {ACTION} Task {id} - {timestamp}\n  - {field}: {value}\n ... \nComment: {comment}\n
//
// Field names are emitted in sorted order so identical inputs produce
// identical entries.
func FormatEntry(action Action, taskID string, ts time.Time, fields map[string]any, comment string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n## %s Task %s - %s\n", action, taskID, ts.UTC().Format(TimeLayout))

	names := make([]string, 0, len(fields))
	for name := range fields {
		if excludedFields[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&b, "  - %s: %s\n", name, formatFieldValue(fields[name]))
	}

	if comment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", strings.TrimRight(comment, "\n"))
	}

	return b.String()
}

// formatFieldValue renders a field value: strings are trimmed of
// trailing newlines and quoted, everything else is JSON-serialized.
func formatFieldValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", strings.TrimRight(s, "\n"))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", fmt.Sprintf("%v", v))
	}
	return string(data)
}
