// Package tracker is a typed client for the third-party task service's
// REST API. The rest of the system treats the service as opaque; this
// package owns its wire shapes, error taxonomy, and retry policy.
package tracker

import (
	"strconv"
	"time"
)

// Task is one task as returned by the remote service. Dates arrive as
// millisecond epoch strings; the accessor methods decode them.
type Task struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Status       Status             `json:"status"`
	Priority     *Priority          `json:"priority"`
	TimeEstimate int64              `json:"time_estimate"` // milliseconds
	DueDate      string             `json:"due_date"`
	DateCreated  string             `json:"date_created"`
	DateUpdated  string             `json:"date_updated"`
	DateDone     string             `json:"date_done"`
	Parent       string             `json:"parent"`
	CustomFields []CustomFieldValue `json:"custom_fields"`
}

// Status is the task's workflow state.
type Status struct {
	Status string `json:"status"`
	Type   string `json:"type"` // open, custom, done, closed
}

// Priority is the task's priority label ("urgent", "high", ...).
type Priority struct {
	Priority string `json:"priority"`
}

// CustomFieldValue is a custom field as attached to a task. Value is
// left dynamic: depending on upstream quirks it may be a number, a
// UUID string, a numeric string, an embedded object, or an array.
type CustomFieldValue struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// CustomFieldDef is a custom field definition from the list schema.
type CustomFieldDef struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	TypeConfig TypeConfig `json:"type_config"`
}

// TypeConfig carries dropdown options for dropdown-typed fields.
type TypeConfig struct {
	Options []FieldOption `json:"options"`
}

// FieldOption is one dropdown choice.
type FieldOption struct {
	ID         string `json:"id"` // option UUID
	Name       string `json:"name"`
	OrderIndex int    `json:"orderindex"`
}

// PriorityName returns the priority label, or "" when unset.
func (t *Task) PriorityName() string {
	if t.Priority == nil {
		return ""
	}
	return t.Priority.Priority
}

// IsDone reports whether the task reached a done or closed state.
func (t *Task) IsDone() bool {
	return t.DateDone != "" || t.Status.Type == "done" || t.Status.Type == "closed"
}

// DueTime decodes the due date; ok is false when none is set.
func (t *Task) DueTime() (time.Time, bool) { return epochMillis(t.DueDate) }

// CreatedTime decodes the creation timestamp.
func (t *Task) CreatedTime() (time.Time, bool) { return epochMillis(t.DateCreated) }

// UpdatedTime decodes the last-update timestamp.
func (t *Task) UpdatedTime() (time.Time, bool) { return epochMillis(t.DateUpdated) }

// DoneTime decodes the completion timestamp.
func (t *Task) DoneTime() (time.Time, bool) { return epochMillis(t.DateDone) }

// EstimateHours converts the millisecond estimate to hours.
func (t *Task) EstimateHours() float64 {
	return float64(t.TimeEstimate) / float64(time.Hour/time.Millisecond)
}

func epochMillis(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}
