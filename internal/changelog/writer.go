package changelog

import (
	"context"
	"fmt"
	"time"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/logstore"
)

// Writer formats change events and appends them to a log store.
// Appends are best-effort relative to the primary task mutation: the
// caller receives the error but decides whether to surface it as a
// warning rather than failing the mutation.
type Writer struct {
	store logstore.Store
	now   func() time.Time
}

// NewWriter creates a Writer bound to the given store.
func NewWriter(store logstore.Store) *Writer {
	return &Writer{store: store, now: time.Now}
}

// Record appends one entry for the given change. The timestamp is
// assigned at write time, in UTC.
func (w *Writer) Record(ctx context.Context, action Action, taskID string, fields map[string]any, comment string) error {
	entry := FormatEntry(action, taskID, w.now(), fields, comment)
	if err := w.store.Append(ctx, entry); err != nil {
		return fmt.Errorf("record %s for task %s: %w", action, taskID, err)
	}
	return nil
}

// RecordManualStart appends a MANUAL_UPDATE entry asserting the
// corrected in-progress start time for a task. This is the operator's
// repair path for wrong automatic inference; it never rewrites
// history, it outranks it.
func (w *Writer) RecordManualStart(ctx context.Context, taskID string, since time.Time, comment string) error {
	fields := map[string]any{
		FieldInProgressSince: since.UTC().Format(TimeLayout),
	}
	return w.Record(ctx, ActionManualUpdate, taskID, fields, comment)
}
