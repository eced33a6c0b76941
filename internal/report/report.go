package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/changelog"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/logstore"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/tracker"
)

// NoLogsPlaceholder stands in for the log text when the store cannot
// be read; report generation never aborts on a log-read failure.
const NoLogsPlaceholder = "no logs available"

// Stats is the summary block of the JSON envelope.
type Stats struct {
	TotalTasks int `json:"totalTasks"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
	Stale      int `json:"stale"`
}

// Report is a fully built daily report.
type Report struct {
	Markdown    string    `json:"report"`
	ChatMessage string    `json:"chatMessage"`
	Stats       Stats     `json:"stats"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// TaskSource is the slice of the tracker client the generator needs.
type TaskSource interface {
	ListTasks(ctx context.Context, includeSubtasks, includeClosed bool) ([]tracker.Task, error)
	ListCustomFields(ctx context.Context) ([]tracker.CustomFieldDef, error)
}

// Generator pulls live tasks and the change log and emits the daily
// report. Dependencies are injected; there is no hidden client state.
type Generator struct {
	source TaskSource
	store  logstore.Store
	now    func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator(source TaskSource, store logstore.Store) *Generator {
	return &Generator{source: source, store: store, now: time.Now}
}

// Daily fetches inputs and builds the report. Task-service failures
// abort with a structured error; a log-read failure degrades to the
// placeholder text.
func (g *Generator) Daily(ctx context.Context) (*Report, error) {
	tasks, err := g.source.ListTasks(ctx, true, true)
	if err != nil {
		return nil, fmt.Errorf("list tasks for report: %w", err)
	}

	fields, err := g.source.ListCustomFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("list custom fields for report: %w", err)
	}

	logText, err := g.store.ReadAll(ctx)
	if err != nil {
		slog.Warn("change log unavailable for report", "error", err)
		logText = NoLogsPlaceholder
	}

	return BuildDaily(tasks, fields, logText, g.now()), nil
}

// BuildDaily is the pure aggregation: identical inputs always produce
// an identical report.
func BuildDaily(tasks []tracker.Task, fields []tracker.CustomFieldDef, logText string, now time.Time) *Report {
	windowStart := ReviewWindowStart(now)
	devs := NewDeveloperMap(fields)
	inProgressSince := changelog.ReconstructInProgress(logText)
	classes := Classify(tasks, now, windowStart)
	workloads := Workloads(tasks, devs)

	stats := Stats{
		TotalTasks: len(tasks),
		InProgress: len(classes.InProgress),
		Overdue:    len(classes.Overdue),
		Stale:      len(classes.Stale),
	}

	return &Report{
		Markdown:    renderMarkdown(tasks, devs, classes, workloads, inProgressSince, logText, windowStart, now),
		ChatMessage: renderChatMessage(classes, devs, inProgressSince),
		Stats:       stats,
		GeneratedAt: now,
	}
}
