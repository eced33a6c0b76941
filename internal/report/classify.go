package report

import (
	"strings"
	"time"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/tracker"
)

// staleAfter is how long an in-progress task may go without an update
// before it is flagged.
const staleAfter = 72 * time.Hour

// Classification groups tasks into the report's buckets. A task may
// appear in several buckets.
type Classification struct {
	InProgress   []tracker.Task
	Overdue      []tracker.Task
	Urgent       []tracker.Task
	HighPriority []tracker.Task
	Stale        []tracker.Task
	Created      []tracker.Task // created since window start
	Completed    []tracker.Task // completed since window start
	Started      []tracker.Task // heuristic: in progress and updated since window start
}

// isInProgress matches the live status against the canonical
// in-progress state, case-insensitively (the API reports lowercase,
// the log records uppercase).
func isInProgress(t *tracker.Task) bool {
	return strings.EqualFold(t.Status.Status, "in progress")
}

// Classify buckets tasks relative to now and the review window start.
//
// "Started since window" is an approximation: it takes status plus
// last-update recency as evidence of a start, because the tracker does
// not expose state-transition history outside the change log.
func Classify(tasks []tracker.Task, now, windowStart time.Time) Classification {
	var c Classification

	for _, t := range tasks {
		inProgress := isInProgress(&t)
		if inProgress {
			c.InProgress = append(c.InProgress, t)

			if updated, ok := t.UpdatedTime(); ok {
				if now.Sub(updated) > staleAfter {
					c.Stale = append(c.Stale, t)
				}
				if !updated.Before(windowStart) {
					c.Started = append(c.Started, t)
				}
			}
		}

		if due, ok := t.DueTime(); ok && due.Before(now) && !t.IsDone() {
			c.Overdue = append(c.Overdue, t)
		}

		switch strings.ToLower(t.PriorityName()) {
		case "urgent":
			c.Urgent = append(c.Urgent, t)
		case "high":
			c.HighPriority = append(c.HighPriority, t)
		}

		if created, ok := t.CreatedTime(); ok && !created.Before(windowStart) {
			c.Created = append(c.Created, t)
		}
		if done, ok := t.DoneTime(); ok && !done.Before(windowStart) {
			c.Completed = append(c.Completed, t)
		}
	}

	return c
}
