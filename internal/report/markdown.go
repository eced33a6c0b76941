package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/tracker"
)

const dateLayout = "2006-01-02"

// analysisPrompt is the narrative block embedded in the report for a
// reviewer (human or model) to summarize the day.
const analysisPrompt = `Review the task data above and write a short narrative covering:
1. Which developers are overloaded or blocked, and what should move.
2. Which overdue and urgent items need attention today.
3. Which stale in-progress tasks look abandoned and should be followed up.
Keep it under ten sentences and name tasks by title and id.`

func renderMarkdown(tasks []tracker.Task, devs DeveloperMap, classes Classification, workloads []Workload, inProgressSince map[string]string, logText string, windowStart, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Task Report - %s\n\n", now.UTC().Format(dateLayout))
	fmt.Fprintf(&b, "Review window start: %s\n\n", windowStart.Format(time.RFC3339))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total tasks: %d\n", len(tasks))
	fmt.Fprintf(&b, "- In progress: %d\n", len(classes.InProgress))
	fmt.Fprintf(&b, "- Overdue: %d\n", len(classes.Overdue))
	fmt.Fprintf(&b, "- Urgent: %d\n", len(classes.Urgent))
	fmt.Fprintf(&b, "- High priority: %d\n", len(classes.HighPriority))
	fmt.Fprintf(&b, "- Stale in progress: %d\n", len(classes.Stale))
	fmt.Fprintf(&b, "- Created since last review: %d\n", len(classes.Created))
	fmt.Fprintf(&b, "- Completed since last review: %d\n", len(classes.Completed))
	b.WriteString("\n")

	b.WriteString("## Developer Workload\n\n")
	if len(workloads) == 0 {
		b.WriteString("No open tasks.\n\n")
	} else {
		b.WriteString("| Developer | Tasks | Est. Hours | In Progress Hours | Urgent | High | Load |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, w := range workloads {
			fmt.Fprintf(&b, "| %s | %d | %.1f | %.1f | %d (%.1fh) | %d (%.1fh) | %s |\n",
				w.Developer, w.TaskCount, w.TotalHours, w.InProgressHours,
				w.UrgentCount, w.UrgentHours, w.HighCount, w.HighHours, w.Load())
		}
		b.WriteString("\n")
		for _, w := range workloads {
			if w.MissingEstimates {
				fmt.Fprintf(&b, "Note: %s has %d task(s) with no recorded hour estimates.\n", w.Developer, w.TaskCount)
			}
		}
		b.WriteString("\n")
	}

	writeTaskSection(&b, "In Progress", classes.InProgress, devs, func(t *tracker.Task) string {
		if since, ok := inProgressSince[t.ID]; ok {
			return "in progress since " + since
		}
		return ""
	})
	writeTaskSection(&b, "Overdue", classes.Overdue, devs, func(t *tracker.Task) string {
		if due, ok := t.DueTime(); ok {
			return "due " + due.Format(dateLayout)
		}
		return ""
	})
	writeTaskSection(&b, "Urgent", classes.Urgent, devs, nil)
	writeTaskSection(&b, "High Priority", classes.HighPriority, devs, nil)
	writeTaskSection(&b, "Stale In Progress", classes.Stale, devs, func(t *tracker.Task) string {
		if updated, ok := t.UpdatedTime(); ok {
			return "last updated " + updated.Format(dateLayout)
		}
		return ""
	})
	writeTaskSection(&b, "Created Since Last Review", classes.Created, devs, nil)
	writeTaskSection(&b, "Completed Since Last Review", classes.Completed, devs, nil)
	writeTaskSection(&b, "Started Since Last Review", classes.Started, devs, nil)

	b.WriteString("## Analysis Prompt\n\n")
	b.WriteString(analysisPrompt)
	b.WriteString("\n\n")

	b.WriteString("## Changes Since Last Review\n\n")
	if logText == NoLogsPlaceholder {
		b.WriteString(NoLogsPlaceholder + "\n\n")
	} else if slice := SliceSince(logText, windowStart); slice != "" {
		b.WriteString("```\n" + strings.TrimSpace(slice) + "\n```\n\n")
	} else {
		b.WriteString("No logged changes in the review window.\n\n")
	}

	b.WriteString("## Recent History\n\n")
	if logText == NoLogsPlaceholder || logText == "" {
		b.WriteString(NoLogsPlaceholder + "\n")
	} else {
		b.WriteString("```\n" + strings.TrimSpace(LastLines(logText, recentHistoryLines)) + "\n```\n")
	}

	return b.String()
}

// writeTaskSection renders one task bucket; empty buckets render an
// explicit zero line so the report shape is stable.
func writeTaskSection(b *strings.Builder, title string, tasks []tracker.Task, devs DeveloperMap, detail func(*tracker.Task) string) {
	fmt.Fprintf(b, "## %s (%d)\n\n", title, len(tasks))
	if len(tasks) == 0 {
		b.WriteString("None.\n\n")
		return
	}

	for i := range tasks {
		t := &tasks[i]
		line := fmt.Sprintf("- %s (%s), %s", t.Name, t.ID, devs.DeveloperFor(t))
		if hours := t.EstimateHours(); hours > 0 {
			line += fmt.Sprintf(", %.1fh", hours)
		}
		if detail != nil {
			if extra := detail(t); extra != "" {
				line += ", " + extra
			}
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

// renderChatMessage builds the chat-style summary: one block per
// developer with urgent or stale talking points, addressed by a
// generated handle.
func renderChatMessage(classes Classification, devs DeveloperMap, inProgressSince map[string]string) string {
	type talkingPoints struct {
		urgent []tracker.Task
		stale  []tracker.Task
	}
	byDev := make(map[string]*talkingPoints)

	points := func(name string) *talkingPoints {
		p, ok := byDev[name]
		if !ok {
			p = &talkingPoints{}
			byDev[name] = p
		}
		return p
	}

	for _, t := range classes.Urgent {
		name := devs.DeveloperFor(&t)
		points(name).urgent = append(points(name).urgent, t)
	}
	for _, t := range classes.Stale {
		name := devs.DeveloperFor(&t)
		points(name).stale = append(points(name).stale, t)
	}

	if len(byDev) == 0 {
		return "Daily review: no urgent or stale tasks today."
	}

	names := make([]string, 0, len(byDev))
	for name := range byDev {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Daily review:\n")
	for _, name := range names {
		p := byDev[name]
		handle := Handle(name)
		if handle == "" {
			handle = "unassigned"
		}
		fmt.Fprintf(&b, "@%s\n", handle)
		for _, t := range p.urgent {
			fmt.Fprintf(&b, "  - URGENT: %s (%s)\n", t.Name, t.ID)
		}
		for _, t := range p.stale {
			line := fmt.Sprintf("  - STALE: %s (%s)", t.Name, t.ID)
			if since, ok := inProgressSince[t.ID]; ok {
				line += ", in progress since " + since
			}
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
