package report

import (
	"sort"
	"strings"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/tracker"
)

// Load thresholds, in in-progress hours.
const (
	overloadedAbove = 32.0
	busyAbove       = 16.0
)

// Workload aggregates one developer's open work.
type Workload struct {
	Developer        string
	TaskCount        int
	TotalHours       float64
	InProgressHours  float64
	UrgentHours      float64
	UrgentCount      int
	HighHours        float64
	HighCount        int
	MissingEstimates bool // has tasks but zero recorded hours
}

// Load classifies the developer's current load.
func (w *Workload) Load() string {
	switch {
	case w.InProgressHours > overloadedAbove:
		return "Overloaded"
	case w.InProgressHours > busyAbove:
		return "Busy"
	default:
		return "Available"
	}
}

// Workloads computes per-developer aggregates over open tasks, sorted
// by developer name with Unassigned last.
func Workloads(tasks []tracker.Task, devs DeveloperMap) []Workload {
	byDev := make(map[string]*Workload)

	for _, t := range tasks {
		if t.IsDone() {
			continue
		}

		name := devs.DeveloperFor(&t)
		w, ok := byDev[name]
		if !ok {
			w = &Workload{Developer: name}
			byDev[name] = w
		}

		hours := t.EstimateHours()
		w.TaskCount++
		w.TotalHours += hours

		if isInProgress(&t) {
			w.InProgressHours += hours
		}
		switch strings.ToLower(t.PriorityName()) {
		case "urgent":
			w.UrgentCount++
			w.UrgentHours += hours
		case "high":
			w.HighCount++
			w.HighHours += hours
		}
	}

	result := make([]Workload, 0, len(byDev))
	for _, w := range byDev {
		w.MissingEstimates = w.TaskCount > 0 && w.TotalHours == 0
		result = append(result, *w)
	}

	sort.Slice(result, func(i, j int) bool {
		if (result[i].Developer == Unassigned) != (result[j].Developer == Unassigned) {
			return result[j].Developer == Unassigned
		}
		return result[i].Developer < result[j].Developer
	})

	return result
}
