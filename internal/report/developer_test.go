package report

import (
	"testing"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/tracker"
)

func testDeveloperDefs() []tracker.CustomFieldDef {
	return []tracker.CustomFieldDef{
		{
			ID:   "f-1",
			Name: "Task Type",
			Type: "drop_down",
		},
		{
			ID:   "f-2",
			Name: "Assigned Developer",
			Type: "drop_down",
			TypeConfig: tracker.TypeConfig{
				Options: []tracker.FieldOption{
					{ID: "3f1e9a2b-1111-4222-8333-444455556666", Name: "Alex Kim", OrderIndex: 0},
					{ID: "7c8d9e0f-aaaa-4bbb-8ccc-dddd11112222", Name: "Jordan", OrderIndex: 2},
				},
			},
		},
	}
}

func TestDeveloperMapResolve(t *testing.T) {
	devs := NewDeveloperMap(testDeveloperDefs())

	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"numeric order index", float64(2), "Jordan"},
		{"integer order index", 0, "Alex Kim"},
		{"numeric string", "2", "Jordan"},
		{"option uuid", "7c8d9e0f-aaaa-4bbb-8ccc-dddd11112222", "Jordan"},
		{"unknown uuid never leaks", "9999aaaa-bbbb-4ccc-8ddd-eeeeffff0000", Unassigned},
		{"embedded object", map[string]any{"name": "Sam Field"}, "Sam Field"},
		{"array wraps a value", []any{float64(0)}, "Alex Kim"},
		{"nil", nil, Unassigned},
		{"unknown index", float64(9), Unassigned},
		{"empty array", []any{}, Unassigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := devs.Resolve(tt.raw); got != tt.want {
				t.Errorf("Resolve(%v) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDeveloperFor(t *testing.T) {
	devs := NewDeveloperMap(testDeveloperDefs())

	task := tracker.Task{
		ID:   "T1",
		Name: "Wire the proxy",
		CustomFields: []tracker.CustomFieldValue{
			{ID: "f-1", Name: "Task Type", Value: "bug"},
			{ID: "f-2", Name: "Assigned Developer", Value: float64(2)},
		},
	}
	if got := devs.DeveloperFor(&task); got != "Jordan" {
		t.Errorf("DeveloperFor = %q, want Jordan", got)
	}

	bare := tracker.Task{ID: "T2"}
	if got := devs.DeveloperFor(&bare); got != Unassigned {
		t.Errorf("DeveloperFor without field = %q, want %q", got, Unassigned)
	}
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two words", "Jordan Lee", "jordan.lee"},
		{"single word", "Jordan", "jordan"},
		{"punctuation stripped", "Mary-Jane O'Neil", "maryjane.oneil"},
		{"unassigned", Unassigned, "unassigned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Handle(tt.in); got != tt.want {
				t.Errorf("Handle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
