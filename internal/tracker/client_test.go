package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(serverURL string) *Client {
	c := NewClient(serverURL, "test-token", "list-1", time.Second)
	c.retryDelay = time.Millisecond
	return c
}

func TestListTasks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/list/list-1/task" {
			t.Errorf("path = %q, want /list/list-1/task", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "test-token" {
			t.Errorf("Authorization = %q, want test-token", got)
		}
		if got := r.URL.Query().Get("subtasks"); got != "true" {
			t.Errorf("subtasks = %q, want true", got)
		}
		if got := r.URL.Query().Get("include_closed"); got != "" {
			t.Errorf("include_closed = %q, want unset", got)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"tasks": []map[string]any{
				{
					"id":            "T1",
					"name":          "Build the report",
					"status":        map[string]any{"status": "in progress", "type": "custom"},
					"priority":      map[string]any{"priority": "urgent"},
					"time_estimate": 7200000,
					"due_date":      "1717243200000",
				},
			},
		})
	}))
	defer server.Close()

	tasks, err := newTestClient(server.URL).ListTasks(context.Background(), true, false)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}

	task := tasks[0]
	if task.ID != "T1" || task.Status.Status != "in progress" {
		t.Errorf("task = %+v, want T1 in progress", task)
	}
	if task.PriorityName() != "urgent" {
		t.Errorf("PriorityName = %q, want urgent", task.PriorityName())
	}
	if got := task.EstimateHours(); got != 2 {
		t.Errorf("EstimateHours = %v, want 2", got)
	}
	if due, ok := task.DueTime(); !ok || due.Year() != 2024 {
		t.Errorf("DueTime = %v %v, want a 2024 instant", due, ok)
	}
}

func TestRateLimitRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"tasks": []any{}})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListTasks(context.Background(), false, false)
	if err != nil {
		t.Fatalf("ListTasks after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream called %d times, want 3 (two rate-limited, one success)", got)
	}
}

func TestRateLimitExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListTasks(context.Background(), false, false)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindRateLimited {
		t.Fatalf("error = %v, want rate_limited APIError", err)
	}
	if !apiErr.Temporary() {
		t.Errorf("rate_limited must classify as temporary")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("upstream called %d times, want exactly %d attempts", got, maxRetries)
	}
}

func TestPermanentErrorsNotRetried(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, KindUnauthorized},
		{"forbidden", http.StatusForbidden, KindForbidden},
		{"not found", http.StatusNotFound, KindNotFound},
		{"server error", http.StatusBadGateway, KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).ListTasks(context.Background(), false, false)

			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Kind != tt.wantKind {
				t.Fatalf("error = %v, want kind %s", err, tt.wantKind)
			}
			if got := calls.Load(); got != 1 {
				t.Errorf("upstream called %d times, want 1 (no retry)", got)
			}
		})
	}
}

func TestCreateTaskValidation(t *testing.T) {
	client := newTestClient("http://unused.invalid")

	_, err := client.CreateTask(context.Background(), TaskRequest{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindInvalid {
		t.Fatalf("error = %v, want invalid APIError before any remote call", err)
	}
}

func TestUpdateTaskValidation(t *testing.T) {
	client := newTestClient("http://unused.invalid")

	_, err := client.UpdateTask(context.Background(), "T1", TaskRequest{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindInvalid {
		t.Fatalf("error = %v, want invalid APIError before any remote call", err)
	}
}

func TestUpdateTaskSendsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/task/T1" {
			t.Errorf("request = %s %s, want PUT /task/T1", r.Method, r.URL.Path)
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["status"] != "in progress" {
			t.Errorf("payload status = %v, want in progress", payload["status"])
		}
		if _, present := payload["due_date"]; present {
			t.Errorf("unset due_date must be omitted, got %v", payload["due_date"])
		}

		json.NewEncoder(w).Encode(map[string]any{"id": "T1", "name": "renamed"})
	}))
	defer server.Close()

	status := "in progress"
	task, err := newTestClient(server.URL).UpdateTask(context.Background(), "T1", TaskRequest{
		Name:   "renamed",
		Status: &status,
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if task.ID != "T1" || task.Name != "renamed" {
		t.Errorf("task = %+v, want updated T1", task)
	}
}

func TestTimeoutClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok", "list-1", 20*time.Millisecond)
	client.retryDelay = time.Millisecond

	_, err := client.ListTasks(context.Background(), false, false)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindTimeout {
		t.Fatalf("error = %v, want timeout APIError", err)
	}
}
