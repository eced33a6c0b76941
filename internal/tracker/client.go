package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	maxRetries     = 3
	baseRetryDelay = 1 * time.Second
)

// Client calls the remote task service. Construct one explicitly and
// pass it into the aggregator and web layer; there is no package-level
// singleton.
type Client struct {
	baseURL    string
	token      string
	listID     string
	httpClient *http.Client

	// retryDelay is the backoff base, overridable in tests.
	retryDelay time.Duration
}

// NewClient creates a task-service client. timeout bounds every
// request; zero means the default.
func NewClient(baseURL, token, listID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		listID:     listID,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: baseRetryDelay,
	}
}

// TaskRequest is the mutation payload for create and update calls.
// Pointer fields distinguish "leave unchanged" from explicit values.
type TaskRequest struct {
	Name         string  `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Status       *string `json:"status,omitempty"`
	Priority     *int    `json:"priority,omitempty"`
	TimeEstimate *int64  `json:"time_estimate,omitempty"` // milliseconds
	DueDate      *int64  `json:"due_date,omitempty"`      // epoch millis
	Assignee     *string `json:"assignee,omitempty"`
}

// ValidateCreate rejects a create payload before any remote call.
func (r *TaskRequest) ValidateCreate() error {
	if r.Name == "" {
		return &APIError{Kind: KindInvalid, Message: "name is required to create a task"}
	}
	return nil
}

// ValidateUpdate rejects an empty update payload before any remote call.
func (r *TaskRequest) ValidateUpdate() error {
	if r.Name == "" && r.Description == nil && r.Status == nil && r.Priority == nil &&
		r.TimeEstimate == nil && r.DueDate == nil && r.Assignee == nil {
		return &APIError{Kind: KindInvalid, Message: "update requires at least one field"}
	}
	return nil
}

type tasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type fieldsResponse struct {
	Fields []CustomFieldDef `json:"fields"`
}

// ListTasks fetches the list's tasks, optionally including subtasks
// and closed tasks.
func (c *Client) ListTasks(ctx context.Context, includeSubtasks, includeClosed bool) ([]Task, error) {
	q := url.Values{}
	if includeSubtasks {
		q.Set("subtasks", "true")
	}
	if includeClosed {
		q.Set("include_closed", "true")
	}

	path := fmt.Sprintf("/list/%s/task", c.listID)
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var resp tasksResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// ListCustomFields fetches the list's custom field definitions.
func (c *Client) ListCustomFields(ctx context.Context) ([]CustomFieldDef, error) {
	var resp fieldsResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/list/%s/field", c.listID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Fields, nil
}

// CreateTask creates a task in the list.
func (c *Client) CreateTask(ctx context.Context, req TaskRequest) (*Task, error) {
	if err := req.ValidateCreate(); err != nil {
		return nil, err
	}
	var task Task
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/list/%s/task", c.listID), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies the given fields to an existing task.
func (c *Client) UpdateTask(ctx context.Context, id string, req TaskRequest) (*Task, error) {
	if err := req.ValidateUpdate(); err != nil {
		return nil, err
	}
	var task Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/task/%s", id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// do performs one API call. Rate-limit responses are retried with
// bounded exponential backoff; every other error class propagates
// immediately.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return &APIError{Kind: KindTimeout, Message: ctx.Err().Error()}
			}
		}

		err := c.doOnce(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Kind == KindRateLimited {
			lastErr = err
			continue
		}
		return err
	}

	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Kind: KindUnavailable, Message: "reading response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromStatus(resp.StatusCode, upstreamMessage(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &APIError{Kind: KindUnavailable, Message: "malformed response: " + err.Error()}
		}
	}
	return nil
}

// upstreamMessage pulls the service's error text out of its JSON error
// envelope, falling back to the raw body.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Err string `json:"err"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Err != "" {
		return envelope.Err
	}
	const limit = 200
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}

func classifyTransportError(err error) *APIError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{Kind: KindTimeout, Message: err.Error()}
	}
	return &APIError{Kind: KindUnavailable, Message: err.Error()}
}
