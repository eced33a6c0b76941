package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/changelog"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/tracker"
)

// logWarning is the response field value when a mutation succeeded but
// its change-log append did not.
const logWarning = "task saved, but the change log failed to record this change"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListTasks(c *gin.Context) {
	includeSubtasks := c.Query("subtasks") == "true"
	includeClosed := c.Query("closed") == "true"

	tasks, err := s.tasks.ListTasks(c.Request.Context(), includeSubtasks, includeClosed)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks, "count": len(tasks)})
}

// taskPayload is a mutation request plus the free-text comment that
// goes to the change log, never upstream.
type taskPayload struct {
	tracker.TaskRequest
	Comment string `json:"comment"`
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var payload taskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if err := payload.ValidateCreate(); err != nil {
		s.upstreamError(c, err)
		return
	}

	task, err := s.tasks.CreateTask(c.Request.Context(), payload.TaskRequest)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	s.recordChange(c, changelog.ActionCreate, task.ID, &payload, gin.H{"success": true, "task": task})
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var payload taskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if err := payload.ValidateUpdate(); err != nil {
		s.upstreamError(c, err)
		return
	}

	task, err := s.tasks.UpdateTask(c.Request.Context(), c.Param("id"), payload.TaskRequest)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	s.recordChange(c, changelog.ActionUpdate, task.ID, &payload, gin.H{"success": true, "task": task})
}

// recordChange appends the change-log entry for a successful mutation
// and writes the response. A failed append downgrades to a warning on
// the success response; the mutation already happened and must not be
// reported as failed.
func (s *Server) recordChange(c *gin.Context, action changelog.Action, taskID string, payload *taskPayload, response gin.H) {
	err := s.writer.Record(c.Request.Context(), action, taskID, logFields(&payload.TaskRequest), payload.Comment)
	if err != nil {
		slog.Error("change log append failed", "action", action, "task", taskID, "error", err)
		logAppends.WithLabelValues("error").Inc()
		response["warning"] = logWarning
	} else {
		logAppends.WithLabelValues("ok").Inc()
	}

	status := http.StatusOK
	if action == changelog.ActionCreate {
		status = http.StatusCreated
	}
	c.JSON(status, response)
}

// logFields converts the submitted mutation into loggable field
// values: millisecond durations become hours, epoch dates become ISO
// timestamps.
func logFields(req *tracker.TaskRequest) map[string]any {
	fields := make(map[string]any)

	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.TimeEstimate != nil {
		hours := float64(*req.TimeEstimate) / float64(time.Hour/time.Millisecond)
		fields["time_estimate"] = fmt.Sprintf("%gh", hours)
	}
	if req.DueDate != nil {
		fields["due_date"] = time.UnixMilli(*req.DueDate).UTC().Format(changelog.TimeLayout)
	}
	if req.Assignee != nil {
		fields["assignee"] = *req.Assignee
	}

	return fields
}

type manualStartPayload struct {
	InProgressSince string `json:"inProgressSince" binding:"required"`
	Comment         string `json:"comment"`
}

// handleManualStart records an operator's correction of a task's
// reconstructed in-progress start time. Unlike the mutation side
// writes, the log append is this endpoint's primary action, so a
// failure here is an error response.
func (s *Server) handleManualStart(c *gin.Context) {
	var payload manualStartPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "inProgressSince is required"})
		return
	}

	since, err := parseFlexibleTime(payload.InProgressSince)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "inProgressSince must be an ISO-8601 timestamp"})
		return
	}

	taskID := c.Param("id")
	if err := s.writer.RecordManualStart(c.Request.Context(), taskID, since, payload.Comment); err != nil {
		slog.Error("manual start append failed", "task", taskID, "error", err)
		logAppends.WithLabelValues("error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "failed to record the correction"})
		return
	}

	logAppends.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"taskId":          taskID,
		"inProgressSince": since.UTC().Format(changelog.TimeLayout),
	})
}

func parseFlexibleTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, changelog.TimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (s *Server) handleReport(c *gin.Context) {
	r, err := s.reports.Daily(c.Request.Context())
	if err != nil {
		reportBuilds.WithLabelValues("error").Inc()
		s.upstreamError(c, err)
		return
	}
	reportBuilds.WithLabelValues("ok").Inc()

	switch c.DefaultQuery("format", "markdown") {
	case "json":
		c.JSON(http.StatusOK, gin.H{
			"report":      r.Markdown,
			"chatMessage": r.ChatMessage,
			"stats":       r.Stats,
			"downloadUrl": "/api/report/download",
		})
	case "chat":
		c.String(http.StatusOK, r.ChatMessage)
	default:
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, r.Markdown)
	}
}

func (s *Server) handleReportDownload(c *gin.Context) {
	r, err := s.reports.Daily(c.Request.Context())
	if err != nil {
		reportBuilds.WithLabelValues("error").Inc()
		s.upstreamError(c, err)
		return
	}
	reportBuilds.WithLabelValues("ok").Inc()

	filename := fmt.Sprintf("daily-report-%s-%s.md",
		r.GeneratedAt.UTC().Format("2006-01-02"), uuid.NewString()[:8])
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(r.Markdown))
}

func (s *Server) handleChangelogGet(c *gin.Context) {
	text, err := s.store.ReadAll(c.Request.Context())
	if err != nil {
		slog.Error("change log read failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "change log unavailable"})
		return
	}
	c.String(http.StatusOK, text)
}

func (s *Server) handleChangelogMeta(c *gin.Context) {
	meta, err := s.store.Metadata(c.Request.Context())
	if err != nil {
		slog.Error("change log metadata failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "change log unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "metadata": meta})
}

type changelogPutPayload struct {
	Content *string `json:"content" binding:"required"`
}

// handleChangelogPut is the administrative full-blob replacement. There
// is deliberately no partial patch; this operation races concurrent
// appends and is meant for human-supervised repair only.
func (s *Server) handleChangelogPut(c *gin.Context) {
	var payload changelogPutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "content is required"})
		return
	}

	if err := s.store.Overwrite(c.Request.Context(), *payload.Content); err != nil {
		slog.Error("change log overwrite failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "failed to replace the change log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "sizeBytes": len(*payload.Content)})
}

// upstreamError converts a task-service failure into a response using
// the error taxonomy; internal detail stays in the server log.
func (s *Server) upstreamError(c *gin.Context, err error) {
	var apiErr *tracker.APIError
	if !errors.As(err, &apiErr) {
		slog.Error("internal error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
		return
	}

	slog.Warn("task service error", "path", c.FullPath(), "kind", apiErr.Kind, "error", err)
	upstreamErrors.WithLabelValues(string(apiErr.Kind)).Inc()

	status := http.StatusBadGateway
	switch apiErr.Kind {
	case tracker.KindInvalid:
		status = http.StatusBadRequest
	case tracker.KindUnauthorized:
		status = http.StatusUnauthorized
	case tracker.KindForbidden:
		status = http.StatusForbidden
	case tracker.KindNotFound:
		status = http.StatusNotFound
	case tracker.KindRateLimited, tracker.KindUnavailable:
		status = http.StatusServiceUnavailable
	case tracker.KindTimeout:
		status = http.StatusGatewayTimeout
	}

	c.JSON(status, gin.H{"success": false, "error": apiErr.UserMessage()})
}
