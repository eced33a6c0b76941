// Package web serves the dashboard's REST API: task proxying with
// change-log side writes, report generation, and administrative log
// access.
package web

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/changelog"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/logstore"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/report"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/tracker"
)

// TaskService is the slice of the tracker client the server consumes.
type TaskService interface {
	ListTasks(ctx context.Context, includeSubtasks, includeClosed bool) ([]tracker.Task, error)
	ListCustomFields(ctx context.Context) ([]tracker.CustomFieldDef, error)
	CreateTask(ctx context.Context, req tracker.TaskRequest) (*tracker.Task, error)
	UpdateTask(ctx context.Context, id string, req tracker.TaskRequest) (*tracker.Task, error)
}

// Server is the dashboard API server.
type Server struct {
	tasks   TaskService
	store   logstore.Store
	writer  *changelog.Writer
	reports *report.Generator
	router  *gin.Engine
}

// NewServer wires the API routes.
func NewServer(tasks TaskService, store logstore.Store) *Server {
	router := gin.Default()

	s := &Server{
		tasks:   tasks,
		store:   store,
		writer:  changelog.NewWriter(store),
		reports: report.NewGenerator(tasks, store),
		router:  router,
	}

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.POST("/tasks/:id/start-time", s.handleManualStart)

		api.GET("/report", s.handleReport)
		api.GET("/report/download", s.handleReportDownload)

		api.GET("/changelog", s.handleChangelogGet)
		api.GET("/changelog/meta", s.handleChangelogMeta)
		api.PUT("/changelog", s.handleChangelogPut)
	}

	return s
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
