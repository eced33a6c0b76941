package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	logAppends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracking_log_appends_total",
		Help: "Change-log append attempts by result.",
	}, []string{"result"})

	reportBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracking_report_builds_total",
		Help: "Daily report builds by result.",
	}, []string{"result"})

	upstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracking_upstream_errors_total",
		Help: "Task-service errors by kind.",
	}, []string{"kind"})
)
