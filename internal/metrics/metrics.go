package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TasksGenerated counts tasks materialized by generation runs.
	TasksGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_generated_total",
			Help: "Total number of inspection tasks materialized",
		},
	)

	// GenerationRuns counts generation runs by outcome (ok, error).
	GenerationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_runs_total",
			Help: "Total number of task generation runs by outcome",
		},
		[]string{"outcome"},
	)

	// ScheduleFailures counts schedules that failed during a generation run.
	ScheduleFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schedule_generation_failures_total",
			Help: "Total number of schedules skipped due to generation errors",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, TasksGenerated, GenerationRuns, ScheduleFailures)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /schedules/123/generate -> /schedules/{id}/generate.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordGeneration records one generation run: tasks produced, schedules failed,
// and the overall outcome.
func RecordGeneration(tasks, failed int) {
	TasksGenerated.Add(float64(tasks))
	ScheduleFailures.Add(float64(failed))
	outcome := "ok"
	if failed > 0 {
		outcome = "error"
	}
	GenerationRuns.WithLabelValues(outcome).Inc()
}
