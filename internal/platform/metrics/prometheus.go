package metrics

import "github.com/prometheus/client_golang/prometheus"

var HttpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HttpErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of failed HTTP requests (4xx/5xx)",
	},
	[]string{"endpoint", "status", "method"},
)

var AssignmentTransitionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "assignment_transitions_total",
		Help: "Total number of assignment status transitions applied",
	},
	[]string{"from", "to"},
)

var JobCascadeCompletionsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "job_cascade_completions_total",
		Help: "Total number of jobs auto-completed by their last assignment finishing",
	},
)

var QuotaDenialsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quota_denials_total",
		Help: "Total number of resource creations denied by the quota gate",
	},
	[]string{"quota_type"},
)

var QuotaResetsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "quota_resets_total",
		Help: "Total number of quota rows reset on their monthly schedule",
	},
)

func InitAPIMetrics() {
	prometheus.MustRegister(HttpRequestsTotal)
	prometheus.MustRegister(HttpRequestDuration)
	prometheus.MustRegister(HttpErrorsTotal)
	prometheus.MustRegister(AssignmentTransitionsTotal)
	prometheus.MustRegister(JobCascadeCompletionsTotal)
	prometheus.MustRegister(QuotaDenialsTotal)
	prometheus.MustRegister(QuotaResetsTotal)
}
