package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Doctor search metrics
	SearchesTotal     *prometheus.CounterVec
	SearchLatency     *prometheus.HistogramVec
	SearchResultsSize prometheus.Histogram
	DoctorsPromoted   prometheus.Counter
	StaleResponses    prometheus.Counter

	// Official registry metrics
	RegistryRequests  *prometheus.CounterVec
	RegistryLatency   prometheus.Histogram
	RegistryCacheHits prometheus.Counter

	// Reminder metrics
	RemindersScheduled  prometheus.Counter
	RemindersDispatched *prometheus.CounterVec
	RemindersSkipped    *prometheus.CounterVec

	// Auth metrics
	LoginAttempts *prometheus.CounterVec
	RateLimited   prometheus.Counter
}

// New creates and registers all application metrics
func New(namespace string) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doctor_searches_total",
			Help:      "Doctor searches by source and outcome",
		}, []string{"source", "outcome"}),
		SearchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "doctor_search_duration_seconds",
			Help:      "Time spent serving doctor searches",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"source"}),
		SearchResultsSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "doctor_search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		}),
		DoctorsPromoted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doctors_promoted_total",
			Help:      "Official-registry candidates promoted to local records",
		}),
		StaleResponses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doctor_search_stale_responses_total",
			Help:      "Search responses discarded by the staleness guard",
		}),
		RegistryRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_requests_total",
			Help:      "Official registry lookups by outcome",
		}, []string{"outcome"}),
		RegistryLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "registry_request_duration_seconds",
			Help:      "Official registry round-trip time",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		RegistryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_cache_hits_total",
			Help:      "Official registry queries served from cache",
		}),
		RemindersScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_scheduled_total",
			Help:      "One-shot medication reminders armed",
		}),
		RemindersDispatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_dispatched_total",
			Help:      "Reminders delivered by channel",
		}, []string{"channel"}),
		RemindersSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_skipped_total",
			Help:      "Reminders skipped at fire time by reason",
		}, []string{"reason"}),
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),
		RateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_rate_limited_total",
			Help:      "Logins rejected by the sliding-window limiter",
		}),
	}
}
