package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counters carry aggregate outcomes only; no label ever holds message
// content or anything user-identifying.
var (
	TriageDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wellnest_triage_duration_seconds",
			Help:    "Triage pipeline duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	TriageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellnest_triage_total",
			Help: "Assessments triaged by severity band",
		},
		[]string{"band"},
	)

	CrisisDetections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellnest_crisis_detections_total",
			Help: "Crisis signals raised by input source",
		},
		[]string{"source"},
	)

	ChatMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellnest_chat_messages_total",
			Help: "Chat turns by outcome: replied, crisis, fallback, rejected",
		},
		[]string{"outcome"},
	)

	ValidationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wellnest_assessment_validation_failures_total",
			Help: "Assessment submissions rejected by validation",
		},
	)

	ResponderLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wellnest_responder_latency_seconds",
			Help:    "External responder round-trip latency",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellnest_cache_hits_total",
			Help: "Resource cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellnest_cache_misses_total",
			Help: "Resource cache misses",
		},
		[]string{"cache_type"},
	)

	ResourcesIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wellnest_resources_ingested_total",
			Help: "Resource documents ingested",
		},
	)
)

func Init() {
	prometheus.MustRegister(TriageDuration)
	prometheus.MustRegister(TriageTotal)
	prometheus.MustRegister(CrisisDetections)
	prometheus.MustRegister(ChatMessages)
	prometheus.MustRegister(ValidationFailures)
	prometheus.MustRegister(ResponderLatency)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(ResourcesIngested)
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
