package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// ChatTurns outcome: ok | failed | unknown_listing
	ChatTurns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Chat turns handled, by outcome",
		},
		[]string{"outcome"},
	)

	GoodQuestionsMatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "good_questions_matched_total",
			Help: "Checklist questions matched by user messages",
		},
		[]string{"question"},
	)

	SimilarityScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similarity_score",
			Help:    "Semantic similarity between user messages and checklist questions",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	LanguageModelLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "language_model_latency_seconds",
			Help:    "Latency of language model replies",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)

	ConversationsTracked = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "conversations_tracked",
			Help: "Conversations currently held in memory",
		},
	)

	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			ChatTurns,
			GoodQuestionsMatched,
			SimilarityScore,
			LanguageModelLatency,
			ConversationsTracked,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
