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

	// 训练提交相关指标
	WorkoutAttemptsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workout_attempts_started_total",
			Help: "Total number of workout attempts started",
		},
		[]string{"workout_type", "difficulty"},
	)

	WorkoutSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workout_submissions_total",
			Help: "Total number of graded workout submissions",
		},
		[]string{"workout_type", "difficulty", "correct"},
	)

	WorkoutScores = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workout_submission_score",
			Help:    "Distribution of workout submission scores",
			Buckets: []float64{0, 10, 30, 50, 70, 90, 100},
		},
		[]string{"workout_type"},
	)

	ProgressLockWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "workout_progress_lock_wait_seconds",
			Help:    "Time spent waiting for the per-key progress lock",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(WorkoutAttemptsStarted)
		prometheus.MustRegister(WorkoutSubmissions)
		prometheus.MustRegister(WorkoutScores)
		prometheus.MustRegister(ProgressLockWait)
	})
}

// ObserveSubmission 记录一次已判分的提交
func ObserveSubmission(workoutType, difficulty string, correct bool, score int) {
	WorkoutSubmissions.WithLabelValues(workoutType, difficulty, strconv.FormatBool(correct)).Inc()
	WorkoutScores.WithLabelValues(workoutType).Observe(float64(score))
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
