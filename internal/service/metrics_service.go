package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface, the AI calls and the persistence store.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	aiCallDuration  *prometheus.HistogramVec
	aiCallTotal     *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	aiCallDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ai_call_duration_seconds",
		Help:    "Duration of upstream AI calls in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60},
	}, []string{"operation"})

	aiCallTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_calls_total",
		Help: "Total upstream AI calls by operation and outcome",
	}, []string{"operation", "outcome"})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of persistence store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, aiCallDuration, aiCallTotal, storeDuration, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		aiCallDuration:  aiCallDuration,
		aiCallTotal:     aiCallTotal,
		storeDuration:   storeDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveAICall records the duration and outcome of an upstream AI
// call. Operation is one of "draft", "transcribe", "review".
func (m *MetricsService) ObserveAICall(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.aiCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.aiCallTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveStoreOperation records persistence timing.
func (m *MetricsService) ObserveStoreOperation(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
