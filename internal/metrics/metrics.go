// Package metrics - Prometheus-метрики жизненного цикла событий, уведомлений, подбора и HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	lifecycleOps        *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	scoringDuration     prometheus.Histogram
	candidatesScored    prometheus.Counter
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option настраивает Manager.
type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry подменяет реестр, например для тестов.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

var global = NewManager()

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gastro",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.init()
	return m
}

func (m *Manager) init() {
	auto := promauto.With(m.registry)

	m.lifecycleOps = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "lifecycle_operations_total",
		Help:      "Операции жизненного цикла событий и предложений по результату",
	}, []string{"operation", "outcome"})

	m.notifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "notifications_total",
		Help:      "Доставка доменных событий подписчикам",
	}, []string{"kind", "sink", "outcome"})

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "matching_duration_seconds",
		Help:      "Длительность ранжирования профессионалов для события",
		Buckets:   m.histogramBuckets,
	})

	m.candidatesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "matching_candidates_scored_total",
		Help:      "Число оценённых пар событие-профессионал",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP-запросы по маршруту, методу и коду ответа",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Длительность HTTP-запросов",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Default возвращает глобальный менеджер процесса.
func Default() *Manager {
	return global
}

func Handler() http.Handler {
	return global.Handler()
}

// RecordLifecycle учитывает операцию (create_event, cancel_event, accept_proposal, ...) и её исход.
func RecordLifecycle(operation string, err error) {
	global.lifecycleOps.WithLabelValues(operation, outcome(err)).Inc()
}

func RecordNotification(kind, sink string, err error) {
	global.notifications.WithLabelValues(kind, sink, outcome(err)).Inc()
}

func RecordMatching(seconds float64, candidates int) {
	global.scoringDuration.Observe(seconds)
	global.candidatesScored.Add(float64(candidates))
}

func RecordHTTPRequest(endpoint, method, statusCode string, seconds float64) {
	global.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	global.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
