package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "beauty_bot"

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP (admin API)
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrorsTotal *prometheus.CounterVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	// Бот
	BotUpdatesTotal          *prometheus.CounterVec
	AppointmentsCreatedTotal *prometheus.CounterVec
	AvailabilityDuration     *prometheus.HistogramVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of admin API requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "Admin API request duration",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		BotUpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "bot_updates_total",
			Help:        "Total number of processed telegram updates",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		AppointmentsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "appointments_commits_total",
			Help:        "Appointment commit attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		AvailabilityDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "availability_duration_seconds",
			Help:        "Free slot computation duration",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5},
		}, []string{"entity"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrorsTotal,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BotUpdatesTotal,
		m.AppointmentsCreatedTotal,
		m.AvailabilityDuration,
	)

	return m
}

// ObserveDBQuery фиксирует длительность и результат запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	if err != nil {
		m.DBQueryErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// IncBotUpdate увеличивает счетчик обработанных обновлений
func (m *Metrics) IncBotUpdate(kind string) {
	if m == nil {
		return
	}
	m.BotUpdatesTotal.WithLabelValues(kind).Inc()
}

// IncAppointmentCommit увеличивает счетчик попыток создания записи
func (m *Metrics) IncAppointmentCommit(result string) {
	if m == nil {
		return
	}
	m.AppointmentsCreatedTotal.WithLabelValues(result).Inc()
}

// ObserveAvailability фиксирует длительность расчета свободных слотов
func (m *Metrics) ObserveAvailability(entity string, started time.Time) {
	if m == nil {
		return
	}
	m.AvailabilityDuration.WithLabelValues(entity).Observe(time.Since(started).Seconds())
}
