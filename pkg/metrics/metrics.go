package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	BookingsCreated *prometheus.CounterVec
	PromoRejections *prometheus.CounterVec
	StockMovements  *prometheus.CounterVec
	RemindersSent   *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: constLabels,
		}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}, []string{"check_only", "with_promo"}),
		PromoRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "promo_rejections_total",
			Help:        "Total number of rejected promo codes by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		StockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "stock_movements_total",
			Help:        "Total number of recorded stock movements",
			ConstLabels: constLabels,
		}, []string{"direction"}),
		RemindersSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "service_reminders_total",
			Help:        "Service reminders processed by the scheduler",
			ConstLabels: constLabels,
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPInFlight,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingsCreated,
		m.PromoRejections,
		m.StockMovements,
		m.RemindersSent,
	)

	return m
}

// IncBookingCreated увеличивает счетчик созданных бронирований. Безопасен для nil
func (m *Metrics) IncBookingCreated(checkOnly, withPromo bool) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(boolLabel(checkOnly), boolLabel(withPromo)).Inc()
}

// IncPromoRejection увеличивает счетчик отклоненных промокодов. Безопасен для nil
func (m *Metrics) IncPromoRejection(reason string) {
	if m == nil {
		return
	}
	m.PromoRejections.WithLabelValues(reason).Inc()
}

// IncStockMovement увеличивает счетчик движений склада. Безопасен для nil
func (m *Metrics) IncStockMovement(direction string) {
	if m == nil {
		return
	}
	m.StockMovements.WithLabelValues(direction).Inc()
}

// IncReminder увеличивает счетчик напоминаний. Безопасен для nil
func (m *Metrics) IncReminder(status string) {
	if m == nil {
		return
	}
	m.RemindersSent.WithLabelValues(status).Inc()
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
