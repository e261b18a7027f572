package metrics

import (
	"net/http"
	"strconv"
	"time"

	"aquafeed/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aquafeed"

// Metrics groups the collectors of the monitor. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ticksTotal       prometheus.Counter
	alertsRaised     *prometheus.CounterVec
	alertsDismissed  prometheus.Counter
	feedingsTotal    *prometheus.CounterVec
	feedsRefused     prometheus.Counter
	phGauge          prometheus.Gauge
	temperatureGauge prometheus.Gauge
	activeAlerts     prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New builds the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Polling ticks processed.",
		}),
		alertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_raised_total",
			Help:      "Alerts raised by kind and severity.",
		}, []string{"kind", "severity"}),
		alertsDismissed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_dismissed_total",
			Help:      "Alerts dismissed by an operator.",
		}),
		feedingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedings_total",
			Help:      "Completed feedings by outcome.",
		}, []string{"outcome"}),
		feedsRefused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feeds_refused_total",
			Help:      "Feed requests ignored because a feed was in progress.",
		}),
		phGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ph",
			Help:      "Latest pH reading.",
		}),
		temperatureGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_fahrenheit",
			Help:      "Latest temperature reading in °F.",
		}),
		activeAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_alerts",
			Help:      "Alerts not yet dismissed.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ticksTotal,
		m.alertsRaised,
		m.alertsDismissed,
		m.feedingsTotal,
		m.feedsRefused,
		m.phGauge,
		m.temperatureGauge,
		m.activeAlerts,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Tick records one processed reading and the alerts it raised.
func (m *Metrics) Tick(r models.SensorReading, raised []models.Alert, active int) {
	if m == nil {
		return
	}
	m.ticksTotal.Inc()
	m.phGauge.Set(r.PH)
	m.temperatureGauge.Set(r.Temperature)
	for _, a := range raised {
		m.alertsRaised.WithLabelValues(string(a.Kind), string(a.Severity)).Inc()
	}
	m.activeAlerts.Set(float64(active))
}

func (m *Metrics) AlertDismissed(active int) {
	if m == nil {
		return
	}
	m.alertsDismissed.Inc()
	m.activeAlerts.Set(float64(active))
}

func (m *Metrics) Feeding(outcome models.FeedingOutcome) {
	if m == nil {
		return
	}
	m.feedingsTotal.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) FeedRefused() {
	if m == nil {
		return
	}
	m.feedsRefused.Inc()
}

// Middleware counts requests by matched route and status.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
