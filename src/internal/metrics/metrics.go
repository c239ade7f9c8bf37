package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turris-cz/turrishw/src/internal/hw"
)

// Collector bundles the Prometheus metrics of interface enumeration and the
// HTTP API. It implements hw.Observer so a classification run can feed it
// directly.
type Collector struct {
	gatherer prometheus.Gatherer

	Enumerations        *prometheus.CounterVec
	EnumerationDuration prometheus.Histogram
	Interfaces          prometheus.Gauge
	Classified          *prometheus.CounterVec
	Dropped             *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
}

var _ hw.Observer = (*Collector)(nil)

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil. Registering twice against the same registry
// reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	enumerations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "turrishw_enumerations_total",
		Help: "Number of interface enumerations, labeled by board and result.",
	}, []string{"board", "result"}), "turrishw_enumerations_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "turrishw_enumeration_duration_seconds",
		Help:    "Time spent enumerating and classifying interfaces.",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}), "turrishw_enumeration_duration_seconds")
	if err != nil {
		return nil, err
	}

	interfaces, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "turrishw_interfaces",
		Help: "Number of interfaces reported by the last successful enumeration.",
	}), "turrishw_interfaces")
	if err != nil {
		return nil, err
	}

	classified, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "turrishw_interfaces_classified_total",
		Help: "Number of classified interfaces, labeled by interface type.",
	}, []string{"type"}), "turrishw_interfaces_classified_total")
	if err != nil {
		return nil, err
	}

	dropped, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "turrishw_interfaces_dropped_total",
		Help: "Number of interfaces left out of the result, labeled by reason.",
	}, []string{"reason"}), "turrishw_interfaces_dropped_total")
	if err != nil {
		return nil, err
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "turrishw_http_requests_total",
		Help: "Number of handled API requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"}), "turrishw_http_requests_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:            gatherer,
		Enumerations:        enumerations,
		EnumerationDuration: duration,
		Interfaces:          interfaces,
		Classified:          classified,
		Dropped:             dropped,
		HTTPRequests:        requests,
	}, nil
}

func (c *Collector) InterfaceClassified(iface *hw.Interface) {
	if c == nil || iface == nil {
		return
	}
	c.Classified.WithLabelValues(iface.Type).Inc()
}

func (c *Collector) InterfaceDropped(_ string, reason hw.DropReason) {
	if c == nil {
		return
	}
	c.Dropped.WithLabelValues(string(reason)).Inc()
}

// ObserveEnumeration records one enumeration of board that took d and
// returned count interfaces or failed with err.
func (c *Collector) ObserveEnumeration(board string, d time.Duration, count int, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.Enumerations.WithLabelValues(board, result).Inc()
	c.EnumerationDuration.Observe(d.Seconds())
	if err == nil {
		c.Interfaces.Set(float64(count))
	}
}

// Middleware counts requests by their chi route pattern, so path parameters
// do not explode the label space.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		if c == nil {
			return
		}
		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
