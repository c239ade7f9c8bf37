package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/turris-cz/turrishw/src/internal/hw"
)

func newTestCollector(t *testing.T) (*Collector, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return collector, reg
}

func TestObserverCounts(t *testing.T) {
	collector, _ := newTestCollector(t)

	collector.InterfaceClassified(&hw.Interface{Name: "eth0", Type: hw.TypeEth})
	collector.InterfaceClassified(&hw.Interface{Name: "eth1", Type: hw.TypeEth})
	collector.InterfaceClassified(&hw.Interface{Name: "wlan0", Type: hw.TypeWifi})
	collector.InterfaceDropped("wwan0", hw.ReasonNoControlDevice)

	if got := testutil.ToFloat64(collector.Classified.WithLabelValues("eth")); got != 2 {
		t.Errorf("classified{type=eth} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.Classified.WithLabelValues("wifi")); got != 1 {
		t.Errorf("classified{type=wifi} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Dropped.WithLabelValues("no_control_device")); got != 1 {
		t.Errorf("dropped{reason=no_control_device} = %v, want 1", got)
	}
}

func TestObserveEnumeration(t *testing.T) {
	collector, reg := newTestCollector(t)

	collector.ObserveEnumeration("MOX", 2*time.Millisecond, 7, nil)
	collector.ObserveEnumeration("MOX", 2*time.Millisecond, 0, errors.New("boom"))

	if got := testutil.ToFloat64(collector.Enumerations.WithLabelValues("MOX", "ok")); got != 1 {
		t.Errorf("enumerations{result=ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Enumerations.WithLabelValues("MOX", "error")); got != 1 {
		t.Errorf("enumerations{result=error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Interfaces); got != 7 {
		t.Errorf("interfaces = %v, want 7 (failed runs must not reset it)", got)
	}

	expected := `
# HELP turrishw_enumeration_duration_seconds Time spent enumerating and classifying interfaces.
# TYPE turrishw_enumeration_duration_seconds histogram
turrishw_enumeration_duration_seconds_bucket{le="0.001"} 0
turrishw_enumeration_duration_seconds_bucket{le="0.0025"} 2
turrishw_enumeration_duration_seconds_bucket{le="0.005"} 2
turrishw_enumeration_duration_seconds_bucket{le="0.01"} 2
turrishw_enumeration_duration_seconds_bucket{le="0.025"} 2
turrishw_enumeration_duration_seconds_bucket{le="0.05"} 2
turrishw_enumeration_duration_seconds_bucket{le="0.1"} 2
turrishw_enumeration_duration_seconds_bucket{le="0.25"} 2
turrishw_enumeration_duration_seconds_bucket{le="0.5"} 2
turrishw_enumeration_duration_seconds_bucket{le="1"} 2
turrishw_enumeration_duration_seconds_bucket{le="+Inf"} 2
turrishw_enumeration_duration_seconds_sum 0.004
turrishw_enumeration_duration_seconds_count 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "turrishw_enumeration_duration_seconds"); err != nil {
		t.Errorf("unexpected histogram: %v", err)
	}
}

func TestNewCollector_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}

	first.InterfaceDropped("x", hw.ReasonIgnored)
	if got := testutil.ToFloat64(second.Dropped.WithLabelValues("ignored")); got != 1 {
		t.Errorf("expected shared counter, got %v", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var collector *Collector
	collector.InterfaceClassified(&hw.Interface{Type: hw.TypeEth})
	collector.InterfaceDropped("eth0", hw.ReasonUnreadable)
	collector.ObserveEnumeration("MOX", time.Millisecond, 1, nil)
}

func TestMiddlewareAndHandler(t *testing.T) {
	collector, _ := newTestCollector(t)

	r := chi.NewRouter()
	r.Use(collector.Middleware)
	r.Get("/api/v1/things/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", collector.Handler())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/things/eth0", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("GET", "/api/v1/things/{name}", "404")); got != 1 {
		t.Errorf("http_requests{route=/api/v1/things/{name}} = %v, want 1", got)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "turrishw_http_requests_total") {
		t.Errorf("metrics output missing request counter:\n%s", rr.Body.String())
	}
}
