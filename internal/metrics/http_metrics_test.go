package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewHTTPMetrics(t *testing.T) {
	metrics := newHTTPMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newHTTPMetricsWithRegisterer should not return nil")
	}

	if metrics.requestsTotal == nil {
		t.Error("requestsTotal counter vec should not be nil")
	}

	if metrics.requestDuration == nil {
		t.Error("requestDuration histogram vec should not be nil")
	}

	if metrics.inFlight == nil {
		t.Error("inFlight gauge should not be nil")
	}

	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}

	if metrics.productsCreated == nil {
		t.Error("productsCreated counter should not be nil")
	}
}

func TestNewHTTPMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newHTTPMetricsWithRegisterer(reg)
	second := newHTTPMetricsWithRegisterer(reg)

	if first.inFlight != second.inFlight {
		t.Error("repeated registration should reuse the existing gauge")
	}
}

func TestRecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newHTTPMetricsWithRegisterer(reg)

	metrics.RecordRequest("/api/orders", "GET", 200, 15*time.Millisecond)
	metrics.RecordRequest("/api/orders", "GET", 200, 25*time.Millisecond)
	metrics.RecordRequest("/api/orders", "POST", 201, 5*time.Millisecond)

	counter, err := metrics.requestsTotal.GetMetricWithLabelValues("/api/orders", "GET", "200")
	if err != nil {
		t.Fatalf("get counter: %v", err)
	}

	var m dto.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}

	if got := m.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected 2 GET requests recorded, got %v", got)
	}
}

func TestRecordRequestInFlight(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newHTTPMetricsWithRegisterer(reg)

	metrics.RecordRequestStarted()
	metrics.RecordRequestStarted()
	metrics.RecordRequestFinished()

	var m dto.Metric
	if err := metrics.inFlight.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}

	if got := m.GetGauge().GetValue(); got != 1 {
		t.Errorf("expected 1 request in flight, got %v", got)
	}
}

func TestRecordDomainCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newHTTPMetricsWithRegisterer(reg)

	metrics.RecordOrderCreated()
	metrics.RecordOrderCreated()
	metrics.RecordProductCreated()

	var m dto.Metric
	if err := metrics.ordersCreated.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected 2 orders created, got %v", got)
	}

	m.Reset()
	if err := metrics.productsCreated.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if got := m.GetCounter().GetValue(); got != 1 {
		t.Errorf("expected 1 product created, got %v", got)
	}
}
