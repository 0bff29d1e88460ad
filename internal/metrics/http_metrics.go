package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics содержит метрики HTTP-слоя API.
type HTTPMetrics struct {
	// Счётчик запросов по маршруту, методу и статусу
	requestsTotal *prometheus.CounterVec

	// Гистограмма длительности запросов по маршруту и методу
	requestDuration *prometheus.HistogramVec

	// Gauge для запросов в обработке
	inFlight prometheus.Gauge

	// Счётчики доменных операций
	ordersCreated   prometheus.Counter
	productsCreated prometheus.Counter
}

// NewHTTPMetrics создаёт новый экземпляр метрик HTTP.
func NewHTTPMetrics() *HTTPMetrics {
	return newHTTPMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newHTTPMetricsWithRegisterer(registerer prometheus.Registerer) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &HTTPMetrics{
		requestsTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "ordenes_http_requests_total",
			Help: "Total number of HTTP requests handled",
		}, []string{"route", "method", "status"}),
		requestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "ordenes_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"route", "method"}),
		inFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "ordenes_http_requests_in_flight",
			Help: "Number of HTTP requests currently being handled",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ordenes_orders_created_total",
			Help: "Total number of orders created",
		}),
		productsCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ordenes_products_created_total",
			Help: "Total number of products created",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordRequest фиксирует завершённый HTTP-запрос.
func (m *HTTPMetrics) RecordRequest(route, method string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordRequestStarted увеличивает количество запросов в обработке.
func (m *HTTPMetrics) RecordRequestStarted() {
	m.inFlight.Inc()
}

// RecordRequestFinished уменьшает количество запросов в обработке.
func (m *HTTPMetrics) RecordRequestFinished() {
	m.inFlight.Dec()
}

// RecordOrderCreated увеличивает счётчик созданных заказов.
func (m *HTTPMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordProductCreated увеличивает счётчик созданных товаров.
func (m *HTTPMetrics) RecordProductCreated() {
	m.productsCreated.Inc()
}
