package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of handled HTTP requests, labeled by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// Orders successfully placed via cart conversion
	OrdersPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrderTotalAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_amount",
		Help:    "Distribution of order totals",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		OrdersPlacedTotal,
		OrderTotalAmount,
	)
}
