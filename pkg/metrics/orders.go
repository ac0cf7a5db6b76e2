package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order submission and notification outcomes.
type OrderMetrics struct {
	submitted  prometheus.Counter
	total      prometheus.Histogram
	deliveries *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	submitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Orders appended to the ledger.",
	})
	total := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_amount",
		Help:    "Total amount of submitted orders.",
		Buckets: []float64{20, 40, 80, 160, 320, 640},
	})
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_notifications_total",
		Help: "Order notification delivery attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(submitted, total, deliveries)
	return &OrderMetrics{
		submitted:  submitted,
		total:      total,
		deliveries: deliveries,
	}
}

// IncSubmitted counts one recorded order.
func (m *OrderMetrics) IncSubmitted() {
	if m == nil || m.submitted == nil {
		return
	}
	m.submitted.Inc()
}

// ObserveTotal records the total amount of a submitted order.
func (m *OrderMetrics) ObserveTotal(amount float64) {
	if m == nil || m.total == nil {
		return
	}
	m.total.Observe(amount)
}

// IncDelivered counts a successful notification delivery.
func (m *OrderMetrics) IncDelivered() {
	if m == nil || m.deliveries == nil {
		return
	}
	m.deliveries.WithLabelValues("delivered").Inc()
}

// IncDeliveryFailed counts a failed notification delivery.
func (m *OrderMetrics) IncDeliveryFailed() {
	if m == nil || m.deliveries == nil {
		return
	}
	m.deliveries.WithLabelValues("failed").Inc()
}
