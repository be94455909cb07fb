package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order placement outcomes and decrement contention.
type OrderMetrics struct {
	placed     *prometheus.CounterVec
	retries    prometheus.Histogram
	stockLevel *prometheus.GaugeVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_total",
		Help: "Order placement attempts by outcome.",
	}, []string{"outcome"})
	retries := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_decrement_retries",
		Help:    "Transaction retries needed per successful stock decrement.",
		Buckets: []float64{0, 1, 2, 3, 5, 8},
	})
	stockLevel := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dish_remaining_stock",
		Help: "Last observed remaining stock per dish.",
	}, []string{"dish_id"})
	reg.MustRegister(placed, retries, stockLevel)
	return &OrderMetrics{
		placed:     placed,
		retries:    retries,
		stockLevel: stockLevel,
	}
}

// IncOutcome counts one order attempt with the given outcome label
// (placed, out_of_stock, not_found, failed).
func (m *OrderMetrics) IncOutcome(outcome string) {
	if m == nil || m.placed == nil {
		return
	}
	m.placed.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveRetries records how many conflict retries a decrement needed.
func (m *OrderMetrics) ObserveRetries(retries int) {
	if m == nil || m.retries == nil {
		return
	}
	m.retries.Observe(float64(retries))
}

// SetStockLevel records the remaining stock observed after a mutation.
func (m *OrderMetrics) SetStockLevel(dishID string, remaining int) {
	if m == nil || m.stockLevel == nil {
		return
	}
	m.stockLevel.WithLabelValues(normalizeLabel(dishID)).Set(float64(remaining))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
