package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestOrderMetricsExportsOutcomesAndRetries(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOrderMetrics(reg)

	metrics.IncOutcome("placed")
	metrics.IncOutcome("out_of_stock")
	metrics.ObserveRetries(2)
	metrics.SetStockLevel("dish-1", 4)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "orders_total", "outcome", "placed"); err != nil {
		t.Fatalf("fetch placed: %v", err)
	} else if got != 1 {
		t.Fatalf("expected placed=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "orders_total", "outcome", "out_of_stock"); err != nil {
		t.Fatalf("fetch out_of_stock: %v", err)
	} else if got != 1 {
		t.Fatalf("expected out_of_stock=1, got %f", got)
	}

	if mf := findMetricFamily(mfs, "order_decrement_retries"); mf == nil {
		t.Fatalf("retries histogram not exported")
	} else if mf.GetMetric()[0].GetHistogram().GetSampleSum() != 2 {
		t.Fatalf("expected retry sum 2, got %f", mf.GetMetric()[0].GetHistogram().GetSampleSum())
	}

	if got, err := fetchGaugeValue(mfs, "dish_remaining_stock", "dish_id", "dish-1"); err != nil {
		t.Fatalf("fetch stock gauge: %v", err)
	} else if got != 4 {
		t.Fatalf("expected stock gauge 4, got %f", got)
	}
}

func TestOrderMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewOrderMetrics(nil)
	metrics.IncOutcome("placed")
	metrics.ObserveRetries(1)
	metrics.SetStockLevel("dish-1", 1)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchGaugeValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetGauge().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("gauge %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
