package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestQueryCacheMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewQueryCacheMetrics(reg)
	kind := "products"

	metrics.IncHit(kind)
	metrics.IncHit(kind)
	metrics.IncMiss(kind)
	metrics.IncCoalesced(kind)
	metrics.IncInvalidation(kind)
	metrics.IncStaleDiscard(kind)
	metrics.IncFetchFailure(kind)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	expectations := map[string]float64{
		"query_cache_hits":           2,
		"query_cache_misses":         1,
		"query_cache_coalesced":      1,
		"query_cache_invalidations":  1,
		"query_cache_stale_discards": 1,
		"query_cache_fetch_failures": 1,
	}
	for name, want := range expectations {
		got, err := fetchCounterValue(mfs, name, "kind", kind)
		if err != nil {
			t.Fatalf("fetch %s: %v", name, err)
		}
		if got != want {
			t.Fatalf("expected %s=%f, got %f", name, want, got)
		}
	}
}

func TestQueryCacheMetricsNilSafe(t *testing.T) {
	var metrics *QueryCacheMetrics
	metrics.IncHit("products")

	unregistered := NewQueryCacheMetrics(nil)
	unregistered.IncMiss("")
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
