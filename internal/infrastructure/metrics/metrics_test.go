package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistererRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegisterer(registry)

	if m.TransactionsApplied == nil || m.CustomersCreated == nil || m.TotalReceivable == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.TransactionsApplied.WithLabelValues("GIVE_CREDIT").Inc()
	m.TotalPayable.Set(42)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.TransactionsApplied.WithLabelValues("GIVE_CREDIT")); got != 1 {
		t.Fatalf("expected counter 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.TotalPayable); got != 42 {
		t.Fatalf("expected gauge 42, got %v", got)
	}
}

func TestNewWithRegistererIsolatedRegistries(t *testing.T) {
	// Two registries must not collide on metric names.
	_ = NewWithRegisterer(prometheus.NewRegistry())
	_ = NewWithRegisterer(prometheus.NewRegistry())
}
