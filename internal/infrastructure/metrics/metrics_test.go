package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.RunsCompleted == nil || m.TransactionsProcessed == nil || m.HTTPRequests == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.RunsCompleted.WithLabelValues("succeeded").Inc()
	m.TransactionsSkipped.WithLabelValues("locked_account").Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	names := make(map[string]bool, len(metricFamilies))
	for _, mf := range metricFamilies {
		names[mf.GetName()] = true
	}

	for _, want := range []string{"txhandler_runs_total", "txhandler_transactions_skipped_total", "txhandler_run_duration_seconds"} {
		if !names[want] {
			t.Fatalf("expected metric %s to be registered", want)
		}
	}
}
