package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestModerationMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewModerationMetrics(reg)

	metrics.IncSubmitted("event")
	metrics.IncSubmitted("event")
	metrics.IncApproved("event")
	metrics.IncRejected("partner")
	metrics.IncRateLimited("/api/v1/auth/login")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pending_changes_submitted", "entity_type", "event"); err != nil {
		t.Fatalf("fetch submitted: %v", err)
	} else if got != 2 {
		t.Fatalf("expected submitted=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pending_changes_approved", "entity_type", "event"); err != nil {
		t.Fatalf("fetch approved: %v", err)
	} else if got != 1 {
		t.Fatalf("expected approved=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pending_changes_rejected", "entity_type", "partner"); err != nil {
		t.Fatalf("fetch rejected: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejected=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "requests_rate_limited", "path", "/api/v1/auth/login"); err != nil {
		t.Fatalf("fetch rate limited: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rate_limited=1, got %f", got)
	}
}

func TestModerationMetricsNilSafe(t *testing.T) {
	var metrics *ModerationMetrics
	metrics.IncSubmitted("event")
	metrics.IncApproved("event")
	metrics.IncRejected("event")
	metrics.IncRateLimited("/path")

	empty := NewModerationMetrics(nil)
	empty.IncSubmitted("event")
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
