package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ModerationMetrics records the moderation queue throughput.
type ModerationMetrics struct {
	submitted   *prometheus.CounterVec
	approved    *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
}

// NewModerationMetrics registers the moderation metrics on the provided registerer.
func NewModerationMetrics(reg prometheus.Registerer) *ModerationMetrics {
	if reg == nil {
		return &ModerationMetrics{}
	}
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pending_changes_submitted",
		Help: "Pending changes submitted for review.",
	}, []string{"entity_type"})
	approved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pending_changes_approved",
		Help: "Pending changes approved and published.",
	}, []string{"entity_type"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pending_changes_rejected",
		Help: "Pending changes rejected by a reviewer.",
	}, []string{"entity_type"})
	rateLimited := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "requests_rate_limited",
		Help: "Requests rejected by the rate limiter.",
	}, []string{"path"})
	reg.MustRegister(submitted, approved, rejected, rateLimited)
	return &ModerationMetrics{
		submitted:   submitted,
		approved:    approved,
		rejected:    rejected,
		rateLimited: rateLimited,
	}
}

// IncSubmitted increments the submitted counter for the entity type.
func (m *ModerationMetrics) IncSubmitted(entityType string) {
	if m == nil || m.submitted == nil {
		return
	}
	m.submitted.WithLabelValues(normalizeLabel(entityType)).Inc()
}

// IncApproved increments the approved counter for the entity type.
func (m *ModerationMetrics) IncApproved(entityType string) {
	if m == nil || m.approved == nil {
		return
	}
	m.approved.WithLabelValues(normalizeLabel(entityType)).Inc()
}

// IncRejected increments the rejected counter for the entity type.
func (m *ModerationMetrics) IncRejected(entityType string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(entityType)).Inc()
}

// IncRateLimited increments the limiter rejection counter for the path.
func (m *ModerationMetrics) IncRateLimited(path string) {
	if m == nil || m.rateLimited == nil {
		return
	}
	m.rateLimited.WithLabelValues(normalizeLabel(path)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
