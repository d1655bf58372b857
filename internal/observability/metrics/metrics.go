package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics exposes counters for the booking conversation engine.
type EngineMetrics struct {
	updatesTotal     *prometheus.CounterVec
	bookingsTotal    *prometheus.CounterVec
	validationsTotal *prometheus.CounterVec
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		updatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citabot",
			Subsystem: "engine",
			Name:      "updates_total",
			Help:      "Inbound updates handled, by kind and session state",
		}, []string{"kind", "state"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citabot",
			Subsystem: "engine",
			Name:      "bookings_total",
			Help:      "Calendar booking attempts by outcome",
		}, []string{"outcome"}),
		validationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citabot",
			Subsystem: "engine",
			Name:      "schedule_validations_total",
			Help:      "Schedule validation results by verdict",
		}, []string{"verdict"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.updatesTotal, m.bookingsTotal, m.validationsTotal)
	return m
}

func (m *EngineMetrics) ObserveUpdate(kind, state string) {
	if m == nil {
		return
	}
	m.updatesTotal.WithLabelValues(kind, state).Inc()
}

func (m *EngineMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *EngineMetrics) ObserveValidation(verdict string) {
	if m == nil {
		return
	}
	m.validationsTotal.WithLabelValues(verdict).Inc()
}
