package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "a11ypack"

// FormMetrics counts what happens to form submissions and language changes.
type FormMetrics struct {
	submissions        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	handoffDuration    *prometheus.HistogramVec
	languageSelections *prometheus.CounterVec
	navigations        *prometheus.CounterVec
}

// NewFormMetrics creates the metrics and registers them on registerer.
func NewFormMetrics(registerer prometheus.Registerer) *FormMetrics {
	m := &FormMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Form submissions grouped by form and outcome",
		}, []string{"form", "outcome"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_validation_failures_total",
			Help:      "Rejected field values grouped by form, field and reason",
		}, []string{"form", "field", "reason"}),
		handoffDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "form_handoff_duration_seconds",
			Help:      "Time spent handing a valid submission to the mail sink",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"form"}),
		languageSelections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "language_selections_total",
			Help:      "Explicit language selections grouped by language",
		}, []string{"language"}),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anchor_navigations_total",
			Help:      "Anchor navigation requests grouped by outcome",
		}, []string{"outcome"}),
	}
	registerer.MustRegister(m.submissions, m.validationFailures, m.handoffDuration, m.languageSelections, m.navigations)
	return m
}

// ObserveSubmission records one Submit outcome.
func (m *FormMetrics) ObserveSubmission(formID, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(formID, outcome).Inc()
}

// ObserveValidationFailure records one rejected field.
func (m *FormMetrics) ObserveValidationFailure(formID, field, reason string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(formID, field, reason).Inc()
}

// ObserveHandoff records how long a hand-off took.
func (m *FormMetrics) ObserveHandoff(formID string, d time.Duration) {
	if m == nil {
		return
	}
	m.handoffDuration.WithLabelValues(formID).Observe(d.Seconds())
}

// ObserveLanguageSelection records an explicit language change.
func (m *FormMetrics) ObserveLanguageSelection(lang string) {
	if m == nil {
		return
	}
	m.languageSelections.WithLabelValues(lang).Inc()
}

// ObserveNavigation records an anchor navigation outcome ("found" or "missing").
func (m *FormMetrics) ObserveNavigation(outcome string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(outcome).Inc()
}

// NewRegistry returns a registry with the Go and process collectors installed.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}
