package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewFormMetrics(registry)

	m.ObserveSubmission("contact", "succeeded")
	m.ObserveSubmission("contact", "succeeded")
	m.ObserveSubmission("newsletter", "invalid")
	m.ObserveValidationFailure("newsletter", "email", "format")
	m.ObserveLanguageSelection("es")
	m.ObserveNavigation("missing")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("contact", "succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("newsletter", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationFailures.WithLabelValues("newsletter", "email", "format")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.languageSelections.WithLabelValues("es")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.navigations.WithLabelValues("missing")))
}

func TestFormMetrics_Histogram(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewFormMetrics(registry)
	m.ObserveHandoff("pack-request", 2*time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)
	histogram := findMetric(families, "a11ypack_form_handoff_duration_seconds", map[string]string{"form": "pack-request"})
	require.NotNil(t, histogram)
	assert.Equal(t, uint64(1), histogram.GetHistogram().GetSampleCount())
}

func TestFormMetrics_NilIsNoop(t *testing.T) {
	var m *FormMetrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission("contact", "failed")
		m.ObserveValidationFailure("contact", "name", "missing")
		m.ObserveHandoff("contact", time.Millisecond)
		m.ObserveLanguageSelection("en")
		m.ObserveNavigation("found")
	})
}

type fixedSizer int

func (s fixedSizer) Len() int { return int(s) }

func TestSiteCollector(t *testing.T) {
	collector := NewSiteCollector(fixedSizer(2), 2)
	assert.Equal(t, 3, testutil.CollectAndCount(collector))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)
	families, err := registry.Gather()
	require.NoError(t, err)

	entries := findMetric(families, "a11ypack_content_cache_entries", nil)
	require.NotNil(t, entries)
	assert.InDelta(t, 2.0, entries.GetGauge().GetValue(), 0.0001)

	info := findMetric(families, "a11ypack_build_info", nil)
	require.NotNil(t, info)
	assert.InDelta(t, 1.0, info.GetGauge().GetValue(), 0.0001)
}

func TestSiteCollector_WithoutCache(t *testing.T) {
	assert.Equal(t, 2, testutil.CollectAndCount(NewSiteCollector(nil, 2)))
}

func TestNewRegistry(t *testing.T) {
	families, err := NewRegistry().Gather()
	require.NoError(t, err)
	assert.NotNil(t, findFamily(families, "go_goroutines"))
}

func findFamily(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func findMetric(families []*dto.MetricFamily, name string, labels map[string]string) *dto.Metric {
	mf := findFamily(families, name)
	if mf == nil {
		return nil
	}
	for _, m := range mf.Metric {
		if matchLabels(m, labels) {
			return m
		}
	}
	return nil
}

func matchLabels(metric *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, lp := range metric.Label {
		if expected, ok := labels[lp.GetName()]; ok {
			if expected != lp.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(labels)
}
