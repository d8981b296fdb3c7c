package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"a11ypack/internal/version"
)

var (
	buildInfoDesc    = prometheus.NewDesc("a11ypack_build_info", "Build information of the running binary", []string{"version", "commit"}, nil)
	cacheEntriesDesc = prometheus.NewDesc("a11ypack_content_cache_entries", "Number of content documents currently cached", nil, nil)
	languagesDesc    = prometheus.NewDesc("a11ypack_supported_languages", "Number of languages the site is served in", nil, nil)
)

// Sizer reports a number of cached items.
type Sizer interface {
	Len() int
}

type siteCollector struct {
	cache     Sizer
	languages int
}

// NewSiteCollector exposes build info and content cache occupancy on every scrape.
func NewSiteCollector(cache Sizer, languages int) prometheus.Collector {
	return &siteCollector{cache: cache, languages: languages}
}

func (collector *siteCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- buildInfoDesc
	ch <- cacheEntriesDesc
	ch <- languagesDesc
}

func (collector *siteCollector) Collect(ch chan<- prometheus.Metric) {
	info := version.Get()
	ch <- prometheus.MustNewConstMetric(buildInfoDesc, prometheus.GaugeValue, 1, info.Version, info.Commit)
	ch <- prometheus.MustNewConstMetric(languagesDesc, prometheus.GaugeValue, float64(collector.languages))
	if collector.cache != nil {
		ch <- prometheus.MustNewConstMetric(cacheEntriesDesc, prometheus.GaugeValue, float64(collector.cache.Len()))
	}
}
