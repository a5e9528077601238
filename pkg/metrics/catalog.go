package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records upstream catalog fetches.
type CatalogMetrics struct {
	duration *prometheus.HistogramVec
	failure  *prometheus.CounterVec
	items    *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of upstream catalog fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"section"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_failures_total",
		Help: "Failed upstream catalog fetches.",
	}, []string{"section"})
	items := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_items_normalized_total",
		Help: "Catalog records normalized into storefront products.",
	}, []string{"section"})
	reg.MustRegister(duration, failure, items)
	return &CatalogMetrics{
		duration: duration,
		failure:  failure,
		items:    items,
	}
}

// ObserveFetch records the duration of one section fetch.
func (c *CatalogMetrics) ObserveFetch(section string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(section)).Observe(duration.Seconds())
}

// IncFailure increments the failure counter for the section.
func (c *CatalogMetrics) IncFailure(section string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(section)).Inc()
}

// AddItems counts normalized records for the section.
func (c *CatalogMetrics) AddItems(section string, n int) {
	if c == nil || c.items == nil || n <= 0 {
		return
	}
	c.items.WithLabelValues(normalizeLabel(section)).Add(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
