package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// QueryCacheMetrics records behavior of the entity cache and query layer.
type QueryCacheMetrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	coalesced     *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	staleDiscards *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
}

// NewQueryCacheMetrics registers the cache metrics on the provided registerer.
func NewQueryCacheMetrics(reg prometheus.Registerer) *QueryCacheMetrics {
	if reg == nil {
		return &QueryCacheMetrics{}
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_hits",
		Help: "Cache entries served without a fetch.",
	}, []string{"kind"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_misses",
		Help: "Cache lookups that triggered a fetch.",
	}, []string{"kind"})
	coalesced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_coalesced",
		Help: "Concurrent lookups folded into an in-flight fetch.",
	}, []string{"kind"})
	invalidations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_invalidations",
		Help: "Entries marked stale by type-level invalidation.",
	}, []string{"kind"})
	staleDiscards := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_stale_discards",
		Help: "Fetch results discarded because a newer request superseded them.",
	}, []string{"kind"})
	fetchFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_fetch_failures",
		Help: "Fetches that returned an error.",
	}, []string{"kind"})
	reg.MustRegister(hits, misses, coalesced, invalidations, staleDiscards, fetchFailures)
	return &QueryCacheMetrics{
		hits:          hits,
		misses:        misses,
		coalesced:     coalesced,
		invalidations: invalidations,
		staleDiscards: staleDiscards,
		fetchFailures: fetchFailures,
	}
}

// IncHit increments the hit counter for the entity kind.
func (m *QueryCacheMetrics) IncHit(kind string) {
	if m == nil || m.hits == nil {
		return
	}
	m.hits.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncMiss increments the miss counter for the entity kind.
func (m *QueryCacheMetrics) IncMiss(kind string) {
	if m == nil || m.misses == nil {
		return
	}
	m.misses.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncCoalesced increments the coalesced counter for the entity kind.
func (m *QueryCacheMetrics) IncCoalesced(kind string) {
	if m == nil || m.coalesced == nil {
		return
	}
	m.coalesced.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncInvalidation increments the invalidation counter for the entity kind.
func (m *QueryCacheMetrics) IncInvalidation(kind string) {
	if m == nil || m.invalidations == nil {
		return
	}
	m.invalidations.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncStaleDiscard increments the superseded-result counter for the entity kind.
func (m *QueryCacheMetrics) IncStaleDiscard(kind string) {
	if m == nil || m.staleDiscards == nil {
		return
	}
	m.staleDiscards.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFetchFailure increments the fetch failure counter for the entity kind.
func (m *QueryCacheMetrics) IncFetchFailure(kind string) {
	if m == nil || m.fetchFailures == nil {
		return
	}
	m.fetchFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(kind string) string {
	if kind == "" {
		return "unknown"
	}
	return kind
}
