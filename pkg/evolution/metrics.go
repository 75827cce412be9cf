package evolution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks evolution chain cache hits.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pokedex_chain_cache_hits_total",
			Help: "Total number of evolution chain cache hits",
		},
	)

	// CacheMisses tracks evolution chain cache misses.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pokedex_chain_cache_misses_total",
			Help: "Total number of evolution chain cache misses",
		},
	)

	// CacheSize tracks the number of distinct chains held in the cache.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pokedex_chain_cache_size",
			Help: "Number of distinct evolution chains currently cached",
		},
	)
)
