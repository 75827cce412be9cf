// Package metrics provides the centralized Prometheus registry for the
// exporter. All metrics are defined in their respective packages (client,
// evolution) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics,
// plus an optional HTTP endpoint for scraping them during a run.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the exporter.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Serve exposes the registered metrics on addr under /metrics. It blocks
// until the listener fails, so callers run it in a goroutine. A run of the
// exporter is short-lived; the server dies with the process.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - pokedex_api_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - pokedex_api_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - pokedex_api_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Evolution Cache Metrics (pkg/evolution):
//   - pokedex_chain_cache_hits_total (Counter): Chain lookups served from the run-scoped cache
//   - pokedex_chain_cache_misses_total (Counter): Chain lookups that triggered an upstream fetch
//   - pokedex_chain_cache_size (Gauge): Number of distinct evolution chains cached
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(pokedex_chain_cache_hits_total[5m])) /
//   (sum(rate(pokedex_chain_cache_hits_total[5m])) + sum(rate(pokedex_chain_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(pokedex_api_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(pokedex_api_request_duration_seconds_bucket[5m]))
