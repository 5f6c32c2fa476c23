// Package metrics provides the central Prometheus registry reference for
// the Gigboard client. All metrics are defined in their respective packages
// (client, cache) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the Gigboard client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - gigboard_requests_total{endpoint, status} (Counter): Requests by endpoint and
//     HTTP status ("cache" for cache-served responses, "network_error" for transport failures)
//   - gigboard_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - gigboard_errors_total{class} (Counter): Errors by class (network, http, not_found)
//   - gigboard_fallbacks_total{operation} (Counter): Fallback-dataset substitutions by
//     operation (artists_all, events_all, artists_top, events_top, artists_search,
//     events_search, artist_by_id, event_by_id, stats)
//
// Cache Metrics (pkg/cache):
//   - gigboard_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - gigboard_cache_misses_total (Counter): Cache misses
//   - gigboard_cache_size_bytes{layer="redis"} (Gauge): Current cache size in bytes
//   - gigboard_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(gigboard_cache_hits_total[5m])) /
//   (sum(rate(gigboard_cache_hits_total[5m])) + sum(rate(gigboard_cache_misses_total[5m])))
//
//   # Fallback Rate (backend outage indicator)
//   rate(gigboard_fallbacks_total[5m])
//
//   # Request Error Rate
//   rate(gigboard_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(gigboard_request_duration_seconds_bucket[5m]))
