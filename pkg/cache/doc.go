// Package cache provides a Redis-backed response cache for Gigboard API
// GET payloads.
//
// The upstream API sends no cache-control or expires headers, so entries
// carry a fixed TTL chosen by the caller. Keys are derived
// deterministically from the endpoint path and query parameters.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{
//		Endpoint:    "/artists/top",
//		QueryParams: url.Values{"limit": []string{"200"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the API, then:
//		manager.Set(ctx, key, cache.NewEntry(payload, 60*time.Second))
//	}
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - gigboard_cache_hits_total{layer="redis"} - Cache hits
//   - gigboard_cache_misses_total - Cache misses
//   - gigboard_cache_size_bytes{layer="redis"} - Cache size
//   - gigboard_cache_errors_total{operation} - Cache operation errors
package cache
