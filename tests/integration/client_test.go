package integration

import (
	"context"
	"testing"
	"time"

	"github.com/gigboard/gigboard-client/internal/testutil"
	"github.com/gigboard/gigboard-client/pkg/cache"
	"github.com/gigboard/gigboard-client/pkg/client"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

func newCachedClient(t *testing.T, baseURL string, redisClient *redis.Client, ttl time.Duration) *client.Client {
	t.Helper()

	cfg := client.DefaultConfig(baseURL)
	cfg.Redis = redisClient
	cfg.CacheTTL = ttl

	c, err := client.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return c
}

// TestCachedResponseSkipsUpstream tests that a repeated request is served
// from Redis without touching the API.
func TestCachedResponseSkipsUpstream(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/stats", testutil.NewJSONResponse(`{"artists": 42, "events": 7}`))

	c := newCachedClient(t, mock.URL(), redisClient, 60*time.Second)
	ctx := context.Background()

	// Request 1: cache miss, hits upstream
	stats1 := c.GetStats(ctx)
	if stats1.Artists != 42 {
		t.Errorf("First stats.Artists = %d, want 42", stats1.Artists)
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("After request 1: upstream requests = %d, want 1", mock.GetRequestCount())
	}

	// Wait for cache write
	time.Sleep(100 * time.Millisecond)

	// Request 2: served from cache
	stats2 := c.GetStats(ctx)
	if stats2.Artists != 42 {
		t.Errorf("Second stats.Artists = %d, want 42", stats2.Artists)
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("After request 2: upstream requests = %d, want 1 (cache hit)", mock.GetRequestCount())
	}
}

// TestCacheExpiration tests that expired cache entries are not used.
func TestCacheExpiration(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/stats", testutil.NewJSONResponse(`{"artists": 1, "events": 1}`))

	c := newCachedClient(t, mock.URL(), redisClient, 1*time.Second)
	ctx := context.Background()

	// First request - cache entry with 1s TTL
	c.GetStats(ctx)

	time.Sleep(100 * time.Millisecond)

	// Verify it's cached
	cacheKey := cache.Key{Endpoint: "/stats"}
	entry, err := c.Cache().Get(ctx, cacheKey)
	if err != nil {
		t.Fatalf("Cache lookup failed: %v", err)
	}
	if entry.IsExpired() {
		t.Error("Entry should not be expired yet")
	}

	// Wait for expiration
	time.Sleep(2 * time.Second)

	if _, err := c.Cache().Get(ctx, cacheKey); err != cache.ErrCacheMiss {
		t.Errorf("Expected cache miss after expiration, got: %v", err)
	}

	// Next request should hit the upstream again
	c.GetStats(ctx)
	if mock.GetRequestCount() < 2 {
		t.Errorf("Upstream requests = %d, want >= 2 (cache expired)", mock.GetRequestCount())
	}
}

// TestFetchAllServedFromCache tests that a repeated fetch-all enumeration
// replays entirely from cached pages.
func TestFetchAllServedFromCache(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI()
	defer mock.Close()

	// Fewer records than the first probe size: one request resolves the
	// full set.
	mock.SetHandler("/artists/top", testutil.NewPagedListHandler("artist", testutil.PagedListOptions{
		Total: 120,
	}))

	c := newCachedClient(t, mock.URL(), redisClient, 60*time.Second)
	ctx := context.Background()

	artists1 := c.GetAllArtists(ctx)
	if len(artists1) != 120 {
		t.Fatalf("First fetch-all = %d artists, want 120", len(artists1))
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("After fetch 1: upstream requests = %d, want 1", mock.GetRequestCount())
	}

	time.Sleep(100 * time.Millisecond)

	artists2 := c.GetAllArtists(ctx)
	if len(artists2) != 120 {
		t.Fatalf("Second fetch-all = %d artists, want 120", len(artists2))
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("After fetch 2: upstream requests = %d, want 1 (served from cache)", mock.GetRequestCount())
	}
}

// TestCacheOutageDegradesToDirectRequests tests that losing Redis mid-flight
// does not break the client: requests bypass the cache and still succeed.
func TestCacheOutageDegradesToDirectRequests(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/stats", testutil.NewJSONResponse(`{"artists": 3, "events": 2}`))

	c := newCachedClient(t, mock.URL(), redisClient, 60*time.Second)
	ctx := context.Background()

	c.GetStats(ctx)
	if mock.GetRequestCount() != 1 {
		t.Fatalf("Upstream requests = %d, want 1", mock.GetRequestCount())
	}

	// Simulate a Redis outage
	redisClient.Close()

	stats := c.GetStats(ctx)
	if stats.Artists != 3 {
		t.Errorf("Stats.Artists = %d, want 3 (direct request despite cache outage)", stats.Artists)
	}
	if mock.GetRequestCount() != 2 {
		t.Errorf("Upstream requests = %d, want 2 (cache bypassed)", mock.GetRequestCount())
	}
}
