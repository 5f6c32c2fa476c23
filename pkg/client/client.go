// Package client provides the Gigboard API HTTP client with bounded
// single-attempt requests, optional response caching, and deterministic
// fallback behavior.
//
// Every public fetch method except the by-id lookups catches all errors
// internally and substitutes a static fallback value: the caller always
// gets something to render, and backend outages surface only through the
// connectivity status reported by CheckHealth.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gigboard/gigboard-client/pkg/api"
	"github.com/gigboard/gigboard-client/pkg/cache"
	"github.com/gigboard/gigboard-client/pkg/pagination"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for Gigboard client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gigboard_requests_total",
		Help: "Total Gigboard API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gigboard_request_duration_seconds",
		Help:    "Gigboard API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gigboard_errors_total",
		Help: "Total Gigboard API errors by class",
	}, []string{"class"})

	fallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gigboard_fallbacks_total",
		Help: "Total fallback-dataset substitutions by operation",
	}, []string{"operation"})
)

// Messages used by the health probe.
const (
	defaultConnectedMessage = "Connected to Gigboard API"
	disconnectedMessage     = "API unreachable"
)

// Client is the Gigboard API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the Gigboard API (e.g. "https://api.gigboard.example.com").
	BaseURL string

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout per request. Timed-out requests are treated identically to
	// network failures.
	Timeout time.Duration

	// Redis client for response caching. Nil disables caching.
	Redis *redis.Client

	// CacheTTL is the fixed lifetime of cached GET payloads.
	CacheTTL time.Duration

	// Pagination configures the fetch-all enumeration strategy.
	Pagination pagination.Config
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		UserAgent:  "gigboard-client/0.1.0",
		Timeout:    5 * time.Second,
		CacheTTL:   60 * time.Second,
		Pagination: pagination.DefaultConfig(),
	}
}

// New creates a new Gigboard client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	logger := log.With().Str("component", "gigboard-client").Logger()

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis)
	}

	return &Client{
		// No cookie jar: credentials are never sent to the API.
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cache:   cacheManager,
		config:  cfg,
		logger:  logger,
	}, nil
}

// getJSON performs one bounded GET request and decodes the JSON response
// into v. No retries at this layer; fallback policy lives in the public
// methods one level up.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, v any) error {
	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	cacheKey := cache.Key{Endpoint: endpoint, QueryParams: query}

	if c.cache != nil {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err == nil {
			c.logger.Debug().Str("endpoint", endpoint).Msg("Cache hit")
			requestsTotal.WithLabelValues(endpoint, "cache").Inc()
			return json.Unmarshal(entry.Data, v)
		}
		if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("url", reqURL).
		Msg("Executing API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return &RequestError{
			Class:   ErrorClassNetwork,
			Message: "request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorsTotal.WithLabelValues(string(ErrorClassHTTP)).Inc()
		c.logger.Debug().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("API request error")
		return &RequestError{
			StatusCode: resp.StatusCode,
			Class:      ErrorClassHTTP,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return &RequestError{
			Class:   ErrorClassNetwork,
			Message: "read response body",
			Err:     err,
		}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, cache.NewEntry(body, c.config.CacheTTL)); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to cache response")
		}
	}

	return nil
}

// CheckHealth probes the API health endpoint once. Any failure maps to a
// disconnected status with a fixed message; no retries.
func (c *Client) CheckHealth(ctx context.Context) api.Health {
	var h api.Health
	if err := c.getJSON(ctx, "/health", nil, &h); err != nil {
		c.logger.Warn().Err(err).Msg("Health check failed")
		return api.Health{Status: api.StatusDisconnected, Message: disconnectedMessage}
	}

	message := h.Message
	if message == "" {
		message = defaultConnectedMessage
	}
	return api.Health{Status: api.StatusConnected, Message: message}
}

// GetStats returns the record counts reported by the API, falling back to
// the built-in dataset counts when the request fails.
func (c *Client) GetStats(ctx context.Context) api.Stats {
	var s api.Stats
	if err := c.getJSON(ctx, "/stats", nil, &s); err != nil {
		fallbacksTotal.WithLabelValues("stats").Inc()
		c.logger.Warn().Err(err).Msg("Stats unavailable, using fallback counts")
		return api.FallbackStats()
	}
	return s
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Cache returns the response cache manager, or nil when caching is disabled.
func (c *Client) Cache() *cache.Manager {
	return c.cache
}
