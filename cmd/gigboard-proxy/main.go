package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gigboard/gigboard-client/pkg/api"
	"github.com/gigboard/gigboard-client/pkg/client"
	"github.com/gigboard/gigboard-client/pkg/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Configuration from environment
	apiURL := getEnv("API_URL", "http://localhost:3001")
	port := getEnv("PORT", "8080")
	userAgent := getEnv("USER_AGENT", "gigboard-proxy/0.1.0")

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "false") == "true",
		Output: os.Stderr,
	}).With().Str("component", "gigboard-proxy").Logger()

	cfg := client.DefaultConfig(apiURL)
	cfg.UserAgent = userAgent

	// Optional response cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: redisURL,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Str("redis", redisURL).Msg("Failed to connect to Redis")
		}
		cfg.Redis = redisClient
		logger.Info().Str("redis", redisURL).Msg("Response caching enabled")
	}

	gigboard, err := client.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Gigboard client")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", readyHandler(gigboard))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/health", apiHealthHandler(gigboard))
	mux.HandleFunc("/api/artists", artistsHandler(gigboard))
	mux.HandleFunc("/api/artists/search", artistSearchHandler(gigboard))
	mux.HandleFunc("/api/events", eventsHandler(gigboard))
	mux.HandleFunc("/api/events/search", eventSearchHandler(gigboard))
	mux.HandleFunc("/api/stats", statsHandler(gigboard))

	addr := ":" + port
	logger.Info().
		Str("addr", addr).
		Str("api_url", apiURL).
		Str("user_agent", userAgent).
		Msg("Starting Gigboard proxy server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

// healthHandler reports proxy liveness.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler reports upstream connectivity via the health probe.
func readyHandler(c *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		h := c.CheckHealth(ctx)
		if h.Status != api.StatusConnected {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(h.Message))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}

// apiHealthHandler forwards the connectivity status as JSON for UI badges.
func apiHealthHandler(c *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, c.CheckHealth(r.Context()))
	}
}

func artistsHandler(c *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if limit := intParam(r, "limit"); limit > 0 {
			writeJSON(w, c.GetTopArtists(r.Context(), limit))
			return
		}
		writeJSON(w, c.GetAllArtists(r.Context()))
	}
}

func artistSearchHandler(c *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, c.SearchArtists(r.Context(), r.URL.Query().Get("q")))
	}
}

func eventsHandler(c *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if limit := intParam(r, "limit"); limit > 0 {
			writeJSON(w, c.GetTopEvents(r.Context(), limit))
			return
		}
		writeJSON(w, c.GetAllEvents(r.Context()))
	}
}

func eventSearchHandler(c *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, c.SearchEvents(r.Context(), r.URL.Query().Get("q")))
	}
}

func statsHandler(c *client.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, c.GetStats(r.Context()))
	}
}

// writeJSON encodes v as the response body. The client layer never fails,
// so handlers have no error branch to render.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func intParam(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
