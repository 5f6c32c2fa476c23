package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gigboard/gigboard-client/internal/testutil"
	"github.com/gigboard/gigboard-client/pkg/api"
	"github.com/gigboard/gigboard-client/pkg/client"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newProxyClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()

	c, err := client.New(client.DefaultConfig(baseURL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return c
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func TestReadyEndpoint(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		mock := testutil.NewMockAPI()
		defer mock.Close()

		handler := readyHandler(newProxyClient(t, mock.URL()))

		req := httptest.NewRequest("GET", "/ready", nil)
		w := httptest.NewRecorder()
		handler(w, req)

		if w.Result().StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Result().StatusCode)
		}
	})

	t.Run("not_ready_upstream_down", func(t *testing.T) {
		handler := readyHandler(newProxyClient(t, "http://127.0.0.1:1"))

		req := httptest.NewRequest("GET", "/ready", nil)
		w := httptest.NewRecorder()
		handler(w, req)

		if w.Result().StatusCode != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Result().StatusCode)
		}
	})
}

func TestArtistsEndpoint_FallbackWhenUpstreamDown(t *testing.T) {
	handler := artistsHandler(newProxyClient(t, "http://127.0.0.1:1"))

	req := httptest.NewRequest("GET", "/api/artists", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 even with upstream down, got %d", resp.StatusCode)
	}

	var artists []api.Artist
	if err := json.NewDecoder(resp.Body).Decode(&artists); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(artists) != 4 {
		t.Errorf("Artists = %d, want the 4 fallback artists", len(artists))
	}
}

func TestArtistsEndpoint_WithLimit(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetHandler("/artists/top", testutil.NewPagedListHandler("artist", testutil.PagedListOptions{
		Total: 100,
	}))

	handler := artistsHandler(newProxyClient(t, mock.URL()))

	req := httptest.NewRequest("GET", "/api/artists?limit=5", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	var artists []api.Artist
	if err := json.NewDecoder(w.Result().Body).Decode(&artists); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(artists) != 5 {
		t.Errorf("Artists = %d, want 5", len(artists))
	}
	if got := mock.GetRequestCount(); got != 1 {
		t.Errorf("Upstream requests = %d, want 1 (limit bypasses enumeration)", got)
	}
}

func TestSearchEndpoint(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/events/search", testutil.NewJSONResponse(
		`[{"id": "event-9", "name": "Warehouse Night", "city": "Leipzig"}]`))

	handler := eventSearchHandler(newProxyClient(t, mock.URL()))

	req := httptest.NewRequest("GET", "/api/events/search?q=warehouse", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	var events []api.Event
	if err := json.NewDecoder(w.Result().Body).Decode(&events); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(events) != 1 || events[0].City != "Leipzig" {
		t.Errorf("Events = %+v, want the upstream search result", events)
	}
}

func TestStatsEndpoint(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/stats", testutil.NewJSONResponse(`{"artists": 12, "events": 3}`))

	handler := statsHandler(newProxyClient(t, mock.URL()))

	req := httptest.NewRequest("GET", "/api/stats", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	var stats api.Stats
	if err := json.NewDecoder(w.Result().Body).Decode(&stats); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if stats.Artists != 12 || stats.Events != 3 {
		t.Errorf("Stats = %+v, want {Artists:12 Events:3}", stats)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	// Make one request through the client so the promauto metrics carry
	// at least one sample.
	mock := testutil.NewMockAPI()
	defer mock.Close()
	newProxyClient(t, mock.URL()).CheckHealth(context.Background())

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler := promhttp.Handler()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	bodyStr := string(body)
	if !strings.Contains(bodyStr, "# HELP") || !strings.Contains(bodyStr, "# TYPE") {
		t.Error("Expected Prometheus format metrics output")
	}
	if !strings.Contains(bodyStr, "gigboard_requests_total") {
		t.Error("Expected metrics output to contain gigboard_requests_total")
	}
}

func TestIntParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"limit=25", 25},
		{"limit=0", 0},
		{"limit=-5", 0},
		{"limit=abc", 0},
		{"", 0},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/api/artists?"+tt.query, nil)
		if got := intParam(req, "limit"); got != tt.want {
			t.Errorf("intParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
