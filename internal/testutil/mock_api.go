// Package testutil provides testing utilities for the Gigboard API client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock API endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockAPI is a configurable mock Gigboard API server for testing.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount int
	Requests     []*http.Request
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.Requests = append(mock.Requests, r.Clone(r.Context()))
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking state.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.Requests = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// defaultHandler answers the health endpoint and 404s everything else.
func (m *MockAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if r.URL.Path == "/health" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "message": "mock API healthy"}`))
		return
	}

	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error": "not found"}`))
}

// PagedListOptions controls the pagination contract of a mock list
// endpoint.
type PagedListOptions struct {
	// Total is the number of records the endpoint holds.
	Total int

	// FailLimitsAbove makes requests with a limit above this value fail
	// with 500 (0 = never fail).
	FailLimitsAbove int

	// HonorOffset makes the endpoint honor the offset parameter.
	HonorOffset bool

	// HonorPage selects how the page parameter is interpreted:
	// "" (ignored), "zero" (zero-based) or "one" (one-based).
	HonorPage string
}

// NewPagedListHandler returns a handler serving generated records named
// "<prefix>-NNNN" under the configured pagination contract. It drives
// fetch-all enumeration tests at the HTTP level.
func NewPagedListHandler(prefix string, opts PagedListOptions) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		if limit <= 0 {
			limit = 10
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if opts.FailLimitsAbove > 0 && limit > opts.FailLimitsAbove {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "internal server error"}`))
			return
		}

		start := 0
		if off := q.Get("offset"); off != "" && opts.HonorOffset {
			start, _ = strconv.Atoi(off)
		}
		if pg := q.Get("page"); pg != "" {
			p, _ := strconv.Atoi(pg)
			switch opts.HonorPage {
			case "zero":
				start = p * limit
			case "one":
				start = (p - 1) * limit
			}
		}

		if start >= opts.Total {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[]`))
			return
		}

		end := start + limit
		if end > opts.Total {
			end = opts.Total
		}

		type record struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		records := make([]record, 0, end-start)
		for i := start; i < end; i++ {
			records = append(records, record{
				ID:   fmt.Sprintf("%s-%04d", prefix, i),
				Name: fmt.Sprintf("%s %d", prefix, i),
			})
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(records)
	}
}

// NewJSONResponse creates a standard 200 OK JSON response.
func NewJSONResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}
