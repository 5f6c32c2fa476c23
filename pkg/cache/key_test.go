package cache

import (
	"net/url"
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{
			name:     "endpoint only",
			key:      Key{Endpoint: "/health"},
			expected: "gigboard:health",
		},
		{
			name: "endpoint with query",
			key: Key{
				Endpoint:    "/artists/top",
				QueryParams: url.Values{"limit": {"200"}},
			},
			expected: "gigboard:artists/top:limit=200",
		},
		{
			name: "query params sorted",
			key: Key{
				Endpoint: "/artists/top",
				QueryParams: url.Values{
					"offset": {"200"},
					"limit":  {"200"},
				},
			},
			expected: "gigboard:artists/top:limit=200:offset=200",
		},
		{
			name:     "empty endpoint",
			key:      Key{},
			expected: "gigboard",
		},
		{
			name: "trailing slash normalized",
			key: Key{
				Endpoint:    "/events/top/",
				QueryParams: url.Values{"limit": {"500"}},
			},
			expected: "gigboard:events/top:limit=500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKeyStringDeterministic(t *testing.T) {
	key := Key{
		Endpoint: "/artists/top",
		QueryParams: url.Values{
			"q":      {"owls"},
			"limit":  {"200"},
			"offset": {"400"},
		},
	}

	first := key.String()
	for i := 0; i < 10; i++ {
		if got := key.String(); got != first {
			t.Fatalf("String() not deterministic: %q vs %q", got, first)
		}
	}
}
