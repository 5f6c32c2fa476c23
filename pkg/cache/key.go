package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached API response.
type Key struct {
	// Endpoint is the API path (e.g. "/artists/top").
	Endpoint string

	// QueryParams are the request query parameters.
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: gigboard:endpoint:param1=val1:param2=val2
//
// Example:
//
//	gigboard:artists/top:limit=200:offset=200
func (k Key) String() string {
	parts := []string{"gigboard"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Sorted for determinism.
	if len(k.QueryParams) > 0 {
		keys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
