package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gigboard/gigboard-client/pkg/api"
	"github.com/gigboard/gigboard-client/pkg/pagination"
	"github.com/gigboard/gigboard-client/pkg/urlutil"
)

// defaultTopLimit is the page size used when the caller passes no limit.
const defaultTopLimit = 10

// sanitizeArtists normalizes the external URLs of server-sourced records
// in place. Fallback data is trusted and skips this.
func sanitizeArtists(items []api.Artist) []api.Artist {
	for i := range items {
		items[i].ImageURL = urlutil.NormalizeExternalURL(items[i].ImageURL)
		items[i].URL = urlutil.NormalizeExternalURL(items[i].URL)
	}
	return items
}

// GetAllArtists retrieves the full artist list using the fetch-all
// enumeration strategy. It never fails: when enumeration cannot complete
// at all, the built-in fallback dataset is returned.
func (c *Client) GetAllArtists(ctx context.Context) []api.Artist {
	enum := pagination.NewEnumerator(
		func(ctx context.Context, params url.Values) ([]api.Artist, error) {
			var items []api.Artist
			if err := c.getJSON(ctx, "/artists/top", params, &items); err != nil {
				return nil, err
			}
			return items, nil
		},
		func(a api.Artist) string { return a.ID },
		c.config.Pagination,
		c.logger,
	)

	items, err := enum.FetchAll(ctx)
	if err != nil {
		fallbacksTotal.WithLabelValues("artists_all").Inc()
		c.logger.Warn().Err(err).Msg("Artist enumeration failed, using fallback dataset")
		return api.FallbackArtists()
	}
	return sanitizeArtists(items)
}

// GetTopArtists retrieves up to limit artists in one request, falling back
// to a prefix of the built-in dataset on failure.
func (c *Client) GetTopArtists(ctx context.Context, limit int) []api.Artist {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	var items []api.Artist
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.getJSON(ctx, "/artists/top", query, &items); err != nil {
		fallbacksTotal.WithLabelValues("artists_top").Inc()
		c.logger.Warn().Err(err).Msg("Top artists unavailable, using fallback dataset")
		fb := api.FallbackArtists()
		if len(fb) > limit {
			fb = fb[:limit]
		}
		return fb
	}
	return sanitizeArtists(items)
}

// SearchArtists queries the artist search endpoint, substituting a
// client-side filter over the fallback dataset on failure.
func (c *Client) SearchArtists(ctx context.Context, query string) []api.Artist {
	var items []api.Artist
	if err := c.getJSON(ctx, "/artists/search", url.Values{"q": {query}}, &items); err != nil {
		fallbacksTotal.WithLabelValues("artists_search").Inc()
		c.logger.Warn().Err(err).Str("query", query).Msg("Artist search unavailable, filtering fallback dataset")
		return api.FilterArtists(query)
	}
	return sanitizeArtists(items)
}

// GetArtistByID retrieves a single artist. On request failure the fallback
// dataset is consulted; an ID absent from both yields a not-found error.
func (c *Client) GetArtistByID(ctx context.Context, id string) (*api.Artist, error) {
	var a api.Artist
	err := c.getJSON(ctx, "/artists/"+url.PathEscape(id), nil, &a)
	if err == nil {
		a.ImageURL = urlutil.NormalizeExternalURL(a.ImageURL)
		a.URL = urlutil.NormalizeExternalURL(a.URL)
		return &a, nil
	}

	fallbacksTotal.WithLabelValues("artist_by_id").Inc()
	c.logger.Warn().Err(err).Str("artist_id", id).Msg("Artist lookup failed, consulting fallback dataset")

	if fb := api.FindArtist(id); fb != nil {
		return fb, nil
	}
	return nil, &RequestError{
		Class:   ErrorClassNotFound,
		Message: fmt.Sprintf("artist %s not found", id),
		Err:     ErrNotFound,
	}
}
