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

// sanitizeEvents normalizes the external URLs of server-sourced records
// in place. Fallback data is trusted and skips this.
func sanitizeEvents(items []api.Event) []api.Event {
	for i := range items {
		items[i].TicketURL = urlutil.NormalizeExternalURL(items[i].TicketURL)
	}
	return items
}

// GetAllEvents retrieves the full event list using the fetch-all
// enumeration strategy. It never fails: when enumeration cannot complete
// at all, the built-in fallback dataset is returned.
func (c *Client) GetAllEvents(ctx context.Context) []api.Event {
	enum := pagination.NewEnumerator(
		func(ctx context.Context, params url.Values) ([]api.Event, error) {
			var items []api.Event
			if err := c.getJSON(ctx, "/events/top", params, &items); err != nil {
				return nil, err
			}
			return items, nil
		},
		func(e api.Event) string { return e.ID },
		c.config.Pagination,
		c.logger,
	)

	items, err := enum.FetchAll(ctx)
	if err != nil {
		fallbacksTotal.WithLabelValues("events_all").Inc()
		c.logger.Warn().Err(err).Msg("Event enumeration failed, using fallback dataset")
		return api.FallbackEvents()
	}
	return sanitizeEvents(items)
}

// GetTopEvents retrieves up to limit events in one request, falling back
// to a prefix of the built-in dataset on failure.
func (c *Client) GetTopEvents(ctx context.Context, limit int) []api.Event {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	var items []api.Event
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.getJSON(ctx, "/events/top", query, &items); err != nil {
		fallbacksTotal.WithLabelValues("events_top").Inc()
		c.logger.Warn().Err(err).Msg("Top events unavailable, using fallback dataset")
		fb := api.FallbackEvents()
		if len(fb) > limit {
			fb = fb[:limit]
		}
		return fb
	}
	return sanitizeEvents(items)
}

// SearchEvents queries the event search endpoint, substituting a
// client-side filter over the fallback dataset on failure.
func (c *Client) SearchEvents(ctx context.Context, query string) []api.Event {
	var items []api.Event
	if err := c.getJSON(ctx, "/events/search", url.Values{"q": {query}}, &items); err != nil {
		fallbacksTotal.WithLabelValues("events_search").Inc()
		c.logger.Warn().Err(err).Str("query", query).Msg("Event search unavailable, filtering fallback dataset")
		return api.FilterEvents(query)
	}
	return sanitizeEvents(items)
}

// GetEventByID retrieves a single event. On request failure the fallback
// dataset is consulted; an ID absent from both yields a not-found error.
func (c *Client) GetEventByID(ctx context.Context, id string) (*api.Event, error) {
	var e api.Event
	err := c.getJSON(ctx, "/events/"+url.PathEscape(id), nil, &e)
	if err == nil {
		e.TicketURL = urlutil.NormalizeExternalURL(e.TicketURL)
		return &e, nil
	}

	fallbacksTotal.WithLabelValues("event_by_id").Inc()
	c.logger.Warn().Err(err).Str("event_id", id).Msg("Event lookup failed, consulting fallback dataset")

	if fb := api.FindEvent(id); fb != nil {
		return fb, nil
	}
	return nil, &RequestError{
		Class:   ErrorClassNotFound,
		Message: fmt.Sprintf("event %s not found", id),
		Err:     ErrNotFound,
	}
}
