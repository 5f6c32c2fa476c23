package pagination

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Config holds enumerator configuration.
type Config struct {
	// ProbeSizes is the descending sequence of page sizes tried during the
	// direct-limit probe.
	ProbeSizes []int

	// MaxItems is the hard cap on the collected set. Enumeration stops
	// immediately once reached.
	MaxItems int

	// MaxPages is the maximum number of additional pages fetched per
	// candidate scheme during discovery.
	MaxPages int

	// ReferenceSizeCap bounds the reference page size derived from the
	// base page during discovery.
	ReferenceSizeCap int
}

// DefaultConfig returns the standard enumeration parameters.
func DefaultConfig() Config {
	return Config{
		ProbeSizes:       []int{500, 400, 300, 250, 200},
		MaxItems:         1000,
		MaxPages:         9,
		ReferenceSizeCap: 200,
	}
}

// FetchFunc fetches one page of items using the given query parameters.
type FetchFunc[T any] func(ctx context.Context, params url.Values) ([]T, error)

// KeyFunc extracts the identity of an item. Items sharing a key are
// considered duplicates; the first occurrence wins.
type KeyFunc[T any] func(T) string

// Enumerator retrieves the full result set of a paginated endpoint.
// Each FetchAll call owns its own collected set; an Enumerator is safe
// for reuse across sequential calls.
type Enumerator[T any] struct {
	fetch      FetchFunc[T]
	key        KeyFunc[T]
	config     Config
	strategies []Strategy
	logger     zerolog.Logger
}

// NewEnumerator creates an enumerator over the given page fetcher.
func NewEnumerator[T any](fetch FetchFunc[T], key KeyFunc[T], config Config, logger zerolog.Logger) *Enumerator[T] {
	if len(config.ProbeSizes) == 0 {
		config.ProbeSizes = DefaultConfig().ProbeSizes
	}
	if config.MaxItems <= 0 {
		config.MaxItems = DefaultConfig().MaxItems
	}
	if config.MaxPages <= 0 {
		config.MaxPages = DefaultConfig().MaxPages
	}
	if config.ReferenceSizeCap <= 0 {
		config.ReferenceSizeCap = DefaultConfig().ReferenceSizeCap
	}

	return &Enumerator[T]{
		fetch:      fetch,
		key:        key,
		config:     config,
		strategies: DefaultStrategies(),
		logger:     logger,
	}
}

// FetchAll retrieves all reachable items in first-seen order, each identity
// exactly once, never exceeding Config.MaxItems. It returns an error only
// when every direct-limit probe fails; partial discovery failures degrade
// to whatever has been collected so far.
func (e *Enumerator[T]) FetchAll(ctx context.Context) ([]T, error) {
	start := time.Now()

	base, done, err := e.probeLimits(ctx)
	if err != nil {
		return nil, err
	}
	if done {
		e.logger.Debug().
			Int("items", len(base)).
			Dur("duration", time.Since(start)).
			Msg("Complete result set from direct-limit probe")
		return base, nil
	}

	col := newCollector(e.key, e.config.MaxItems)
	col.add(base)

	if col.len() >= e.config.MaxItems {
		return col.items(), nil
	}

	pageSize := e.referencePageSize(len(base))

	for _, s := range e.strategies {
		progressed := e.runStrategy(ctx, s, col, pageSize)
		if progressed {
			e.logger.Debug().
				Str("strategy", s.Name).
				Int("items", col.len()).
				Msg("Pagination scheme adopted")
			break
		}
	}

	e.logger.Debug().
		Int("items", col.len()).
		Dur("duration", time.Since(start)).
		Msg("Enumeration complete")

	return col.items(), nil
}

// probeLimits runs the direct-limit probe. It returns (items, true, nil)
// when a short page proves the result set is complete, (base, false, nil)
// when a full page suggests truncation, and an error when all sizes fail.
func (e *Enumerator[T]) probeLimits(ctx context.Context) ([]T, bool, error) {
	var lastErr error

	for _, size := range e.config.ProbeSizes {
		items, err := e.fetch(ctx, url.Values{"limit": {strconv.Itoa(size)}})
		if err != nil {
			e.logger.Debug().
				Err(err).
				Int("limit", size).
				Msg("Limit probe failed, trying smaller size")
			lastErr = err
			continue
		}

		if len(items) < size {
			// Server returned everything it has.
			return items, true, nil
		}

		// Exactly the requested size: assume truncation and switch to
		// pagination discovery with this response as the base page.
		return items, false, nil
	}

	return nil, false, fmt.Errorf("all limit probes failed: %w", lastErr)
}

// referencePageSize derives the page size used during discovery from the
// base page length, capped and defaulting to the cap when unusable.
func (e *Enumerator[T]) referencePageSize(baseLen int) int {
	if baseLen <= 0 || baseLen > e.config.ReferenceSizeCap {
		return e.config.ReferenceSizeCap
	}
	return baseLen
}

// runStrategy fetches up to MaxPages additional pages under one scheme,
// merging into col. It reports whether the scheme contributed any new items.
func (e *Enumerator[T]) runStrategy(ctx context.Context, s Strategy, col *collector[T], pageSize int) bool {
	progressed := false

	for page := 1; page <= e.config.MaxPages; page++ {
		items, err := e.fetch(ctx, s.Params(page, pageSize))
		if err != nil {
			// No partial-failure retry: a page error abandons the scheme.
			e.logger.Debug().
				Err(err).
				Str("strategy", s.Name).
				Int("page", page).
				Msg("Page fetch failed, abandoning scheme")
			break
		}

		if len(items) == 0 {
			break
		}

		added := col.add(items)
		if added == 0 {
			// Zero growth: the server is ignoring the paging parameter
			// and repeating page 1.
			break
		}
		progressed = true

		if len(items) < pageSize {
			// Short page: that was the final page.
			break
		}
		if col.len() >= e.config.MaxItems {
			break
		}
	}

	return progressed
}
