package pagination

// collector accumulates items deduplicated by identity, preserving
// first-seen order and never holding more than max items.
type collector[T any] struct {
	key   KeyFunc[T]
	seen  map[string]struct{}
	order []T
	max   int
}

func newCollector[T any](key KeyFunc[T], max int) *collector[T] {
	return &collector[T]{
		key:  key,
		seen: make(map[string]struct{}),
		max:  max,
	}
}

// add merges items into the collector and returns how many were new.
// Items beyond the cap are dropped.
func (c *collector[T]) add(items []T) int {
	added := 0
	for _, item := range items {
		if len(c.order) >= c.max {
			break
		}
		k := c.key(item)
		if _, dup := c.seen[k]; dup {
			continue
		}
		c.seen[k] = struct{}{}
		c.order = append(c.order, item)
		added++
	}
	return added
}

func (c *collector[T]) len() int {
	return len(c.order)
}

// items materializes the collected set in first-seen order.
func (c *collector[T]) items() []T {
	out := make([]T, len(c.order))
	copy(out, c.order)
	return out
}
