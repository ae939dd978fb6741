// Package lookup drives debounced incremental searches against a remote
// directory or catalog. Each coordinator owns one search domain and
// guarantees that only the response belonging to the most recently
// dispatched request can reach the caller, regardless of network
// completion order.
package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ginzalimited/orderdesk/internal/metrics"
)

// SearchFunc queries the remote service for one domain. scope narrows
// the search (branch for customers, category for products).
type SearchFunc[T any] func(ctx context.Context, scope, query string) ([]T, error)

// ApplyFunc receives the suggestion list for the latest request. It is
// called outside the coordinator's lock. A nil slice clears suggestions.
type ApplyFunc[T any] func(query string, results []T)

type Coordinator[T any] struct {
	domain string
	delay  time.Duration
	search SearchFunc[T]
	apply  ApplyFunc[T]

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	locked bool
	scope  string
	query  string
	active int
}

func New[T any](domain string, delay time.Duration, search SearchFunc[T], apply ApplyFunc[T]) *Coordinator[T] {
	return &Coordinator[T]{
		domain: domain,
		delay:  delay,
		search: search,
		apply:  apply,
	}
}

// SetQuery records a keystroke. The pending debounce timer is replaced;
// only the query pending when the timer fires is dispatched. Any edit
// clears the locked flag so the field becomes searchable again. An
// empty query clears suggestions without calling the remote service and
// invalidates whatever is still in flight.
func (c *Coordinator[T]) SetQuery(scope, query string) {
	c.mu.Lock()
	c.locked = false
	c.scope = scope
	c.query = query
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if query == "" {
		c.gen++
		c.mu.Unlock()
		c.apply("", nil)
		return
	}
	c.timer = time.AfterFunc(c.delay, c.fire)
	c.mu.Unlock()
}

// Lock suppresses further dispatches after a suggestion was selected.
func (c *Coordinator[T]) Lock() {
	c.mu.Lock()
	c.locked = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.mu.Unlock()
}

// Searching reports whether any request is still outstanding.
func (c *Coordinator[T]) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active > 0
}

func (c *Coordinator[T]) fire() {
	c.mu.Lock()
	if c.locked {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	scope, query := c.scope, c.query
	c.active++
	c.mu.Unlock()

	metrics.LookupQueries.WithLabelValues(c.domain).Inc()
	results, err := c.search(context.Background(), scope, query)
	if err != nil {
		// A remote failure degrades to "no suggestions"; typing is
		// never blocked.
		metrics.LookupFailures.WithLabelValues(c.domain).Inc()
		log.Warn().Err(err).Str("domain", c.domain).Str("query", query).Msg("lookup: search failed")
		results = nil
	}

	c.mu.Lock()
	c.active--
	stale := gen != c.gen || c.locked
	c.mu.Unlock()

	if stale {
		metrics.LookupStaleDiscarded.WithLabelValues(c.domain).Inc()
		return
	}
	c.apply(query, results)
}
