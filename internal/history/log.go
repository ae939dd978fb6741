// Package history keeps a local append-only log of submitted orders for
// offline audit. The engine only ever appends; the log is never read
// back into live drafting state.
package history

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"github.com/ginzalimited/orderdesk/internal/order"
)

// Log stores one record per submitted order, keyed so that forward
// iteration yields the most recent order first.
type Log struct {
	db *pebble.DB
}

func Open(dir string) (*Log, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &Log{db: d}, nil
}

func (l *Log) Close() error { return l.db.Close() }

// key inverts the timestamp so lexicographic order is newest-first.
func key(o order.Order) []byte {
	return []byte(fmt.Sprintf("%020d:%s", math.MaxInt64-o.Timestamp, o.ID))
}

func (l *Log) Append(o order.Order) error {
	bytes, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", o.ID, err)
	}
	if err := l.db.Set(key(o), bytes, pebble.Sync); err != nil {
		return fmt.Errorf("append order %s: %w", o.ID, err)
	}
	return nil
}

// List returns up to limit orders, most recent first. limit <= 0 means
// no limit.
func (l *Log) List(limit int) ([]order.Order, error) {
	it, err := l.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("history iterator: %w", err)
	}
	defer it.Close()

	var out []order.Order
	for it.First(); it.Valid(); it.Next() {
		if limit > 0 && len(out) >= limit {
			break
		}
		var o order.Order
		if err := json.Unmarshal(it.Value(), &o); err != nil {
			return nil, fmt.Errorf("decode history entry %q: %w", it.Key(), err)
		}
		out = append(out, o)
	}
	return out, nil
}
