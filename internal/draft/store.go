// Package draft persists the full in-progress order so a session can be
// recovered after an interruption.
package draft

import (
	"time"

	"github.com/ginzalimited/orderdesk/internal/order"
)

// Snapshot is the serialized union of everything a drafting session
// needs to resume: order context, the item under composition, the
// committed batch and the pending catalog search text.
type Snapshot struct {
	Context     order.Context   `json:"context"`
	CurrentItem order.ItemDraft `json:"current_item"`
	Items       []order.Item    `json:"items"`
	ItemSearch  string          `json:"item_search"`
}

// Store holds one snapshot under a single well-known slot with
// last-writer-wins semantics. Save is called after every mutation and
// must never take the session down; Load is read once at engine start
// and fails open to an empty draft.
type Store interface {
	Save(snap *Snapshot) error
	// Load returns nil with no error when nothing is stored or the
	// stored bytes are malformed.
	Load() (*Snapshot, error)
	Clear() error
	// LastSaved reports when the last successful Save completed; the
	// zero time when nothing has been saved yet.
	LastSaved() time.Time
}
