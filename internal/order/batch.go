package order

import "github.com/gofrs/uuid"

// Batch is the ordered set of committed line items pending submission.
// Insertion order is display and submission order. At most one item is
// under edit at a time, tracked by its identifier.
type Batch struct {
	items     []Item
	editingID uuid.UUID
}

func NewBatch() *Batch {
	return &Batch{}
}

// Items returns a copy of the batch in insertion order.
func (b *Batch) Items() []Item {
	out := make([]Item, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Batch) Len() int {
	return len(b.items)
}

// Subtotal is the sum of all item totals. Derived, never stored.
func (b *Batch) Subtotal() float64 {
	var sum float64
	for _, it := range b.items {
		sum += it.Total
	}
	return sum
}

// EditingID returns the identifier of the item under edit, or uuid.Nil.
func (b *Batch) EditingID() uuid.UUID {
	return b.editingID
}

// Commit adds the item to the batch. While an item is under edit the
// entry keeps its identifier and position and is replaced in place;
// otherwise the item is appended. Returns the committed item and whether
// an existing entry was updated.
func (b *Batch) Commit(it Item) (Item, bool) {
	if b.editingID != uuid.Nil {
		id := b.editingID
		b.editingID = uuid.Nil
		for i := range b.items {
			if b.items[i].ID == id {
				it.ID = id
				b.items[i] = it
				return it, true
			}
		}
		// The edited entry was removed in the meantime; fall through
		// and append as a new item.
	}
	b.items = append(b.items, it)
	return it, false
}

// BeginEdit marks the item as under edit and returns it so its fields
// can be loaded back into the current draft.
func (b *Batch) BeginEdit(id uuid.UUID) (Item, bool) {
	for _, it := range b.items {
		if it.ID == id {
			b.editingID = id
			return it, true
		}
	}
	return Item{}, false
}

// CancelEdit leaves edit mode without committing.
func (b *Batch) CancelEdit() {
	b.editingID = uuid.Nil
}

// Remove deletes the item with the given identifier.
func (b *Batch) Remove(id uuid.UUID) bool {
	for i, it := range b.items {
		if it.ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			if b.editingID == id {
				b.editingID = uuid.Nil
			}
			return true
		}
	}
	return false
}

// Clear drops all items and leaves edit mode.
func (b *Batch) Clear() {
	b.items = nil
	b.editingID = uuid.Nil
}

// Restore replaces the batch content, used when reloading a draft.
func (b *Batch) Restore(items []Item) {
	b.items = make([]Item, len(items))
	copy(b.items, items)
	b.editingID = uuid.Nil
}
