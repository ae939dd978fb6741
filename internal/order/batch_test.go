package order_test

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginzalimited/orderdesk/internal/order"
)

func resolvedItem(t *testing.T, name string, qty, rate string) order.Item {
	t.Helper()
	d := validDraft()
	d.ItemName = name
	d.Quantity = qty
	d.Rate = rate
	it, err := d.Resolve("")
	require.NoError(t, err)
	return it
}

func TestBatch_CommitAppends(t *testing.T) {
	b := order.NewBatch()

	first, updated := b.Commit(resolvedItem(t, "Blue Tape", "5", "100"))
	assert.False(t, updated)
	second, updated := b.Commit(resolvedItem(t, "Red Elastic", "2", "50"))
	assert.False(t, updated)

	assert.Equal(t, 2, b.Len())
	items := b.Items()
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, 600.0, b.Subtotal())
}

func TestBatch_EditReplacesInPlace(t *testing.T) {
	b := order.NewBatch()
	b.Commit(resolvedItem(t, "First", "1", "10"))
	target, _ := b.Commit(resolvedItem(t, "Second", "2", "20"))
	b.Commit(resolvedItem(t, "Third", "3", "30"))

	loaded, ok := b.BeginEdit(target.ID)
	require.True(t, ok)
	assert.Equal(t, "Second", loaded.ItemName)
	assert.Equal(t, target.ID, b.EditingID())

	replacement := resolvedItem(t, "Second Revised", "4", "25")
	committed, updated := b.Commit(replacement)
	assert.True(t, updated)
	assert.Equal(t, target.ID, committed.ID, "edited entry keeps its identifier")

	assert.Equal(t, 3, b.Len())
	items := b.Items()
	assert.Equal(t, "First", items[0].ItemName)
	assert.Equal(t, "Second Revised", items[1].ItemName)
	assert.Equal(t, "Third", items[2].ItemName)
	assert.Equal(t, uuid.Nil, b.EditingID(), "edit mode clears after commit")
}

func TestBatch_CommitAfterEditedItemRemoved(t *testing.T) {
	b := order.NewBatch()
	target, _ := b.Commit(resolvedItem(t, "Only", "1", "10"))

	_, ok := b.BeginEdit(target.ID)
	require.True(t, ok)
	require.True(t, b.Remove(target.ID))
	assert.Equal(t, uuid.Nil, b.EditingID(), "removing the edited item leaves edit mode")

	_, updated := b.Commit(resolvedItem(t, "Fresh", "1", "10"))
	assert.False(t, updated)
	assert.Equal(t, 1, b.Len())
}

func TestBatch_Remove(t *testing.T) {
	b := order.NewBatch()
	first, _ := b.Commit(resolvedItem(t, "First", "1", "10"))
	second, _ := b.Commit(resolvedItem(t, "Second", "2", "20"))

	assert.True(t, b.Remove(first.ID))
	assert.False(t, b.Remove(first.ID), "second removal is a no-op")
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, second.ID, b.Items()[0].ID)
}

func TestBatch_Clear(t *testing.T) {
	b := order.NewBatch()
	b.Commit(resolvedItem(t, "First", "1", "10"))
	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0.0, b.Subtotal())
}

func TestBatch_Restore(t *testing.T) {
	b := order.NewBatch()
	items := []order.Item{resolvedItem(t, "A", "1", "10"), resolvedItem(t, "B", "2", "20")}
	b.Restore(items)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, items[0].ID, b.Items()[0].ID)
}
