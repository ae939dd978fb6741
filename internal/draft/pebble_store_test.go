package draft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginzalimited/orderdesk/internal/draft"
	"github.com/ginzalimited/orderdesk/internal/order"
)

func openStore(t *testing.T) *draft.PebbleStore {
	t.Helper()
	s, err := draft.NewPebbleStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestPebbleStore_LoadEmpty(t *testing.T) {
	s := openStore(t)
	snap, err := s.Load()
	assert.NoError(t, err)
	assert.Nil(t, snap)
	assert.True(t, s.LastSaved().IsZero())
}

func TestPebbleStore_SaveLoadRoundTrip(t *testing.T) {
	s := openStore(t)

	d := order.ItemDraft{Category: "CUP", ItemName: "Blue Tape", UOM: "MTR", Quantity: "5", Rate: "100"}
	it, err := d.Resolve("")
	require.NoError(t, err)

	in := &draft.Snapshot{
		Context: order.Context{
			OrderID:          "GNZ-1234-5678",
			Branch:           "Mumbai",
			SalesPerson:      "Amit Korgaonkar",
			CustomerName:     "Acme Textiles",
			CustomerResolved: true,
		},
		CurrentItem: order.ItemDraft{Category: "CUP", UOM: "MTR"},
		Items:       []order.Item{it},
		ItemSearch:  "blue",
	}
	require.NoError(t, s.Save(in))
	assert.False(t, s.LastSaved().IsZero())

	out, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.Context, out.Context)
	assert.Equal(t, in.CurrentItem, out.CurrentItem)
	assert.Equal(t, in.ItemSearch, out.ItemSearch)
	require.Len(t, out.Items, 1)
	assert.Equal(t, it.ID, out.Items[0].ID)
	assert.Equal(t, it.Total, out.Items[0].Total)
}

func TestPebbleStore_SaveOverwrites(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save(&draft.Snapshot{Context: order.Context{Branch: "Surat"}}))
	require.NoError(t, s.Save(&draft.Snapshot{Context: order.Context{Branch: "Delhi"}}))

	out, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Delhi", out.Context.Branch)
}

func TestPebbleStore_Clear(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save(&draft.Snapshot{Context: order.Context{Branch: "Surat"}}))
	require.NoError(t, s.Clear())

	out, err := s.Load()
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestPebbleStore_ClearWithoutSave(t *testing.T) {
	s := openStore(t)
	assert.NoError(t, s.Clear())
}
