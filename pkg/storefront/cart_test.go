package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T) (*Cart, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	cart, err := NewCart(storage)
	require.NoError(t, err)
	return cart, storage
}

func TestAddIncrementsExistingEntry(t *testing.T) {
	cart, _ := newTestCart(t)

	item := Item{ID: 1, Name: "Мангал", Price: 100}
	require.NoError(t, cart.Add(item))
	require.NoError(t, cart.Add(item))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestTotalAndQuantityFloor(t *testing.T) {
	cart, _ := newTestCart(t)

	require.NoError(t, cart.Add(Item{ID: 1, Name: "Мангал", Price: 100}))
	require.NoError(t, cart.ChangeQuantity(1, 1))
	require.NoError(t, cart.Add(Item{ID: 2, Name: "Шампур", Price: 50}))

	assert.Equal(t, 250.0, cart.Total())

	// Decrement far past the floor: quantity stops at 1, entry stays.
	require.NoError(t, cart.ChangeQuantity(1, -5))

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 150.0, cart.Total())
}

func TestRemoveDeletesUnconditionally(t *testing.T) {
	cart, _ := newTestCart(t)

	require.NoError(t, cart.Add(Item{ID: 1, Name: "Мангал", Price: 100}))
	require.NoError(t, cart.Remove(1))

	assert.Empty(t, cart.Items())
	assert.Zero(t, cart.Total())
}

func TestCartSurvivesReload(t *testing.T) {
	cart, storage := newTestCart(t)

	require.NoError(t, cart.Add(Item{ID: 1, Name: "Мангал", Price: 100}))
	require.NoError(t, cart.ChangeQuantity(1, 2))

	reloaded, err := NewCart(storage)
	require.NoError(t, err)

	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 300.0, reloaded.Total())
}

func TestClearEmptiesCart(t *testing.T) {
	cart, storage := newTestCart(t)

	require.NoError(t, cart.Add(Item{ID: 1, Name: "Мангал", Price: 100}))
	require.NoError(t, cart.Clear())

	assert.Empty(t, cart.Items())

	reloaded, err := NewCart(storage)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items())
}
