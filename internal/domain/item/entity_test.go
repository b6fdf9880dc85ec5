//go:build unit

package item_test

import (
	"testing"
	"time"

	"ec-checkout/internal/domain/item"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(stock, soldCount int64) *item.Item {
	return item.ReconstructItem(uuid.New(), "Tシャツ", "items/tshirt.png", 1000, stock, soldCount, time.Now())
}

func TestItemReserve(t *testing.T) {
	t.Run("moves stock to sold count", func(t *testing.T) {
		it := newItem(10, 5)
		require.NoError(t, it.Reserve(2))
		assert.Equal(t, int64(8), it.Stock())
		assert.Equal(t, int64(7), it.SoldCount())
	})

	t.Run("fails when stock is short", func(t *testing.T) {
		it := newItem(1, 0)
		err := it.Reserve(2)
		assert.ErrorIs(t, err, item.ErrInsufficientStock)
		assert.Equal(t, int64(1), it.Stock())
		assert.Equal(t, int64(0), it.SoldCount())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		it := newItem(10, 0)
		assert.ErrorIs(t, it.Reserve(0), item.ErrInvalidQuantity)
		assert.ErrorIs(t, it.Reserve(-1), item.ErrInvalidQuantity)
	})
}

func TestItemRelease(t *testing.T) {
	t.Run("reverses a reservation", func(t *testing.T) {
		it := newItem(10, 5)
		require.NoError(t, it.Reserve(3))
		require.NoError(t, it.Release(3))
		assert.Equal(t, int64(10), it.Stock())
		assert.Equal(t, int64(5), it.SoldCount())
	})

	t.Run("fails when release exceeds sold count", func(t *testing.T) {
		it := newItem(10, 1)
		assert.ErrorIs(t, it.Release(2), item.ErrExcessiveRelease)
	})
}

func TestItemStockConservation(t *testing.T) {
	it := newItem(10, 5)
	before := it.Stock() + it.SoldCount()

	require.NoError(t, it.Reserve(4))
	assert.Equal(t, before, it.Stock()+it.SoldCount())

	require.NoError(t, it.Release(4))
	assert.Equal(t, before, it.Stock()+it.SoldCount())
}
