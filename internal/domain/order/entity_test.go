//go:build unit

package order_test

import (
	"testing"
	"time"

	"ec-checkout/internal/domain/order"
	"ec-checkout/internal/domain/user"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines() []order.Line {
	return []order.Line{
		{PK: uuid.New(), Name: "Tシャツ", Image: "items/tshirt.png", Price: 1000, Quantity: 2},
	}
}

func testShipping() user.Profile {
	return user.Profile{
		Name:       "山田太郎",
		Zipcode:    "150-0001",
		Prefecture: "東京都",
		City:       "渋谷区",
		Address1:   "神宮前1-2-3",
	}
}

func TestNewOrder(t *testing.T) {
	now := time.Now()

	t.Run("created unconfirmed", func(t *testing.T) {
		lines := testLines()
		o, err := order.NewOrder(uuid.New(), lines, testShipping(), 2000, 2200, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, o.ID())
		assert.False(t, o.IsConfirmed())
		assert.Equal(t, int64(2000), o.Amount())
		assert.Equal(t, int64(2200), o.TaxIncluded())
		assert.Empty(t, cmp.Diff(lines, o.Lines()))
		assert.Empty(t, cmp.Diff(testShipping(), o.Shipping()))
	})

	t.Run("rejects empty lines", func(t *testing.T) {
		_, err := order.NewOrder(uuid.New(), nil, testShipping(), 0, 0, now)
		assert.ErrorIs(t, err, order.ErrNoLines)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := order.NewOrder(uuid.New(), testLines(), testShipping(), -1, 0, now)
		assert.ErrorIs(t, err, order.ErrNegativeAmount)

		_, err = order.NewOrder(uuid.New(), testLines(), testShipping(), 0, -1, now)
		assert.ErrorIs(t, err, order.ErrNegativeAmount)
	})
}

func TestOrderConfirm(t *testing.T) {
	o, err := order.NewOrder(uuid.New(), testLines(), testShipping(), 2000, 2200, time.Now())
	require.NoError(t, err)

	o.Confirm()
	assert.True(t, o.IsConfirmed())

	// repeated confirmation stays confirmed
	o.Confirm()
	assert.True(t, o.IsConfirmed())
}
