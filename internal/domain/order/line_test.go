//go:build unit

package order_test

import (
	"testing"

	"storefront-checkout/internal/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name, price string, stock int32) *order.ProductSnapshot {
	return &order.ProductSnapshot{Name: name, UnitPrice: decimal.RequireFromString(price), StockQuantity: stock}
}

func TestSnapshotLines(t *testing.T) {
	t.Run("subtotal sums line totals", func(t *testing.T) {
		lines := []order.CartLine{
			{ProductID: uuid.New(), Quantity: 2, Product: product("Latte", "3.50", 10)},
			{ProductID: uuid.New(), Quantity: 1, Product: product("Croissant", "2.25", 1)},
		}

		items, subtotal, err := order.SnapshotLines(lines)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.True(t, subtotal.Equal(decimal.RequireFromString("9.25")), subtotal.String())
		assert.Equal(t, "Latte", items[0].Name())
		assert.True(t, items[0].Total().Equal(decimal.RequireFromString("7.00")))
		assert.Equal(t, lines[1].ProductID, items[1].ProductID())
	})

	t.Run("empty cart", func(t *testing.T) {
		_, _, err := order.SnapshotLines(nil)

		assert.ErrorIs(t, err, order.ErrEmptyCart)
	})

	t.Run("deleted product", func(t *testing.T) {
		lines := []order.CartLine{
			{ProductID: uuid.New(), Quantity: 1, Product: product("Latte", "3.50", 10)},
			{ProductID: uuid.New(), Quantity: 1, Product: nil},
		}

		_, _, err := order.SnapshotLines(lines)

		assert.ErrorIs(t, err, order.ErrInvalidProduct)
	})

	t.Run("short stock names product and availability", func(t *testing.T) {
		id := uuid.New()
		lines := []order.CartLine{{ProductID: id, Quantity: 5, Product: product("Mocha", "4.00", 3)}}

		_, _, err := order.SnapshotLines(lines)

		var stockErr *order.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, id, stockErr.ProductID)
		assert.Equal(t, int32(3), stockErr.Available)
		assert.Equal(t, "Not enough stock for Mocha. Available: 3", stockErr.Error())
	})

	t.Run("snapshot is detached from later price changes", func(t *testing.T) {
		snap := product("Latte", "3.50", 10)
		items, _, err := order.SnapshotLines([]order.CartLine{{ProductID: uuid.New(), Quantity: 1, Product: snap}})
		require.NoError(t, err)

		snap.UnitPrice = decimal.RequireFromString("99.00")

		assert.True(t, items[0].UnitPrice().Equal(decimal.RequireFromString("3.50")))
		assert.True(t, items[0].Total().Equal(decimal.RequireFromString("3.50")))
	})
}
