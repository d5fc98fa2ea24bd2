package cart

import (
	"sync"
	"testing"

	"github.com/usmanharun1738/cartar-pos/internal/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sellable(itemType product.ItemType, refID uint, name, price string, stock int) *product.SellableItem {
	return &product.SellableItem{
		ItemType: itemType,
		RefID:    refID,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}
}

func TestCart_AddItem(t *testing.T) {
	t.Run("NewLineDefaultsToOne", func(t *testing.T) {
		c := New()

		line, err := c.AddItem(sellable(product.ItemTypeVariant, 9, "T-Shirt - Small / Red", "35.00", 10), 1)
		require.NoError(t, err)
		assert.Equal(t, "variant:9", line.Key)
		assert.Equal(t, 1, line.Quantity)
		assert.Equal(t, 10, line.MaxQuantity)
		assert.Equal(t, StatusBuilding, c.Status())
	})

	t.Run("RepeatedAddClampsAtStock", func(t *testing.T) {
		c := New()
		item := sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 3)

		var line Line
		for i := 0; i < 5; i++ {
			var err error
			line, err = c.AddItem(item, 1)
			require.NoError(t, err)
		}
		assert.Equal(t, 3, line.Quantity)
		assert.Equal(t, 3, c.ItemCount())
	})

	t.Run("MergesIntoExistingLine", func(t *testing.T) {
		c := New()
		item := sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 30)

		_, err := c.AddItem(item, 2)
		require.NoError(t, err)
		line, err := c.AddItem(item, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, line.Quantity)
		assert.Len(t, c.Lines(), 1)
	})

	t.Run("OutOfStock", func(t *testing.T) {
		c := New()

		_, err := c.AddItem(sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 0), 1)
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Equal(t, StatusEmpty, c.Status())
	})

	t.Run("PreservesInsertionOrder", func(t *testing.T) {
		c := New()

		_, err := c.AddItem(sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 30), 1)
		require.NoError(t, err)
		_, err = c.AddItem(sellable(product.ItemTypeVariant, 9, "T-Shirt - Small / Red", "35.00", 10), 1)
		require.NoError(t, err)

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "product:4", lines[0].Key)
		assert.Equal(t, "variant:9", lines[1].Key)
	})
}

func TestCart_SetQuantity(t *testing.T) {
	newCartWithWater := func(t *testing.T) *Cart {
		c := New()
		_, err := c.AddItem(sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 10), 1)
		require.NoError(t, err)
		return c
	}

	t.Run("SetsWithinStock", func(t *testing.T) {
		c := newCartWithWater(t)

		require.NoError(t, c.SetQuantity("product:4", 7))
		assert.Equal(t, 7, c.Lines()[0].Quantity)
	})

	t.Run("ClampsAboveStock", func(t *testing.T) {
		c := newCartWithWater(t)

		require.NoError(t, c.SetQuantity("product:4", 99))
		assert.Equal(t, 10, c.Lines()[0].Quantity)
	})

	t.Run("ZeroRemovesLine", func(t *testing.T) {
		c := newCartWithWater(t)

		require.NoError(t, c.SetQuantity("product:4", 0))
		assert.Empty(t, c.Lines())
		assert.Equal(t, StatusEmpty, c.Status())
	})

	t.Run("NegativeRemovesLine", func(t *testing.T) {
		c := newCartWithWater(t)

		require.NoError(t, c.SetQuantity("product:4", -3))
		assert.Empty(t, c.Lines())
	})

	t.Run("UnknownLine", func(t *testing.T) {
		c := newCartWithWater(t)

		assert.ErrorIs(t, c.SetQuantity("variant:99", 2), ErrLineNotFound)
	})
}

func TestCart_Remove(t *testing.T) {
	t.Run("IdempotentRemove", func(t *testing.T) {
		c := New()
		_, err := c.AddItem(sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 10), 1)
		require.NoError(t, err)

		assert.NoError(t, c.Remove("product:4"))
		assert.NoError(t, c.Remove("product:4"))
		assert.Empty(t, c.Lines())
	})

	t.Run("ReAddStartsAtOne", func(t *testing.T) {
		c := New()
		item := sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 10)

		_, err := c.AddItem(item, 5)
		require.NoError(t, err)
		require.NoError(t, c.Remove("product:4"))

		line, err := c.AddItem(item, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, line.Quantity)
	})
}

func TestCart_Totals(t *testing.T) {
	taxRate := decimal.RequireFromString("0.05")

	t.Run("SubtotalTaxTotal", func(t *testing.T) {
		c := New()
		_, err := c.AddItem(sellable(product.ItemTypeProduct, 1, "Coffee", "10.00", 50), 2)
		require.NoError(t, err)
		_, err = c.AddItem(sellable(product.ItemTypeProduct, 2, "Croissant", "5.00", 50), 3)
		require.NoError(t, err)

		totals := c.Totals(taxRate)
		assert.Equal(t, "35.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "1.75", totals.TaxAmount.StringFixed(2))
		assert.Equal(t, "36.75", totals.Total.StringFixed(2))
	})

	t.Run("TaxRoundsHalfUp", func(t *testing.T) {
		c := New()
		_, err := c.AddItem(sellable(product.ItemTypeProduct, 3, "Gum", "2.50", 50), 1)
		require.NoError(t, err)

		// 2.50 * 0.05 = 0.125 -> 0.13
		totals := c.Totals(taxRate)
		assert.Equal(t, "0.13", totals.TaxAmount.StringFixed(2))
		assert.Equal(t, "2.63", totals.Total.StringFixed(2))
	})

	t.Run("EmptyCartIsZero", func(t *testing.T) {
		totals := New().Totals(taxRate)
		assert.Equal(t, "0.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "0.00", totals.Total.StringFixed(2))
	})
}

func TestChangeDue(t *testing.T) {
	total := decimal.RequireFromString("36.75")

	assert.Equal(t, "3.25", ChangeDue(decimal.RequireFromString("40.00"), total).StringFixed(2))
	assert.Equal(t, "0.00", ChangeDue(total, total).StringFixed(2))
	assert.Equal(t, "0.00", ChangeDue(decimal.RequireFromString("30.00"), total).StringFixed(2))
}

func TestCart_CheckoutLifecycle(t *testing.T) {
	item := sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 10)

	t.Run("EmptyCartCannotCheckout", func(t *testing.T) {
		assert.ErrorIs(t, New().BeginCheckout(), ErrCartEmpty)
	})

	t.Run("PendingCheckoutLocksMutations", func(t *testing.T) {
		c := New()
		_, err := c.AddItem(item, 1)
		require.NoError(t, err)
		require.NoError(t, c.BeginCheckout())

		_, err = c.AddItem(item, 1)
		assert.ErrorIs(t, err, ErrCartLocked)
		assert.ErrorIs(t, c.SetQuantity("product:4", 2), ErrCartLocked)
		assert.ErrorIs(t, c.Remove("product:4"), ErrCartLocked)
		assert.ErrorIs(t, c.Clear(), ErrCartLocked)
		assert.ErrorIs(t, c.BeginCheckout(), ErrCheckoutInProgress)
	})

	t.Run("CancelRestoresBuilding", func(t *testing.T) {
		c := New()
		_, err := c.AddItem(item, 2)
		require.NoError(t, err)
		require.NoError(t, c.BeginCheckout())
		require.NoError(t, c.CancelCheckout())

		assert.Equal(t, StatusBuilding, c.Status())
		assert.Len(t, c.Lines(), 1)
		assert.Equal(t, 2, c.Lines()[0].Quantity)
	})

	t.Run("CompleteSpendsCart", func(t *testing.T) {
		c := New()
		_, err := c.AddItem(item, 1)
		require.NoError(t, err)
		require.NoError(t, c.BeginCheckout())
		require.NoError(t, c.Complete())

		assert.Equal(t, StatusCompleted, c.Status())
		assert.Empty(t, c.Lines())
	})

	t.Run("CompleteWithoutCheckout", func(t *testing.T) {
		assert.ErrorIs(t, New().Complete(), ErrNotInCheckout)
		assert.ErrorIs(t, New().CancelCheckout(), ErrNotInCheckout)
	})

	t.Run("CompletedCartIsTerminal", func(t *testing.T) {
		c := New()
		_, err := c.AddItem(item, 1)
		require.NoError(t, err)
		require.NoError(t, c.BeginCheckout())
		require.NoError(t, c.Complete())

		key := LineKey(item.ItemType, item.RefID)

		_, err = c.AddItem(item, 1)
		assert.ErrorIs(t, err, ErrCartCompleted)
		assert.ErrorIs(t, c.SetQuantity(key, 2), ErrCartCompleted)
		assert.ErrorIs(t, c.Remove(key), ErrCartCompleted)
		assert.ErrorIs(t, c.Clear(), ErrCartCompleted)
		assert.ErrorIs(t, c.BeginCheckout(), ErrCartCompleted)

		assert.Equal(t, StatusCompleted, c.Status())
		assert.Empty(t, c.Lines())
	})
}

func TestCart_BuildReceipt(t *testing.T) {
	c := New()
	_, err := c.AddItem(sellable(product.ItemTypeProduct, 1, "Coffee", "10.00", 50), 2)
	require.NoError(t, err)
	_, err = c.AddItem(sellable(product.ItemTypeProduct, 2, "Croissant", "5.00", 50), 3)
	require.NoError(t, err)

	receipt := c.BuildReceipt(
		decimal.RequireFromString("0.05"),
		decimal.RequireFromString("40.00"),
		"table 3",
	)

	assert.Len(t, receipt.Lines, 2)
	assert.Equal(t, "36.75", receipt.Totals.Total.StringFixed(2))
	assert.Equal(t, "3.25", receipt.ChangeDue.StringFixed(2))
	assert.Equal(t, "table 3", receipt.Notes)
	assert.False(t, receipt.CreatedAt.IsZero())
}

func TestCart_ConcurrentAdds(t *testing.T) {
	c := New()
	item := sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.AddItem(item, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.ItemCount())
}

func TestStore(t *testing.T) {
	t.Run("GetOrCreate", func(t *testing.T) {
		store := NewStore()

		c1 := store.Get("till-1")
		c2 := store.Get("till-1")
		assert.Same(t, c1, c2)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		store := NewStore()
		_, err := store.Get("till-1").AddItem(
			sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 10), 1)
		require.NoError(t, err)

		assert.Empty(t, store.Get("till-2").Lines())
	})

	t.Run("DropStartsFresh", func(t *testing.T) {
		store := NewStore()
		c := store.Get("till-1")
		_, err := c.AddItem(sellable(product.ItemTypeProduct, 4, "Bottled Water", "1.50", 10), 1)
		require.NoError(t, err)

		store.Drop("till-1")
		assert.NotSame(t, c, store.Get("till-1"))
		assert.Empty(t, store.Get("till-1").Lines())
	})
}
