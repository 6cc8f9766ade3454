package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	price := decimal.NewFromInt(320)

	t.Run("creates product with valid fields", func(t *testing.T) {
		product, err := NewProduct("Steam Momo", "Classic steamed dumplings", price, 50, ProductStatusAvailable, MainTypeChicken, "/uploads/steam.jpg")

		require.NoError(t, err)
		assert.Equal(t, "Steam Momo", product.Name)
		assert.Equal(t, "Classic steamed dumplings", product.Description)
		assert.True(t, product.Price.Equal(price))
		assert.Equal(t, 50, product.StockQty)
		assert.Equal(t, ProductStatusAvailable, product.Status)
		assert.Equal(t, MainTypeChicken, product.MainType)
		assert.Equal(t, "/uploads/steam.jpg", product.ImagePath)
	})

	t.Run("falls back to placeholder image", func(t *testing.T) {
		product, err := NewProduct("Steam Momo", "Classic steamed dumplings", price, 50, ProductStatusAvailable, MainTypeChicken, "")

		require.NoError(t, err)
		assert.Equal(t, PlaceholderImageURL, product.ImagePath)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("  ", "desc", price, 50, ProductStatusAvailable, MainTypeChicken, "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Name cannot be empty")
	})

	t.Run("fails with zero price", func(t *testing.T) {
		_, err := NewProduct("Steam Momo", "desc", decimal.Zero, 50, ProductStatusAvailable, MainTypeChicken, "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Price must be positive")
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct("Steam Momo", "desc", price, -1, ProductStatusAvailable, MainTypeChicken, "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Stock quantity cannot be negative")
	})

	t.Run("fails with unknown status", func(t *testing.T) {
		_, err := NewProduct("Steam Momo", "desc", price, 50, ProductStatus("sold-out"), MainTypeChicken, "")

		assert.Error(t, err)
	})

	t.Run("fails with unknown main type", func(t *testing.T) {
		_, err := NewProduct("Steam Momo", "desc", price, 50, ProductStatusAvailable, MainType("Fish"), "")

		assert.Error(t, err)
	})
}

func TestProductSetters(t *testing.T) {
	product, err := NewProduct("Steam Momo", "desc", decimal.NewFromInt(320), 50, ProductStatusAvailable, MainTypeChicken, "")
	require.NoError(t, err)

	t.Run("set price", func(t *testing.T) {
		require.NoError(t, product.SetPrice(decimal.NewFromInt(350)))
		assert.True(t, product.Price.Equal(decimal.NewFromInt(350)))

		assert.Error(t, product.SetPrice(decimal.NewFromInt(-1)))
	})

	t.Run("set stock", func(t *testing.T) {
		require.NoError(t, product.SetStockQty(0))
		assert.Equal(t, 0, product.StockQty)

		assert.Error(t, product.SetStockQty(-5))
	})

	t.Run("set status", func(t *testing.T) {
		require.NoError(t, product.SetStatus(ProductStatusUnavailable))
		assert.False(t, product.IsAvailable())
	})

	t.Run("set main type", func(t *testing.T) {
		require.NoError(t, product.SetMainType(MainTypeVeg))
		assert.Equal(t, MainTypeVeg, product.MainType)
	})

	t.Run("setters advance the update timestamp", func(t *testing.T) {
		before := product.UpdatedAt
		require.NoError(t, product.SetStockQty(10))
		assert.False(t, product.UpdatedAt.Before(before))
	})
}

func TestProductHasStock(t *testing.T) {
	product, err := NewProduct("Steam Momo", "desc", decimal.NewFromInt(320), 3, ProductStatusAvailable, MainTypeChicken, "")
	require.NoError(t, err)

	assert.True(t, product.HasStock(3))
	assert.False(t, product.HasStock(4))
}
