package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewProduct(t *testing.T) {
	t.Run("should apply storefront defaults", func(t *testing.T) {
		p, err := NewProduct("Air Max 90", "White")

		require.NoError(t, err)
		assert.Equal(t, "Nike", p.Brand)
		assert.Equal(t, "Sneakers", p.Category)
		assert.Equal(t, "EUR", p.Currency)
		assert.False(t, p.OnSale)
		assert.NotNil(t, p.Sizes)
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		_, err := NewProduct("   ", "")
		assert.Error(t, err)
	})
}

func TestProductSetPrices(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		p, err := NewProduct("Dunk Low", "Panda")
		require.NoError(t, err)
		return p
	}

	t.Run("should flag promotion when original exceeds final", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetPrices(dec("89.99"), dec("119.99")))
		assert.True(t, p.OnSale)
	})

	t.Run("should not flag promotion for equal prices", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetPrices(dec("99.99"), dec("99.99")))
		assert.False(t, p.OnSale)
	})

	t.Run("should not flag promotion when a price is missing", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetPrices(dec("99.99"), nil))
		assert.False(t, p.OnSale)

		require.NoError(t, p.SetPrices(nil, dec("119.99")))
		assert.False(t, p.OnSale)
	})

	t.Run("should not flag promotion for zero original price", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetPrices(dec("0"), dec("0")))
		assert.False(t, p.OnSale)
	})

	t.Run("should reject negative prices", func(t *testing.T) {
		p := newProduct(t)
		assert.Error(t, p.SetPrices(dec("-1"), nil))
	})
}

func TestProductReplaceSizes(t *testing.T) {
	p, err := NewProduct("Jordan 1 Mid", "Chicago")
	require.NoError(t, err)

	p.ReplaceSizes(SizeChart{
		"42":   {Quantity: 5},
		"42.5": {Quantity: -3},
		"43":   {Quantity: 0},
	})

	assert.Equal(t, 5, p.Sizes["42"].Quantity)
	assert.Equal(t, 0, p.Sizes["42.5"].Quantity)
	assert.Equal(t, 5, p.TotalStock())
}

func TestSizeStockUnmarshalJSON(t *testing.T) {
	t.Run("should accept object form", func(t *testing.T) {
		var chart SizeChart
		require.NoError(t, json.Unmarshal([]byte(`{"42":{"quantity":7}}`), &chart))
		assert.Equal(t, 7, chart["42"].Quantity)
	})

	t.Run("should accept bare number form", func(t *testing.T) {
		var chart SizeChart
		require.NoError(t, json.Unmarshal([]byte(`{"42":7}`), &chart))
		assert.Equal(t, 7, chart["42"].Quantity)
	})
}

func TestSpreadQuantity(t *testing.T) {
	t.Run("should distribute remainder to leading labels", func(t *testing.T) {
		chart, err := SpreadQuantity(26, DefaultSizeLabels)
		require.NoError(t, err)

		assert.Equal(t, 3, chart["46"].Quantity)
		assert.Equal(t, 3, chart["47"].Quantity)
		assert.Equal(t, 2, chart["48"].Quantity)
		assert.Equal(t, 2, chart["57"].Quantity)
		assert.Equal(t, 26, chart.TotalQuantity())
	})

	t.Run("should zero out negative totals", func(t *testing.T) {
		chart, err := SpreadQuantity(-5, DefaultSizeLabels)
		require.NoError(t, err)
		assert.Equal(t, 0, chart.TotalQuantity())
	})

	t.Run("should require labels", func(t *testing.T) {
		_, err := SpreadQuantity(10, nil)
		assert.Error(t, err)
	})
}
