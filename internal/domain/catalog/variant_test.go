package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveUsedVariant(t *testing.T) {
	t.Parallel()

	base := func() *Item {
		item, err := New("sultan", "Sultan RS", "sports", 50000, 4)
		require.NoError(t, err)
		item.Specs = map[string]string{"engine": "V6"}
		return item
	}

	t.Run("discounts with round half up", func(t *testing.T) {
		v, err := DeriveUsedVariant(base(), "sultan-used-1", 42000, 0.7)
		require.NoError(t, err)
		assert.Equal(t, int64(35000), v.BasePrice)

		b := base()
		b.BasePrice = 50001
		v, err = DeriveUsedVariant(b, "sultan-used-2", 42000, 0.7)
		require.NoError(t, err)
		assert.Equal(t, int64(35001), v.BasePrice, "0.5 fractions round up")
	})

	t.Run("half exactly rounds up", func(t *testing.T) {
		b := base()
		b.BasePrice = 3
		v, err := DeriveUsedVariant(b, "sultan-used-3", 10, 0.5)
		require.NoError(t, err)
		assert.Equal(t, int64(2), v.BasePrice)
	})

	t.Run("marks variant as single used unit", func(t *testing.T) {
		v, err := DeriveUsedVariant(base(), "sultan-used-4", 88000, 1)
		require.NoError(t, err)
		assert.True(t, v.IsUsed)
		assert.Equal(t, 1, v.Stock)
		assert.Equal(t, 88000, v.Mileage)
		assert.Equal(t, "Sultan RS (used)", v.Name)
		assert.Equal(t, "88000", v.Specs["mileage"])
	})

	t.Run("specs are copied not shared", func(t *testing.T) {
		b := base()
		v, err := DeriveUsedVariant(b, "sultan-used-5", 1000, 0.9)
		require.NoError(t, err)
		v.Specs["engine"] = "V8"
		assert.Equal(t, "V6", b.Specs["engine"])
	})

	t.Run("rejects out-of-range discount", func(t *testing.T) {
		_, err := DeriveUsedVariant(base(), "x", 0, 0)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
		_, err = DeriveUsedVariant(base(), "x", 0, 1.01)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
		_, err = DeriveUsedVariant(base(), "x", 0, -0.5)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("rejects negative mileage", func(t *testing.T) {
		_, err := DeriveUsedVariant(base(), "x", -1, 0.5)
		assert.ErrorIs(t, err, ErrInvalidMileage)
	})

	t.Run("rejects missing base", func(t *testing.T) {
		_, err := DeriveUsedVariant(nil, "x", 0, 0.5)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
