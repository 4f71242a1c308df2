package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStockClamp(t *testing.T) {
	t.Parallel()

	item, err := New("bison", "Bison", "truck", 63000, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, item.AdjustStock(-1000), "large negative delta floors at zero")
	assert.Equal(t, 0, item.Stock)

	assert.Equal(t, 5, item.AdjustStock(5))
	assert.Equal(t, 4, item.AdjustStock(-1))
}

func TestItemDeduct(t *testing.T) {
	t.Parallel()

	item, err := New("blista", "Blista", "compact", 42000, 1)
	require.NoError(t, err)

	require.NoError(t, item.Deduct())
	assert.Equal(t, 0, item.Stock)
	assert.ErrorIs(t, item.Deduct(), ErrOutOfStock)
	assert.Equal(t, 0, item.Stock)
}

func TestItemValidation(t *testing.T) {
	t.Parallel()

	_, err := New("", "x", "compact", 1, 1)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New("x", "x", "compact", -1, 1)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = New("x", "x", "compact", 1, -1)
	assert.ErrorIs(t, err, ErrInvalidStock)

	item, err := New("x", "x", "compact", 1, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, item.SetPrice(-5), ErrInvalidPrice)
}

func TestItemCloneIsDeep(t *testing.T) {
	t.Parallel()

	item, err := New("sultan", "Sultan", "sports", 795000, 2)
	require.NoError(t, err)
	item.Specs = map[string]string{"drivetrain": "awd"}

	clone := item.Clone()
	clone.Specs["drivetrain"] = "rwd"
	clone.Stock = 99

	assert.Equal(t, "awd", item.Specs["drivetrain"])
	assert.Equal(t, 2, item.Stock)
}
