package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/motorhall/showroom/internal/domain/catalog"
	"github.com/motorhall/showroom/internal/infrastructure/memory"
)

func seedStore(t *testing.T) *memory.CatalogStore {
	t.Helper()
	ctx := context.Background()
	store := memory.NewCatalogStore()

	specs := []struct {
		id    string
		price int64
		stock int
	}{
		{"blista", 16000, 8},
		{"sultan", 795000, 3},
		{"infernus", 2450000, 0},
	}
	for _, s := range specs {
		item, err := domain.New(s.id, s.id, "sedan", s.price, s.stock)
		require.NoError(t, err)
		require.NoError(t, store.Put(ctx, item))
	}
	return store
}

func TestService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("snapshot includes every item", func(t *testing.T) {
		svc := NewService(seedStore(t))

		items, err := svc.Snapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("view applies criteria", func(t *testing.T) {
		svc := NewService(seedStore(t))

		items, err := svc.View(ctx, domain.Criteria{
			InStockOnly: true,
			SortBy:      domain.SortByPrice,
			Order:       domain.OrderDesc,
		})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "sultan", items[0].ID)
		assert.Equal(t, "blista", items[1].ID)
	})

	t.Run("get", func(t *testing.T) {
		svc := NewService(seedStore(t))

		item, err := svc.Get(ctx, "sultan")
		require.NoError(t, err)
		assert.Equal(t, int64(795000), item.BasePrice)

		_, err = svc.Get(ctx, "")
		assert.ErrorIs(t, err, domain.ErrInvalidID)

		_, err = svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
