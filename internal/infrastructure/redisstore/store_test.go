package redisstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/motorhall/showroom/internal/domain/catalog"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newItem(t *testing.T, id string, price int64, stock int) *domain.Item {
	t.Helper()
	item, err := domain.New(id, id, "sedan", price, stock)
	require.NoError(t, err)
	return item
}

func TestCatalogStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("put then get round-trips", func(t *testing.T) {
		store := NewCatalogStore(newTestClient(t))

		item := newItem(t, "sultan", 795000, 3)
		item.Specs = map[string]string{"drivetrain": "awd"}
		require.NoError(t, store.Put(ctx, item))

		got, err := store.Get(ctx, "sultan")
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)
		assert.Equal(t, item.BasePrice, got.BasePrice)
		assert.Equal(t, item.Stock, got.Stock)
		assert.Equal(t, "awd", got.Specs["drivetrain"])
	})

	t.Run("get unknown id", func(t *testing.T) {
		store := NewCatalogStore(newTestClient(t))
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("put validates id", func(t *testing.T) {
		store := NewCatalogStore(newTestClient(t))
		assert.ErrorIs(t, store.Put(ctx, nil), domain.ErrInvalidID)
	})

	t.Run("update persists the mutation", func(t *testing.T) {
		store := NewCatalogStore(newTestClient(t))
		require.NoError(t, store.Put(ctx, newItem(t, "sultan", 795000, 3)))

		updated, err := store.Update(ctx, "sultan", func(it *domain.Item) error {
			return it.Deduct()
		})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Stock)

		got, err := store.Get(ctx, "sultan")
		require.NoError(t, err)
		assert.Equal(t, 2, got.Stock)
	})

	t.Run("update surfaces mutation errors unwrapped", func(t *testing.T) {
		store := NewCatalogStore(newTestClient(t))
		require.NoError(t, store.Put(ctx, newItem(t, "sultan", 795000, 0)))

		_, err := store.Update(ctx, "sultan", func(it *domain.Item) error {
			return it.Deduct()
		})
		assert.ErrorIs(t, err, domain.ErrOutOfStock)

		got, err := store.Get(ctx, "sultan")
		require.NoError(t, err)
		assert.Equal(t, 0, got.Stock, "failed update writes nothing")
	})

	t.Run("update unknown id", func(t *testing.T) {
		store := NewCatalogStore(newTestClient(t))
		_, err := store.Update(ctx, "missing", func(*domain.Item) error { return nil })
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("snapshot lists every indexed item", func(t *testing.T) {
		store := NewCatalogStore(newTestClient(t))
		require.NoError(t, store.Put(ctx, newItem(t, "sultan", 795000, 3)))
		require.NoError(t, store.Put(ctx, newItem(t, "bison", 63000, 1)))

		items, err := store.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)

		ids := map[string]bool{}
		for _, it := range items {
			ids[it.ID] = true
		}
		assert.True(t, ids["sultan"])
		assert.True(t, ids["bison"])
	})

	t.Run("snapshot of empty catalog", func(t *testing.T) {
		store := NewCatalogStore(newTestClient(t))
		items, err := store.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestCatalogStoreErrClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, isDomainErr(domain.ErrOutOfStock))
	assert.True(t, isDomainErr(domain.ErrInvalidPrice))
	assert.False(t, isDomainErr(errors.New("io timeout")))
}
