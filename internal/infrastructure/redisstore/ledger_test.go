package redisstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/motorhall/showroom/internal/domain/sales"
)

func newSale(itemID, buyerID, plate, vin string) *domain.Sale {
	return &domain.Sale{
		ItemID:    itemID,
		ItemName:  itemID,
		BuyerID:   buyerID,
		PricePaid: 795000,
		Plate:     plate,
		VIN:       vin,
	}
}

func TestSalesLedger(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("append assigns monotonic ids", func(t *testing.T) {
		ledger := NewSalesLedger(newTestClient(t))

		first, err := ledger.Append(ctx, newSale("sultan", "buyer-1", "AAAA-0001", "VIN00000000000001"))
		require.NoError(t, err)
		second, err := ledger.Append(ctx, newSale("sultan", "buyer-2", "AAAA-0002", "VIN00000000000002"))
		require.NoError(t, err)

		assert.Equal(t, uint64(1), first.ID)
		assert.Equal(t, uint64(2), second.ID)
	})

	t.Run("duplicate plate is rejected", func(t *testing.T) {
		ledger := NewSalesLedger(newTestClient(t))

		_, err := ledger.Append(ctx, newSale("sultan", "buyer-1", "AAAA-0001", "VIN00000000000001"))
		require.NoError(t, err)

		_, err = ledger.Append(ctx, newSale("bison", "buyer-2", "AAAA-0001", "VIN00000000000002"))
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)

		sales, err := ledger.List(ctx)
		require.NoError(t, err)
		assert.Len(t, sales, 1)
	})

	t.Run("duplicate vin is rejected", func(t *testing.T) {
		ledger := NewSalesLedger(newTestClient(t))

		_, err := ledger.Append(ctx, newSale("sultan", "buyer-1", "AAAA-0001", "VIN00000000000001"))
		require.NoError(t, err)

		_, err = ledger.Append(ctx, newSale("bison", "buyer-2", "AAAA-0002", "VIN00000000000001"))
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
	})

	t.Run("list round-trips sales in append order", func(t *testing.T) {
		ledger := NewSalesLedger(newTestClient(t))

		_, err := ledger.Append(ctx, newSale("sultan", "buyer-1", "AAAA-0001", "VIN00000000000001"))
		require.NoError(t, err)
		_, err = ledger.Append(ctx, newSale("bison", "buyer-2", "AAAA-0002", "VIN00000000000002"))
		require.NoError(t, err)

		sales, err := ledger.List(ctx)
		require.NoError(t, err)
		require.Len(t, sales, 2)
		assert.Equal(t, "sultan", sales[0].ItemID)
		assert.Equal(t, "buyer-1", sales[0].BuyerID)
		assert.Equal(t, int64(795000), sales[0].PricePaid)
		assert.Equal(t, "bison", sales[1].ItemID)
	})

	t.Run("empty ledger lists nothing", func(t *testing.T) {
		ledger := NewSalesLedger(newTestClient(t))
		sales, err := ledger.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, sales)
	})
}
