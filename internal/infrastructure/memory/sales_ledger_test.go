package memory

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

	t.Run("assigns monotonically increasing ids", func(t *testing.T) {
		ledger := NewSalesLedger()

		first, err := ledger.Append(ctx, newSale("sultan", "buyer-1", "AAAA-0001", "VIN00000000000001"))
		require.NoError(t, err)
		second, err := ledger.Append(ctx, newSale("sultan", "buyer-2", "AAAA-0002", "VIN00000000000002"))
		require.NoError(t, err)

		assert.Equal(t, uint64(1), first.ID)
		assert.Equal(t, uint64(2), second.ID)
	})

	t.Run("rejects duplicate plate", func(t *testing.T) {
		ledger := NewSalesLedger()

		_, err := ledger.Append(ctx, newSale("sultan", "buyer-1", "AAAA-0001", "VIN00000000000001"))
		require.NoError(t, err)

		_, err = ledger.Append(ctx, newSale("bison", "buyer-2", "AAAA-0001", "VIN00000000000002"))
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)

		sales, _ := ledger.List(ctx)
		assert.Len(t, sales, 1, "rejected append leaves no trace")
	})

	t.Run("rejects duplicate vin", func(t *testing.T) {
		ledger := NewSalesLedger()

		_, err := ledger.Append(ctx, newSale("sultan", "buyer-1", "AAAA-0001", "VIN00000000000001"))
		require.NoError(t, err)

		_, err = ledger.Append(ctx, newSale("bison", "buyer-2", "AAAA-0002", "VIN00000000000001"))
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
	})

	t.Run("list preserves append order and isolates copies", func(t *testing.T) {
		ledger := NewSalesLedger()

		_, err := ledger.Append(ctx, newSale("sultan", "buyer-1", "AAAA-0001", "VIN00000000000001"))
		require.NoError(t, err)
		_, err = ledger.Append(ctx, newSale("bison", "buyer-2", "AAAA-0002", "VIN00000000000002"))
		require.NoError(t, err)

		sales, err := ledger.List(ctx)
		require.NoError(t, err)
		require.Len(t, sales, 2)
		assert.Equal(t, "sultan", sales[0].ItemID)
		assert.Equal(t, "bison", sales[1].ItemID)

		sales[0].PricePaid = 1
		again, _ := ledger.List(ctx)
		assert.Equal(t, int64(795000), again[0].PricePaid)
	})

	t.Run("input sale is not mutated", func(t *testing.T) {
		ledger := NewSalesLedger()

		in := newSale("sultan", "buyer-1", "AAAA-0001", "VIN00000000000001")
		committed, err := ledger.Append(ctx, in)
		require.NoError(t, err)

		assert.Zero(t, in.ID)
		assert.Equal(t, uint64(1), committed.ID)
	})
}
