package sales

import (
	"errors"
	"time"
)

var (
	ErrPriceMismatch       = errors.New("sales: authoritative price differs from expected price")
	ErrNotEligible         = errors.New("sales: buyer is not eligible for this item")
	ErrConcurrentConflict  = errors.New("sales: exhausted retries generating unique identifiers")
	ErrDuplicateIdentifier = errors.New("sales: plate or vin already registered")
	ErrInvalidBuyer        = errors.New("sales: buyer id is required")
)

// Sale is one committed purchase. It is append-only: once in the ledger it is
// never mutated. ItemName and Category are denormalized at commit time so the
// record stays auditable if the catalog entry is later disabled.
type Sale struct {
	ID        uint64
	ItemID    string
	ItemName  string
	Category  string
	BuyerID   string
	PricePaid int64
	Plate     string
	VIN       string
	SoldAt    time.Time
}

// Clone returns a copy; the ledger hands out clones so callers can never
// reach stored records.
func (s *Sale) Clone() *Sale {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
