package sales

import "context"

// Ledger is the append-only sales record. Append assigns the next monotonic
// sale id and enforces global uniqueness of plate and vin, returning
// ErrDuplicateIdentifier when either is already registered. Committed sales
// are never updated or deleted.
type Ledger interface {
	Append(ctx context.Context, sale *Sale) (*Sale, error)
	List(ctx context.Context) ([]*Sale, error)
}
