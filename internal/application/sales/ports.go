package sales

import "context"

// VIPChecker is the external eligibility predicate for VIP-gated items.
type VIPChecker interface {
	IsEligible(ctx context.Context, buyerID string) (bool, error)
}

// IdentifierGenerator produces item ids and candidate plate/VIN pairs.
// Candidates are not guaranteed free; the ledger's uniqueness constraint is
// authoritative and the engine retries on collisions.
type IdentifierGenerator interface {
	NewID() string
	NewPlate() string
	NewVIN() string
}
