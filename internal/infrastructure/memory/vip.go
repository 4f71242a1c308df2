package memory

import (
	"context"
	"sync"
)

// AllowListVIP is a static allow-list implementation of the VIP eligibility
// predicate, for wiring the engine without an external membership service.
type AllowListVIP struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewAllowListVIP(buyerIDs ...string) *AllowListVIP {
	v := &AllowListVIP{ids: make(map[string]struct{}, len(buyerIDs))}
	for _, id := range buyerIDs {
		v.ids[id] = struct{}{}
	}
	return v
}

func (v *AllowListVIP) Grant(buyerID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ids[buyerID] = struct{}{}
}

func (v *AllowListVIP) IsEligible(ctx context.Context, buyerID string) (bool, error) {
	_ = ctx

	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.ids[buyerID]
	return ok, nil
}
