package catalog

import "context"

// Store is the catalog persistence port. Implementations must make Update an
// atomic read-modify-write on a single item, and must hand out copies so that
// readers never alias store-owned state.
type Store interface {
	Get(ctx context.Context, id string) (*Item, error)
	Put(ctx context.Context, item *Item) error
	// Update applies fn to the current item under the store's single-item
	// mutation scope. If fn returns an error the item is left untouched.
	Update(ctx context.Context, id string, fn func(*Item) error) (*Item, error)
	// Snapshot returns a copy of every item. It never blocks writers; the
	// snapshot may be slightly stale, which is acceptable for browsing.
	Snapshot(ctx context.Context) ([]*Item, error)
}
