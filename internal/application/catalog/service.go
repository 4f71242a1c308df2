package catalog

import (
	"context"
	"fmt"

	domain "github.com/motorhall/showroom/internal/domain/catalog"
)

// Service is the read side of the catalog: snapshots and filtered views for
// display. It never takes the stock mutation locks, so browsing proceeds
// while purchases commit; a view may be slightly stale.
type Service struct {
	store domain.Store
}

func NewService(store domain.Store) *Service {
	return &Service{store: store}
}

// Snapshot returns a copy of the full catalog, disabled items included.
func (s *Service) Snapshot(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: snapshot: %w", err)
	}
	return items, nil
}

// View returns the filtered, ordered listing for the given criteria.
func (s *Service) View(ctx context.Context, criteria domain.Criteria) ([]*domain.Item, error) {
	items, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: snapshot: %w", err)
	}
	return domain.View(items, criteria), nil
}

// Get returns one item by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Item, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.store.Get(ctx, id)
}
