package memory

import (
	"context"
	"sync"

	domain "github.com/motorhall/showroom/internal/domain/catalog"
)

// CatalogStore is an in-memory catalog.Store. Items are cloned on every read
// and write so callers never alias store-owned state.
type CatalogStore struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		items: make(map[string]*domain.Item),
	}
}

func (s *CatalogStore) Get(ctx context.Context, id string) (*domain.Item, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item.Clone(), nil
}

func (s *CatalogStore) Put(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil || item.ID == "" {
		return domain.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[item.ID] = item.Clone()
	return nil
}

func (s *CatalogStore) Update(ctx context.Context, id string, fn func(*domain.Item) error) (*domain.Item, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.items[id] = next
	return next.Clone(), nil
}

func (s *CatalogStore) Snapshot(ctx context.Context) ([]*domain.Item, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	return out, nil
}
