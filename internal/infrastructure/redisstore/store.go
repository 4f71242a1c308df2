package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domain "github.com/motorhall/showroom/internal/domain/catalog"
)

const (
	itemKeyPrefix = "catalog:item:"
	itemIndexKey  = "catalog:items"

	// updateAttempts bounds the optimistic WATCH retry loop before the
	// conflict is surfaced to the caller.
	updateAttempts = 16
)

// CatalogStore is a Redis-backed catalog.Store. Single-item atomicity comes
// from optimistic WATCH transactions, so it also holds across processes
// sharing one Redis.
type CatalogStore struct {
	client *redis.Client
}

func NewCatalogStore(client *redis.Client) *CatalogStore {
	return &CatalogStore{client: client}
}

func itemKey(id string) string { return itemKeyPrefix + id }

func (s *CatalogStore) Get(ctx context.Context, id string) (*domain.Item, error) {
	raw, err := s.client.Get(ctx, itemKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get item: %w", err)
	}
	return decodeItem([]byte(raw))
}

func (s *CatalogStore) Put(ctx context.Context, item *domain.Item) error {
	if item == nil || item.ID == "" {
		return domain.ErrInvalidID
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("redisstore: encode item: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, itemKey(item.ID), raw, 0)
		pipe.SAdd(ctx, itemIndexKey, item.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisstore: put item: %w", err)
	}
	return nil
}

func (s *CatalogStore) Update(ctx context.Context, id string, fn func(*domain.Item) error) (*domain.Item, error) {
	key := itemKey(id)
	var updated *domain.Item

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		item, err := decodeItem([]byte(raw))
		if err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}

		next, err := json.Marshal(item)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		if err == nil {
			updated = item
		}
		return err
	}

	for attempt := 0; attempt < updateAttempts; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || isDomainErr(err) {
				return nil, err
			}
			return nil, fmt.Errorf("redisstore: update item: %w", err)
		}
		return updated, nil
	}
	return nil, fmt.Errorf("redisstore: update item %q: too many concurrent modifications", id)
}

func (s *CatalogStore) Snapshot(ctx context.Context) ([]*domain.Item, error) {
	ids, err := s.client.SMembers(ctx, itemIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: snapshot index: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: snapshot items: %w", err)
	}

	out := make([]*domain.Item, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // id indexed but item gone; skip
		}
		item, err := decodeItem([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func decodeItem(raw []byte) (*domain.Item, error) {
	var item domain.Item
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("redisstore: decode item: %w", err)
	}
	return &item, nil
}

// isDomainErr reports whether err came from the caller's mutation fn rather
// than from Redis, so it can pass through unwrapped.
func isDomainErr(err error) bool {
	return errors.Is(err, domain.ErrOutOfStock) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidStock)
}
