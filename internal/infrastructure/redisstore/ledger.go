package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domain "github.com/motorhall/showroom/internal/domain/sales"
)

const (
	saleSeqKey     = "ledger:seq"
	saleListKey    = "ledger:sales"
	plateKeyPrefix = "ledger:plate:"
	vinKeyPrefix   = "ledger:vin:"

	appendAttempts = 16
)

// SalesLedger is a Redis-backed sales.Ledger. Sale ids come from INCR, so
// they stay monotonic across processes; plate/VIN uniqueness is enforced by
// claim keys written in the same transaction as the appended record.
type SalesLedger struct {
	client *redis.Client
}

func NewSalesLedger(client *redis.Client) *SalesLedger {
	return &SalesLedger{client: client}
}

func (l *SalesLedger) Append(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	plateKey := plateKeyPrefix + sale.Plate
	vinKey := vinKeyPrefix + sale.VIN

	seq, err := l.client.Incr(ctx, saleSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: sale sequence: %w", err)
	}

	committed := sale.Clone()
	committed.ID = uint64(seq)
	raw, err := json.Marshal(committed)
	if err != nil {
		return nil, fmt.Errorf("redisstore: encode sale: %w", err)
	}

	txn := func(tx *redis.Tx) error {
		taken, err := tx.Exists(ctx, plateKey, vinKey).Result()
		if err != nil {
			return err
		}
		if taken > 0 {
			return domain.ErrDuplicateIdentifier
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, plateKey, seq, 0)
			pipe.Set(ctx, vinKey, seq, 0)
			pipe.RPush(ctx, saleListKey, raw)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < appendAttempts; attempt++ {
		err := l.client.Watch(ctx, txn, plateKey, vinKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, domain.ErrDuplicateIdentifier) {
			return nil, domain.ErrDuplicateIdentifier
		}
		if err != nil {
			return nil, fmt.Errorf("redisstore: append sale: %w", err)
		}
		return committed.Clone(), nil
	}
	return nil, domain.ErrDuplicateIdentifier
}

func (l *SalesLedger) List(ctx context.Context) ([]*domain.Sale, error) {
	raws, err := l.client.LRange(ctx, saleListKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: list sales: %w", err)
	}

	out := make([]*domain.Sale, 0, len(raws))
	for _, raw := range raws {
		var sale domain.Sale
		if err := json.Unmarshal([]byte(raw), &sale); err != nil {
			return nil, fmt.Errorf("redisstore: decode sale: %w", err)
		}
		out = append(out, &sale)
	}
	return out, nil
}
