package memory

import (
	"context"
	"sync"

	domain "github.com/motorhall/showroom/internal/domain/sales"
)

// SalesLedger is an in-memory sales.Ledger: monotonic ids, append-only,
// global plate/VIN uniqueness.
type SalesLedger struct {
	mu     sync.Mutex
	nextID uint64
	sales  []*domain.Sale
	plates map[string]struct{}
	vins   map[string]struct{}
}

func NewSalesLedger() *SalesLedger {
	return &SalesLedger{
		nextID: 1,
		plates: make(map[string]struct{}),
		vins:   make(map[string]struct{}),
	}
}

func (l *SalesLedger) Append(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	_ = ctx

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.plates[sale.Plate]; taken {
		return nil, domain.ErrDuplicateIdentifier
	}
	if _, taken := l.vins[sale.VIN]; taken {
		return nil, domain.ErrDuplicateIdentifier
	}

	committed := sale.Clone()
	committed.ID = l.nextID
	l.nextID++
	l.plates[committed.Plate] = struct{}{}
	l.vins[committed.VIN] = struct{}{}
	l.sales = append(l.sales, committed)

	return committed.Clone(), nil
}

func (l *SalesLedger) List(ctx context.Context) ([]*domain.Sale, error) {
	_ = ctx

	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.Sale, 0, len(l.sales))
	for _, s := range l.sales {
		out = append(out, s.Clone())
	}
	return out, nil
}
