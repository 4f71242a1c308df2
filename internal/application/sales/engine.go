package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/motorhall/showroom/internal/clock"
	"github.com/motorhall/showroom/internal/domain/catalog"
	"github.com/motorhall/showroom/internal/domain/event"
	domsales "github.com/motorhall/showroom/internal/domain/sales"
	"github.com/motorhall/showroom/internal/observability"
	"github.com/motorhall/showroom/internal/observability/logctx"
)

const defaultIdentifierRetries = 5

// Engine owns stock counts and the sales ledger. Every stock mutation for an
// item runs under that item's mutex, so concurrent purchases against shared
// stock serialize per item while unrelated items proceed independently.
type Engine struct {
	store   catalog.Store
	ledger  domsales.Ledger
	vip     VIPChecker
	ids     IdentifierGenerator
	pub     event.Publisher
	clock   clock.Clock
	log     observability.Logger
	retries int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithIdentifierRetries bounds plate/VIN generation attempts per purchase.
func WithIdentifierRetries(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.retries = n
		}
	}
}

func WithLogger(log observability.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log.With(observability.F("component", "sales_engine"))
		}
	}
}

func NewEngine(store catalog.Store, ledger domsales.Ledger, vip VIPChecker, ids IdentifierGenerator, pub event.Publisher, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		ledger:  ledger,
		vip:     vip,
		ids:     ids,
		pub:     pub,
		clock:   clock.NewSystem(),
		log:     observability.NopLogger(),
		retries: defaultIdentifierRetries,
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// itemLock returns the mutex owning all stock mutations for one item.
func (e *Engine) itemLock(itemID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[itemID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[itemID] = l
	}
	return l
}

// Purchase attempts to buy one unit. Stock read, price check, decrement, and
// ledger append happen under the item's lock as one unit; if the append fails
// after the decrement, the decrement is compensated before returning.
func (e *Engine) Purchase(ctx context.Context, itemID, buyerID string, expectedPrice int64) (*domsales.Sale, error) {
	if itemID == "" {
		return nil, catalog.ErrInvalidID
	}
	if buyerID == "" {
		return nil, domsales.ErrInvalidBuyer
	}

	lock := e.itemLock(itemID)
	lock.Lock()
	defer lock.Unlock()

	item, err := e.store.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Disabled {
		return nil, catalog.ErrNotFound
	}
	if item.Stock <= 0 {
		return nil, catalog.ErrOutOfStock
	}
	if item.VIPOnly {
		ok, err := e.vip.IsEligible(ctx, buyerID)
		if err != nil {
			return nil, fmt.Errorf("sales: vip check: %w", err)
		}
		if !ok {
			return nil, domsales.ErrNotEligible
		}
	}
	if item.BasePrice != expectedPrice {
		return nil, domsales.ErrPriceMismatch
	}

	updated, err := e.store.Update(ctx, itemID, func(it *catalog.Item) error {
		return it.Deduct()
	})
	if err != nil {
		return nil, err
	}

	sale := &domsales.Sale{
		ItemID:    item.ID,
		ItemName:  item.Name,
		Category:  string(item.Category),
		BuyerID:   buyerID,
		PricePaid: item.BasePrice,
		SoldAt:    e.clock.Now(),
	}

	committed, err := e.appendWithFreshIdentifiers(ctx, sale)
	if err != nil {
		e.compensateDeduct(ctx, itemID)
		return nil, err
	}

	e.publish(ctx, catalog.NewStockChangedEvent(itemID, updated.Stock))
	e.publish(ctx, domsales.NewSaleCommittedEvent(committed))
	return committed, nil
}

// appendWithFreshIdentifiers retries the ledger append with newly generated
// plate/VIN candidates until the uniqueness constraint accepts one pair.
func (e *Engine) appendWithFreshIdentifiers(ctx context.Context, sale *domsales.Sale) (*domsales.Sale, error) {
	for attempt := 0; attempt < e.retries; attempt++ {
		sale.Plate = e.ids.NewPlate()
		sale.VIN = e.ids.NewVIN()

		committed, err := e.ledger.Append(ctx, sale)
		if err == nil {
			return committed, nil
		}
		if !errors.Is(err, domsales.ErrDuplicateIdentifier) {
			return nil, fmt.Errorf("sales: ledger append: %w", err)
		}
	}
	return nil, domsales.ErrConcurrentConflict
}

// compensateDeduct restores the unit consumed by a purchase whose ledger
// append failed. Partial state (decrement without sale) must never survive.
func (e *Engine) compensateDeduct(ctx context.Context, itemID string) {
	if _, err := e.store.Update(ctx, itemID, func(it *catalog.Item) error {
		it.AdjustStock(1)
		return nil
	}); err != nil {
		logctx.FromOr(ctx, e.log).Error("purchase_compensation_failed",
			observability.F("item_id", itemID),
			observability.F("error", err.Error()),
		)
	}
}

// AdjustStock applies delta to an item's stock, clamping at zero.
func (e *Engine) AdjustStock(ctx context.Context, itemID string, delta int) (int, error) {
	if itemID == "" {
		return 0, catalog.ErrInvalidID
	}

	lock := e.itemLock(itemID)
	lock.Lock()
	defer lock.Unlock()

	updated, err := e.store.Update(ctx, itemID, func(it *catalog.Item) error {
		it.AdjustStock(delta)
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.publish(ctx, catalog.NewStockChangedEvent(itemID, updated.Stock))
	return updated.Stock, nil
}

// AdjustPrice reprices an item. Committed sales keep their recorded price.
func (e *Engine) AdjustPrice(ctx context.Context, itemID string, newPrice int64) error {
	if itemID == "" {
		return catalog.ErrInvalidID
	}
	if newPrice < 0 {
		return catalog.ErrInvalidPrice
	}

	lock := e.itemLock(itemID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := e.store.Update(ctx, itemID, func(it *catalog.Item) error {
		return it.SetPrice(newPrice)
	}); err != nil {
		return err
	}

	e.publish(ctx, catalog.NewPriceChangedEvent(itemID, newPrice))
	return nil
}

// AddItem puts a new listing into the catalog.
func (e *Engine) AddItem(ctx context.Context, item *catalog.Item) error {
	if item == nil || item.ID == "" {
		return catalog.ErrInvalidID
	}
	if item.BasePrice < 0 {
		return catalog.ErrInvalidPrice
	}
	if item.Stock < 0 {
		return catalog.ErrInvalidStock
	}

	if err := e.store.Put(ctx, item); err != nil {
		return err
	}
	e.publish(ctx, catalog.NewItemAddedEvent(item.ID))
	return nil
}

// DisableItem soft-deletes a listing. Sales referencing it stay valid.
func (e *Engine) DisableItem(ctx context.Context, itemID string) error {
	if itemID == "" {
		return catalog.ErrInvalidID
	}

	lock := e.itemLock(itemID)
	lock.Lock()
	defer lock.Unlock()

	_, err := e.store.Update(ctx, itemID, func(it *catalog.Item) error {
		it.Disable()
		return nil
	})
	return err
}

// DeriveUsedVariant creates and persists a used listing from a base item.
func (e *Engine) DeriveUsedVariant(ctx context.Context, baseItemID string, mileage int, discount float64) (*catalog.Item, error) {
	if baseItemID == "" {
		return nil, catalog.ErrInvalidID
	}

	base, err := e.store.Get(ctx, baseItemID)
	if err != nil {
		return nil, err
	}

	variant, err := catalog.DeriveUsedVariant(base, baseItemID+"-used-"+e.ids.NewID(), mileage, discount)
	if err != nil {
		return nil, err
	}
	if err := e.store.Put(ctx, variant); err != nil {
		return nil, err
	}

	e.publish(ctx, catalog.NewItemAddedEvent(variant.ID))
	return variant, nil
}

func (e *Engine) publish(ctx context.Context, ev event.Event) {
	if e.pub == nil {
		return
	}
	if err := e.pub.Publish(ctx, ev); err != nil {
		logctx.FromOr(ctx, e.log).Warn("event_publish_failed",
			observability.F("event", ev.EventName()),
			observability.F("error", err.Error()),
		)
	}
}
