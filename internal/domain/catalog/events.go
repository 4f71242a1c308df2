package catalog

import "time"

// StockChangedEvent is emitted whenever an item's stock level moves, whether
// by purchase or by admin adjustment.
type StockChangedEvent struct {
	ItemID     string
	Stock      int
	OccurredAt time.Time
}

func (StockChangedEvent) EventName() string { return "catalog.stock_changed" }

func NewStockChangedEvent(itemID string, stock int) StockChangedEvent {
	return StockChangedEvent{
		ItemID:     itemID,
		Stock:      stock,
		OccurredAt: time.Now().UTC(),
	}
}

// PriceChangedEvent is emitted when an item is repriced. Committed sales keep
// the price they were charged.
type PriceChangedEvent struct {
	ItemID     string
	Price      int64
	OccurredAt time.Time
}

func (PriceChangedEvent) EventName() string { return "catalog.price_changed" }

func NewPriceChangedEvent(itemID string, price int64) PriceChangedEvent {
	return PriceChangedEvent{
		ItemID:     itemID,
		Price:      price,
		OccurredAt: time.Now().UTC(),
	}
}

// ItemAddedEvent is emitted when a new listing enters the catalog, including
// derived used variants.
type ItemAddedEvent struct {
	ItemID     string
	OccurredAt time.Time
}

func (ItemAddedEvent) EventName() string { return "catalog.item_added" }

func NewItemAddedEvent(itemID string) ItemAddedEvent {
	return ItemAddedEvent{
		ItemID:     itemID,
		OccurredAt: time.Now().UTC(),
	}
}
