package sales

import "time"

// SaleCommittedEvent is emitted after the stock decrement and ledger append
// have both succeeded.
type SaleCommittedEvent struct {
	SaleID     uint64
	ItemID     string
	BuyerID    string
	PricePaid  int64
	OccurredAt time.Time
}

func (SaleCommittedEvent) EventName() string { return "sales.committed" }

func NewSaleCommittedEvent(sale *Sale) SaleCommittedEvent {
	return SaleCommittedEvent{
		SaleID:     sale.ID,
		ItemID:     sale.ItemID,
		BuyerID:    sale.BuyerID,
		PricePaid:  sale.PricePaid,
		OccurredAt: time.Now().UTC(),
	}
}
