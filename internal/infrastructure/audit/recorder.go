package audit

import (
	"context"

	"github.com/motorhall/showroom/internal/domain/catalog"
	"github.com/motorhall/showroom/internal/domain/event"
	"github.com/motorhall/showroom/internal/domain/sales"
	"github.com/motorhall/showroom/internal/domain/testdrive"
	"github.com/motorhall/showroom/internal/observability"
)

// Recorder subscribes to all storefront events and writes a structured audit
// line per event. It is a live audit trail, not the ledger; the ledger alone
// is durable.
type Recorder struct {
	subscriber event.Subscriber
	log        observability.Logger
}

func New(subscriber event.Subscriber, logger observability.Logger) *Recorder {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Recorder{
		subscriber: subscriber,
		log:        logger.With(observability.F("component", "audit")),
	}
}

// Register attaches the recorder to every event kind it knows about.
func (r *Recorder) Register() {
	names := []string{
		catalog.StockChangedEvent{}.EventName(),
		catalog.PriceChangedEvent{}.EventName(),
		catalog.ItemAddedEvent{}.EventName(),
		sales.SaleCommittedEvent{}.EventName(),
		testdrive.SessionExpiredEvent{}.EventName(),
	}
	for _, name := range names {
		r.subscriber.Subscribe(name, r.record)
	}
}

func (r *Recorder) record(ctx context.Context, e event.Event) error {
	_ = ctx

	switch evt := e.(type) {
	case catalog.StockChangedEvent:
		r.log.Info("audit_stock_changed",
			observability.F("item_id", evt.ItemID),
			observability.F("stock", evt.Stock),
		)
	case catalog.PriceChangedEvent:
		r.log.Info("audit_price_changed",
			observability.F("item_id", evt.ItemID),
			observability.F("price", evt.Price),
		)
	case catalog.ItemAddedEvent:
		r.log.Info("audit_item_added",
			observability.F("item_id", evt.ItemID),
		)
	case sales.SaleCommittedEvent:
		r.log.Info("audit_sale_committed",
			observability.F("sale_id", evt.SaleID),
			observability.F("item_id", evt.ItemID),
			observability.F("buyer_id", evt.BuyerID),
			observability.F("price_paid", evt.PricePaid),
		)
	case testdrive.SessionExpiredEvent:
		r.log.Info("audit_testdrive_expired",
			observability.F("item_id", evt.ItemID),
			observability.F("requester_id", evt.RequesterID),
		)
	default:
		r.log.Debug("audit_event",
			observability.F("event", e.EventName()),
		)
	}
	return nil
}
