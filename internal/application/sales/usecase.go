package sales

import (
	"context"
	"errors"
	"time"

	"github.com/motorhall/showroom/internal/domain/catalog"
	domsales "github.com/motorhall/showroom/internal/domain/sales"
	"github.com/motorhall/showroom/internal/observability"
	"github.com/motorhall/showroom/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	salesService    = "sales-engine"
	useCasePurchase = "sales.purchase"
	purchaseSpan    = "UC.Purchase"
)

// PurchaseUseCase wraps Engine.Purchase with tracing, metrics, and logging.
type PurchaseUseCase struct {
	engine       *Engine
	log          observability.Logger
	tracer       observability.Tracer
	reqCounter   observability.Counter
	durHistogram observability.Histogram
}

func NewPurchaseUseCase(engine *Engine, tel observability.Observability) *PurchaseUseCase {
	if tel == nil {
		tel = observability.NopObservability()
	}
	return &PurchaseUseCase{
		engine: engine,
		log: tel.Logger().With(
			observability.F("service", salesService),
		),
		tracer:       tel.Tracer(),
		reqCounter:   tel.Metrics().Counter(observability.MPurchaseRequests),
		durHistogram: tel.Metrics().Histogram(observability.MPurchaseDuration),
	}
}

// Execute runs one purchase attempt and records its outcome.
func (uc *PurchaseUseCase) Execute(ctx context.Context, itemID, buyerID string, expectedPrice int64) (_ *domsales.Sale, err error) {
	logger := logctx.FromOr(ctx, uc.log).With(
		observability.F("use_case", useCasePurchase),
		observability.F("item_id", itemID),
		observability.F("buyer_id", buyerID),
	)

	ctx, span := uc.tracer.Start(ctx, purchaseSpan,
		attribute.String("use_case", useCasePurchase),
		attribute.String("item.id", itemID),
		attribute.String("buyer.id", buyerID),
		attribute.Int64("item.expected_price", expectedPrice),
	)
	start := time.Now()
	outcome := "success"

	defer func() {
		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, outcome)
			} else {
				span.SetStatus(codes.Ok, "OK")
			}
			span.End()
		}

		latency := time.Since(start).Seconds()
		if uc.reqCounter != nil {
			uc.reqCounter.Add(1,
				observability.L("use_case", useCasePurchase),
				observability.L("outcome", outcome),
			)
		}
		if uc.durHistogram != nil {
			uc.durHistogram.Observe(latency,
				observability.L("use_case", useCasePurchase),
			)
		}

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("latency_seconds", latency),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("purchase_done", fields...)
	}()

	sale, err := uc.engine.Purchase(ctx, itemID, buyerID, expectedPrice)
	if err != nil {
		outcome = outcomeForError(err)
		return nil, err
	}

	if span != nil {
		span.AddEvent("sale.committed",
			trace.WithAttributes(
				attribute.Int64("sale.id", int64(sale.ID)),
				attribute.String("sale.plate", sale.Plate),
			),
		)
	}
	return sale, nil
}

func outcomeForError(err error) string {
	switch {
	case errors.Is(err, catalog.ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, catalog.ErrNotFound):
		return "not_found"
	case errors.Is(err, domsales.ErrPriceMismatch):
		return "price_mismatch"
	case errors.Is(err, domsales.ErrNotEligible):
		return "not_eligible"
	case errors.Is(err, domsales.ErrConcurrentConflict):
		return "concurrent_conflict"
	default:
		return "error"
	}
}
