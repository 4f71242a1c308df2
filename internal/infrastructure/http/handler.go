package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	appcatalog "github.com/motorhall/showroom/internal/application/catalog"
	appsales "github.com/motorhall/showroom/internal/application/sales"
	apptestdrive "github.com/motorhall/showroom/internal/application/testdrive"
	domcatalog "github.com/motorhall/showroom/internal/domain/catalog"
	domsales "github.com/motorhall/showroom/internal/domain/sales"
	domtestdrive "github.com/motorhall/showroom/internal/domain/testdrive"
)

// Handler is a thin JSON surface over the engine. It is wiring for local use
// and debugging, not a committed wire contract.
type Handler struct {
	catalogService *appcatalog.Service
	purchase       *appsales.PurchaseUseCase
	engine         *appsales.Engine
	ledger         domsales.Ledger
	testdrives     *apptestdrive.Manager
}

func NewHandler(
	catalogSvc *appcatalog.Service,
	purchase *appsales.PurchaseUseCase,
	engine *appsales.Engine,
	ledger domsales.Ledger,
	testdrives *apptestdrive.Manager,
) *Handler {
	return &Handler{
		catalogService: catalogSvc,
		purchase:       purchase,
		engine:         engine,
		ledger:         ledger,
		testdrives:     testdrives,
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/catalog", h.method(http.MethodGet, h.handleCatalogView))
	mux.HandleFunc("/purchase", h.method(http.MethodPost, h.handlePurchase))
	mux.HandleFunc("/sales", h.method(http.MethodGet, h.handleListSales))
	mux.HandleFunc("/admin/stock", h.method(http.MethodPost, h.handleAdjustStock))
	mux.HandleFunc("/admin/price", h.method(http.MethodPost, h.handleAdjustPrice))
	mux.HandleFunc("/admin/items", h.method(http.MethodPost, h.handleAddItem))
	mux.HandleFunc("/admin/items/disable", h.method(http.MethodPost, h.handleDisableItem))
	mux.HandleFunc("/admin/variants", h.method(http.MethodPost, h.handleDeriveVariant))
	mux.HandleFunc("/testdrive/start", h.method(http.MethodPost, h.handleStartTestDrive))
	mux.HandleFunc("/testdrive/end", h.method(http.MethodPost, h.handleEndTestDrive))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

type itemResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category"`
	Price       int64             `json:"price"`
	Stock       int               `json:"stock"`
	IsUsed      bool              `json:"is_used"`
	Mileage     int               `json:"mileage,omitempty"`
	VIPOnly     bool              `json:"vip_only"`
	Specs       map[string]string `json:"specs,omitempty"`
}

func toItemResponse(item *domcatalog.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    string(item.Category),
		Price:       item.BasePrice,
		Stock:       item.Stock,
		IsUsed:      item.IsUsed,
		Mileage:     item.Mileage,
		VIPOnly:     item.VIPOnly,
		Specs:       item.Specs,
	}
}

func (h *Handler) handleCatalogView(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items, err := h.catalogService.View(r.Context(), criteria)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func criteriaFromQuery(r *http.Request) (domcatalog.Criteria, error) {
	q := r.URL.Query()
	criteria := domcatalog.Criteria{
		Search:      q.Get("q"),
		SortBy:      domcatalog.SortField(q.Get("sort")),
		Order:       domcatalog.SortOrder(q.Get("order")),
		InStockOnly: q.Get("in_stock") == "true",
	}
	for _, cat := range q["category"] {
		criteria.Categories = append(criteria.Categories, domcatalog.Category(cat))
	}
	if raw := q.Get("price_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, errors.New("invalid price_min")
		}
		criteria.PriceMin = &v
	}
	if raw := q.Get("price_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, errors.New("invalid price_max")
		}
		criteria.PriceMax = &v
	}
	return criteria, nil
}

type purchaseRequest struct {
	ItemID        string `json:"item_id"`
	BuyerID       string `json:"buyer_id"`
	ExpectedPrice int64  `json:"expected_price"`
}

type purchaseResponse struct {
	SaleID    uint64 `json:"sale_id"`
	ItemID    string `json:"item_id"`
	PricePaid int64  `json:"price_paid"`
	Plate     string `json:"plate"`
	VIN       string `json:"vin"`
}

func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sale, err := h.purchase.Execute(r.Context(), req.ItemID, req.BuyerID, req.ExpectedPrice)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, purchaseResponse{
		SaleID:    sale.ID,
		ItemID:    sale.ItemID,
		PricePaid: sale.PricePaid,
		Plate:     sale.Plate,
		VIN:       sale.VIN,
	})
}

type saleResponse struct {
	ID        uint64    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Category  string    `json:"category"`
	BuyerID   string    `json:"buyer_id"`
	PricePaid int64     `json:"price_paid"`
	Plate     string    `json:"plate"`
	VIN       string    `json:"vin"`
	SoldAt    time.Time `json:"sold_at"`
}

func (h *Handler) handleListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.ledger.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]saleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, saleResponse{
			ID:        s.ID,
			ItemID:    s.ItemID,
			ItemName:  s.ItemName,
			Category:  s.Category,
			BuyerID:   s.BuyerID,
			PricePaid: s.PricePaid,
			Plate:     s.Plate,
			VIN:       s.VIN,
			SoldAt:    s.SoldAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type adjustStockRequest struct {
	ItemID string `json:"item_id"`
	Delta  int    `json:"delta"`
}

type adjustStockResponse struct {
	ItemID string `json:"item_id"`
	Stock  int    `json:"stock"`
}

func (h *Handler) handleAdjustStock(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	stock, err := h.engine.AdjustStock(r.Context(), req.ItemID, req.Delta)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adjustStockResponse{ItemID: req.ItemID, Stock: stock})
}

type adjustPriceRequest struct {
	ItemID string `json:"item_id"`
	Price  int64  `json:"price"`
}

func (h *Handler) handleAdjustPrice(w http.ResponseWriter, r *http.Request) {
	var req adjustPriceRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.engine.AdjustPrice(r.Context(), req.ItemID, req.Price); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addItemRequest struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Price       int64             `json:"price"`
	Stock       int               `json:"stock"`
	VIPOnly     bool              `json:"vip_only"`
	Specs       map[string]string `json:"specs"`
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := domcatalog.New(req.ID, req.Name, domcatalog.Category(req.Category), req.Price, req.Stock)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	item.Description = req.Description
	item.VIPOnly = req.VIPOnly
	item.Specs = req.Specs

	if err := h.engine.AddItem(r.Context(), item); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

type disableItemRequest struct {
	ItemID string `json:"item_id"`
}

func (h *Handler) handleDisableItem(w http.ResponseWriter, r *http.Request) {
	var req disableItemRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.engine.DisableItem(r.Context(), req.ItemID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type deriveVariantRequest struct {
	BaseItemID string  `json:"base_item_id"`
	Mileage    int     `json:"mileage"`
	Discount   float64 `json:"discount"`
}

func (h *Handler) handleDeriveVariant(w http.ResponseWriter, r *http.Request) {
	var req deriveVariantRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	variant, err := h.engine.DeriveUsedVariant(r.Context(), req.BaseItemID, req.Mileage, req.Discount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(variant))
}

type startTestDriveRequest struct {
	ItemID          string `json:"item_id"`
	RequesterID     string `json:"requester_id"`
	DurationSeconds int    `json:"duration_seconds"`
}

type startTestDriveResponse struct {
	ItemID      string    `json:"item_id"`
	RequesterID string    `json:"requester_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (h *Handler) handleStartTestDrive(w http.ResponseWriter, r *http.Request) {
	var req startTestDriveRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, err := h.testdrives.Start(r.Context(), req.ItemID, req.RequesterID,
		time.Duration(req.DurationSeconds)*time.Second)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, startTestDriveResponse{
		ItemID:      session.ItemID,
		RequesterID: session.RequesterID,
		ExpiresAt:   session.ExpiresAt,
	})
}

type endTestDriveRequest struct {
	RequesterID string `json:"requester_id"`
}

func (h *Handler) handleEndTestDrive(w http.ResponseWriter, r *http.Request) {
	var req endTestDriveRequest
	if err := decodeJSON(r.Context(), r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.testdrives.End(r.Context(), req.RequesterID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) method(method string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		handler(w, r)
	}
}

func decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	_ = ctx
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcatalog.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domcatalog.ErrInvalidID),
		errors.Is(err, domcatalog.ErrInvalidPrice),
		errors.Is(err, domcatalog.ErrInvalidStock),
		errors.Is(err, domcatalog.ErrInvalidDiscount),
		errors.Is(err, domcatalog.ErrInvalidMileage),
		errors.Is(err, domsales.ErrInvalidBuyer),
		errors.Is(err, domtestdrive.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domcatalog.ErrOutOfStock),
		errors.Is(err, domsales.ErrPriceMismatch),
		errors.Is(err, domsales.ErrConcurrentConflict),
		errors.Is(err, domtestdrive.ErrAlreadyActive),
		errors.Is(err, domtestdrive.ErrNotActive):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, domsales.ErrNotEligible):
		writeError(w, http.StatusForbidden, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
