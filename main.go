package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcatalog "github.com/motorhall/showroom/internal/application/catalog"
	appsales "github.com/motorhall/showroom/internal/application/sales"
	apptestdrive "github.com/motorhall/showroom/internal/application/testdrive"
	"github.com/motorhall/showroom/internal/clock"
	"github.com/motorhall/showroom/internal/config"
	domcatalog "github.com/motorhall/showroom/internal/domain/catalog"
	domsales "github.com/motorhall/showroom/internal/domain/sales"
	"github.com/motorhall/showroom/internal/infrastructure/audit"
	"github.com/motorhall/showroom/internal/infrastructure/eventbus"
	httptransport "github.com/motorhall/showroom/internal/infrastructure/http"
	"github.com/motorhall/showroom/internal/infrastructure/id"
	"github.com/motorhall/showroom/internal/infrastructure/memory"
	obsprovider "github.com/motorhall/showroom/internal/infrastructure/observability"
	"github.com/motorhall/showroom/internal/infrastructure/observability/oteltrace"
	"github.com/motorhall/showroom/internal/infrastructure/observability/prometrics"
	"github.com/motorhall/showroom/internal/infrastructure/observability/zaplogger"
	"github.com/motorhall/showroom/internal/infrastructure/redisstore"
	"github.com/motorhall/showroom/internal/observability"
	"github.com/motorhall/showroom/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)
	log := zaplogger.Wrap(baseLogger)

	registry := prometrics.New(cfg.ServiceName, "")
	tel := obsprovider.New(
		oteltrace.New(cfg.ServiceName),
		log,
		map[observability.MetricKey]observability.Counter{
			observability.MPurchaseRequests: registry.Counter(
				string(observability.MPurchaseRequests),
				"Total number of purchase attempts.",
				"use_case", "outcome",
			),
			observability.MEventsPublished: registry.Counter(
				string(observability.MEventsPublished),
				"Total number of events published on the bus.",
				"event",
			),
			observability.MHTTPRequests: registry.Counter(
				string(observability.MHTTPRequests),
				"Total number of HTTP requests.",
				"method", "path", "status",
			),
		},
		map[observability.MetricKey]observability.Histogram{
			observability.MPurchaseDuration: registry.Histogram(
				string(observability.MPurchaseDuration),
				"Duration of purchase execution in seconds.",
				prometheus.DefBuckets,
				"use_case",
			),
			observability.MHTTPRequestDuration: registry.Histogram(
				string(observability.MHTTPRequestDuration),
				"Duration of HTTP requests in seconds.",
				prometheus.DefBuckets,
				"method", "path",
			),
		},
	)

	bus := eventbus.New(log, tel.Metrics())

	var (
		store  domcatalog.Store
		ledger domsales.Ledger
	)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = client.Close() }()
		store = redisstore.NewCatalogStore(client)
		ledger = redisstore.NewSalesLedger(client)
		log.Info("store_backend_selected", observability.F("backend", "redis"), observability.F("addr", cfg.RedisAddr))
	} else {
		store = memory.NewCatalogStore()
		ledger = memory.NewSalesLedger()
		log.Info("store_backend_selected", observability.F("backend", "memory"))
	}

	vip := memory.NewAllowListVIP(cfg.VIPAllowList...)
	ids := id.NewUUIDGenerator()

	engine := appsales.NewEngine(store, ledger, vip, ids, bus,
		appsales.WithIdentifierRetries(cfg.PlateRetryMax),
		appsales.WithLogger(log),
	)
	purchaseUC := appsales.NewPurchaseUseCase(engine, tel)
	catalogService := appcatalog.NewService(store)
	testdrives := apptestdrive.NewManager(clock.NewSystem(), clock.NewSystemScheduler(), bus,
		apptestdrive.WithSessionTTL(cfg.TestDriveTTL),
		apptestdrive.WithLogger(log),
	)

	auditor := audit.New(bus, log)
	auditor.Register()

	if cfg.SeedCatalog {
		seedCatalog(context.Background(), engine, log)
	}

	handler := httptransport.NewHandler(catalogService, purchaseUC, engine, ledger, testdrives)
	mw := httptransport.ObservabilityMiddleware(log, tel)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", mw(handler.Router()))

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("http_server_start", observability.F("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", observability.F("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http_server_shutdown_error", observability.F("error", err.Error()))
	} else {
		log.Info("http_server_stopped")
	}
}

// seedCatalog loads a small built-in showroom so a fresh instance is usable
// before any admin calls. Existing items are left alone.
func seedCatalog(ctx context.Context, engine *appsales.Engine, log observability.Logger) {
	seeds := []struct {
		id, name, desc string
		category       domcatalog.Category
		price          int64
		stock          int
		vipOnly        bool
	}{
		{"sultan", "Sultan RS", "Rally-bred four door", "sports", 795000, 3, false},
		{"blista", "Blista Compact", "Cheap and cheerful hatchback", "compact", 42000, 8, false},
		{"bison", "Bison", "Full-size workhorse pickup", "truck", 63000, 5, false},
		{"infernus", "Infernus", "Flagship mid-engine supercar", "super", 2450000, 1, true},
	}

	for _, s := range seeds {
		item, err := domcatalog.New(s.id, s.name, s.category, s.price, s.stock)
		if err != nil {
			log.Warn("seed_item_invalid", observability.F("item_id", s.id), observability.F("error", err.Error()))
			continue
		}
		item.Description = s.desc
		item.VIPOnly = s.vipOnly
		if err := engine.AddItem(ctx, item); err != nil {
			log.Warn("seed_item_failed", observability.F("item_id", s.id), observability.F("error", err.Error()))
		}
	}
	log.Info("catalog_seeded", observability.F("items", len(seeds)))
}
