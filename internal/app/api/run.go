// Package api boots the marketplace orders HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	catalogclient "github.com/feriahub/marketplace-api/internal/clients/http/catalog"
	notificationsclient "github.com/feriahub/marketplace-api/internal/clients/http/notifications"
	externalcatalog "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/external/catalog"
	externalnotifier "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/external/notifier"
	ordershttp "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/http"
	ordersmemory "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/feriahub/marketplace-api/internal/domains/orders/application"
	ordersports "github.com/feriahub/marketplace-api/internal/domains/orders/ports"
	"github.com/feriahub/marketplace-api/internal/platform/migrations"
	platformobservability "github.com/feriahub/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/feriahub/marketplace-api/internal/platform/postgres"
	sharederrors "github.com/feriahub/marketplace-api/internal/shared/errors"
)

const serviceName = "marketplace-orders-api"

// Run boots the HTTP API with observability, persistence, external services
// and workflows wired.
func Run(ctx context.Context) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := LoadConfig()

	repo, cleanupRepo, err := buildOrderRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepo()
	catalog, err := buildCatalog(cfg, logger)
	if err != nil {
		return err
	}
	notifier, err := buildNotifier(cfg, logger)
	if err != nil {
		return err
	}

	coreService := ordersapp.NewService(repo, catalog, notifier, ordersapp.WithLogger(logger))
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orchestrator ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := ConnectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = ordersworkflows.NewTemporalOrderWorkflows(temporalClient, orderService)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	responder := sharederrors.NewResponder("", ordershttp.OrderErrorMapper)
	ordersAPI := ordershttp.NewOrdersAPI(orderService, orchestrator, responder)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(ordershttp.ActorMiddleware())
	ordershttp.RegisterHealth(router)
	ordershttp.RegisterRoutes(router.Group("/"), ordersAPI)

	addr := ":" + cfg.Port
	logger.Info("marketplace orders API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("marketplace orders API exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func(), error) {
	db, cleanup := platformpostgres.MaybeConnect(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup, nil
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), cleanup, nil
}

func buildCatalog(cfg Config, logger *slog.Logger) (ordersports.Catalog, error) {
	if cfg.CatalogBaseURL == "" {
		logger.Warn("CATALOG_BASE_URL not set, using seeded in-memory catalog")
		return seededCatalog(), nil
	}
	c, err := catalogclient.NewClient(cfg.CatalogBaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("configure catalog client: %w", err)
	}
	return externalcatalog.NewAdapter(c), nil
}

func buildNotifier(cfg Config, logger *slog.Logger) (ordersports.Notifier, error) {
	if cfg.NotificationsBaseURL == "" {
		logger.Warn("NOTIFICATIONS_BASE_URL not set, recording notifications in memory")
		return ordersmemory.NewNotifier(), nil
	}
	c, err := notificationsclient.NewClient(cfg.NotificationsBaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("configure notifications client: %w", err)
	}
	return externalnotifier.NewAdapter(c), nil
}

// seededCatalog keeps local development usable without the catalog service.
func seededCatalog() *ordersmemory.Catalog {
	catalog := ordersmemory.NewCatalog()
	catalog.Seed(
		ordersports.Product{ID: "prod-mate-imperial", Name: "Mate Imperial", SellerID: "seller-1", Stock: 25, PriceCents: 1850_00},
		ordersports.Product{ID: "prod-bombilla-alpaca", Name: "Bombilla de Alpaca", SellerID: "seller-1", Stock: 40, PriceCents: 650_00},
		ordersports.Product{ID: "prod-yerba-organica", Name: "Yerba Organica 1kg", SellerID: "seller-2", Stock: 120, PriceCents: 420_00},
	)
	return catalog
}

// ConnectTemporalClient dials the configured Temporal cluster with tracing and
// structured logging attached. Shared by the API and the worker binary.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
