package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/feriahub/marketplace-api/internal/app/api"
	catalogclient "github.com/feriahub/marketplace-api/internal/clients/http/catalog"
	notificationsclient "github.com/feriahub/marketplace-api/internal/clients/http/notifications"
	externalcatalog "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/external/catalog"
	externalnotifier "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/external/notifier"
	ordersmemory "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/feriahub/marketplace-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/feriahub/marketplace-api/internal/domains/orders/application"
	ordersports "github.com/feriahub/marketplace-api/internal/domains/orders/ports"
	"github.com/feriahub/marketplace-api/internal/platform/migrations"
	platformobservability "github.com/feriahub/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/feriahub/marketplace-api/internal/platform/postgres"
	orderactivities "github.com/feriahub/marketplace-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/feriahub/marketplace-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "marketplace-orders-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	cfg := api.LoadConfig()

	repo, cleanupRepo := buildRepository(ctx, cfg, logger)
	defer cleanupRepo()
	orderService := ordersobs.New(
		ordersapp.NewService(repo, buildCatalog(cfg, logger), buildNotifier(cfg, logger), ordersapp.WithLogger(logger)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService)

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow,
		workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder,
		activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening",
		slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue),
		slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
	}
}

func buildRepository(ctx context.Context, cfg api.Config, logger *slog.Logger) (ordersports.Repository, func()) {
	db, cleanup := platformpostgres.MaybeConnect(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return ordersmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to apply migrations", slog.String("error", err.Error()))
		cleanup()
		os.Exit(1)
	}
	return orderspostgres.NewRepository(db), cleanup
}

func buildCatalog(cfg api.Config, logger *slog.Logger) ordersports.Catalog {
	if cfg.CatalogBaseURL == "" {
		logger.Warn("CATALOG_BASE_URL not set, worker using in-memory catalog")
		return ordersmemory.NewCatalog()
	}
	c, err := catalogclient.NewClient(cfg.CatalogBaseURL, nil)
	if err != nil {
		logger.Error("failed to configure catalog client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return externalcatalog.NewAdapter(c)
}

func buildNotifier(cfg api.Config, logger *slog.Logger) ordersports.Notifier {
	if cfg.NotificationsBaseURL == "" {
		logger.Warn("NOTIFICATIONS_BASE_URL not set, worker recording notifications in memory")
		return ordersmemory.NewNotifier()
	}
	c, err := notificationsclient.NewClient(cfg.NotificationsBaseURL, nil)
	if err != nil {
		logger.Error("failed to configure notifications client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return externalnotifier.NewAdapter(c)
}
