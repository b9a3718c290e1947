package main

import (
	"context"
	"log/slog"
	"os"

	"quest/config"
	"quest/internal/delivery"
	"quest/internal/delivery/api"
	"quest/internal/delivery/api/router/handler"
	"quest/internal/delivery/worker"
	workerhandler "quest/internal/delivery/worker/handler"
	"quest/internal/domain/repository"
	"quest/internal/domain/service"
	"quest/internal/infra/fixture"
	logs "quest/internal/infra/log"
	"quest/internal/infra/metrics"
	"quest/internal/infra/persistence/sqlite"
	"quest/internal/infra/pubsub"
	"quest/internal/infra/remote"
	"quest/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.NewRegistry,
		fx.Annotate(
			metrics.NewHybridMetrics,
			fx.As(new(service.TierMetrics)),
		),
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.New,
			func(store *sqlite.Store) repository.LocalStore { return store },
			sqlite.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			remote.New,
			fixture.New,
		),
		pubsub.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewReplicator,
			impl.NewHybridService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAdventurerHandler,
			handler.NewRegionHandler,
			handler.NewAdventureHandler,
			handler.NewSyncHandler,
			workerhandler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
