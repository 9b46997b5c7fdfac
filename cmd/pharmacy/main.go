package main

import (
	"context"
	"log/slog"
	"os"

	"pharmacy/config"
	"pharmacy/internal/delivery"
	"pharmacy/internal/delivery/api"
	"pharmacy/internal/delivery/api/middleware"
	"pharmacy/internal/delivery/api/router"
	"pharmacy/internal/delivery/api/router/handler"
	"pharmacy/internal/domain/repository"
	"pharmacy/internal/errors"
	"pharmacy/internal/infra/auth"
	"pharmacy/internal/infra/cache"
	logs "pharmacy/internal/infra/log"
	"pharmacy/internal/infra/persistence/memory"
	"pharmacy/internal/infra/persistence/postgres"
	"pharmacy/internal/usecase"
	"pharmacy/internal/usecase/impl"

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
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			bootstrapAccount,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		cache.New,
	)
}

type storeParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type storeResult struct {
	fx.Out

	UserRepo repository.UserRepository
	DrugRepo repository.DrugRepository
}

// newStore picks the record store named by storage.driver.
func newStore(params storeParams) (storeResult, error) {
	if params.Config.Storage.Driver == config.StorageDriverMemory {
		params.Logger.Warn("Using in-memory storage, records are lost on shutdown")

		return storeResult{
			UserRepo: memory.NewUserRepository(),
			DrugRepo: memory.NewDrugRepository(),
		}, nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return storeResult{}, err
	}

	return storeResult{
		UserRepo: postgres.NewUserRepository(db),
		DrugRepo: postgres.NewDrugRepository(db),
	}, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newStore,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			router.NewRuleSet,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewDrugService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewDrugHandler,
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
		),
	)
}

// bootstrapAccount creates auth.bootstrap.username on start when it is configured
// and missing, so closed-registration deployments have a first user.
func bootstrapAccount(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger, userUC usecase.UserUsecase) {
	account := cfg.Auth.Bootstrap
	if account.Username == "" {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			created, err := userUC.EnsureUser(ctx, &usecase.RegisterUserInput{
				Username: account.Username,
				Password: account.Password,
			})
			if err != nil {
				return errors.Wrap(err, "failed to bootstrap account")
			}
			if created {
				logger.Info("Bootstrap account created", slog.String("username", account.Username))
			}

			return nil
		},
	})
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
