package app

import (
	"time"

	"go.uber.org/fx"

	"exusiai.dev/activity-backend/internal/app/appconfig"
	"exusiai.dev/activity-backend/internal/app/appcontext"
	"exusiai.dev/activity-backend/internal/controller"
	"exusiai.dev/activity-backend/internal/infra"
	"exusiai.dev/activity-backend/internal/model/cache"
	"exusiai.dev/activity-backend/internal/pkg/logger"
	"exusiai.dev/activity-backend/internal/repo"
	"exusiai.dev/activity-backend/internal/server"
	"exusiai.dev/activity-backend/internal/service"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),
	}

	return append(append(baseOpts, Core()...), additionalOpts...)
}

// Core is the application graph on top of the infrastructure: it expects the
// config, *bun.DB, *redis.Client, *redsync.Redsync and the NATS connection to
// be provided by the caller.
func Core() []fx.Option {
	return []fx.Option{
		// Servers
		server.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Global Singleton Inits: Keep those before controllers to ensure they are initialized
		// before controllers are registered as controllers are also fx#Invoke functions which
		// are called in the order of their registration.
		fx.Invoke(cache.Initialize),

		// Controllers
		controller.Module(),

		// fx Extra Options
		fx.StartTimeout(1 * time.Minute),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
