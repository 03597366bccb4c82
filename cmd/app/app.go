package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"exusiai.dev/activity-backend/cmd/app/cli/cache"
	"exusiai.dev/activity-backend/cmd/app/cli/migrate"
	"exusiai.dev/activity-backend/cmd/app/cli/seed"
	"exusiai.dev/activity-backend/cmd/app/server"
	"exusiai.dev/activity-backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "activitybackend",
		Description: "The Activity admin API. Built with Go, fiber, bun and go.uber.org/fx. Uses Redis for caching and idempotency and optionally NATS for change events.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			migrate.Command(),
			seed.Command(),
			cache.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
