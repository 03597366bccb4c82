package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/activity-backend/cmd/app/cli"
	"exusiai.dev/activity-backend/internal/model/cache"
)

type CommandDeps struct {
	fx.In

	// the graph initializes the caches on top of this client
	Redis *redis.Client
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "manage the redis caches",
		Subcommands: []*cli.Command{
			{
				Name:  "flush",
				Usage: "flush one cache by name, or every cache when no name is given",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "cache to flush, e.g. user#apiKey or activityStatus#id",
					},
				},
				Action: func(c *cli.Context) error {
					return cliapp.Deps(c.Context, func(ctx context.Context, deps CommandDeps) error {
						return flush(c.String("name"))
					})
				},
			},
		},
	}
}

func flush(name string) error {
	if name == "" {
		if err := cache.FlushAll(); err != nil {
			return err
		}
	} else if err := cache.Delete(name); err != nil {
		return err
	}

	log.Info().
		Str("evt.name", "cli.cache.flushed").
		Str("name", name).
		Msg("cache flushed")
	return nil
}
