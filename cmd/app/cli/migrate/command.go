package migrate

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/activity-backend/cmd/app/cli"
	"exusiai.dev/activity-backend/internal/repo"
)

type CommandDeps struct {
	fx.In

	DB *bun.DB
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the database schema",
		Action: func(c *cli.Context) error {
			return cliapp.Deps(c.Context, run)
		},
	}
}

func run(ctx context.Context, deps CommandDeps) error {
	if err := repo.CreateSchema(ctx, deps.DB); err != nil {
		return err
	}

	log.Info().
		Str("evt.name", "cli.migrate.done").
		Int("tables", len(repo.Models)).
		Msg("schema is up to date")
	return nil
}
