package seed

import (
	"context"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "exusiai.dev/activity-backend/cmd/app/cli"
	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/repo"
	"exusiai.dev/activity-backend/internal/service"
)

type CommandDeps struct {
	fx.In

	UserService  *service.User
	UserRepo     *repo.User
	StatusRepo   *repo.Lookup[model.ActivityStatus]
	PriorityRepo *repo.Lookup[model.ActivityPriority]
	TypeRepo     *repo.Lookup[model.ActivityType]
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert the default activity statuses, priorities and types, and a bootstrap user",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "username",
				Usage: "username of the bootstrap user",
				Value: "admin",
			},
			&cli.StringFlag{
				Name:  "locale",
				Usage: "locale of the bootstrap user",
				Value: "en",
			},
		},
		Action: func(c *cli.Context) error {
			return cliapp.Deps(c.Context, func(ctx context.Context, deps CommandDeps) error {
				return run(ctx, deps, c.String("username"), c.String("locale"))
			})
		},
	}
}
