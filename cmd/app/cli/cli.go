package cli

import (
	"context"

	"go.uber.org/fx"

	"exusiai.dev/activity-backend/internal/app"
	"exusiai.dev/activity-backend/internal/app/appcontext"
)

// Start builds the application graph for a command and populates its deps.
// The returned stop function releases the graph's resources.
func Start(ctx context.Context, module fx.Option) (stop func() error, err error) {
	fxApp := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := fxApp.Start(ctx); err != nil {
		return nil, err
	}
	return func() error {
		return fxApp.Stop(context.Background())
	}, nil
}

// Deps populates a value of T from the application graph and runs fn with it.
func Deps[T any](ctx context.Context, fn func(ctx context.Context, deps T) error) error {
	var deps T
	stop, err := Start(ctx, fx.Populate(&deps))
	if err != nil {
		return err
	}
	defer stop()

	return fn(ctx, deps)
}
