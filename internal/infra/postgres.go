package infra

import (
	"context"
	"database/sql"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/extra/bunotel"
	"go.uber.org/fx"

	"exusiai.dev/activity-backend/internal/app/appconfig"
)

func Postgres(lc fx.Lifecycle, conf *appconfig.Config) (*bun.DB, error) {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(conf.PostgresDSN)))
	pgdb.SetMaxOpenConns(conf.PostgresMaxOpenConns)
	pgdb.SetMaxIdleConns(conf.PostgresMaxIdleConns)
	pgdb.SetConnMaxLifetime(conf.PostgresConnMaxLifeTime)
	pgdb.SetConnMaxIdleTime(conf.PostgresConnMaxIdleTime)

	db := bun.NewDB(pgdb, pgdialect.New())
	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName("activities")))
	if conf.DevMode {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(conf.BunDebugVerbose),
		))
	}

	err := retry.Do(
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			return db.PingContext(ctx)
		},
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Str("evt.name", "infra.postgres.ping_retry").
				Err(err).
				Uint("attempt", n+1).
				Msg("failed to ping postgres, retrying")
		}),
	)
	if err != nil {
		log.Error().Err(err).Msg("infra: postgres: failed to ping database")
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return db, nil
}
