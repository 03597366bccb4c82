// Package testentry starts the application core on in-memory SQLite and
// miniredis for package tests.
package testentry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"exusiai.dev/activity-backend/internal/app"
	"exusiai.dev/activity-backend/internal/app/appconfig"
	"exusiai.dev/activity-backend/internal/app/appcontext"
	"exusiai.dev/activity-backend/internal/infra"
	"exusiai.dev/activity-backend/internal/repo"
)

type Env struct {
	Config    *appconfig.Config
	DB        *bun.DB
	Redis     *redis.Client
	Miniredis *miniredis.Miniredis
	Fixtures  *Fixtures
}

func Config() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			ServiceAddress:            "127.0.0.1:0",
			TrustedProxies:            []string{"127.0.0.1"},
			HTTPServerShutdownTimeout: time.Second,
			ListDefaultLimit:          10,
			ListMaxLimit:              1000,
			IdempotencyLifetime:       time.Hour,
			LookupCacheTTL:            time.Hour,
			UserCacheTTL:              time.Minute,
		},
		AppContext: appcontext.Declare(appcontext.EnvTest),
	}
}

// DB opens a private in-memory SQLite database with the schema created.
func DB(t testing.TB) *bun.DB {
	t.Helper()

	// a single connection keeps the in-memory database alive and serializes
	// transactions the way row locks would
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+xid.New().String()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := repo.CreateSchema(context.Background(), db); err != nil {
		t.Fatal(err)
	}

	return db
}

// Redis starts a miniredis server and returns a client connected to it.
func Redis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, mr
}

// Populate starts the application core, seeds the fixtures and populates targets.
func Populate(t *testing.T, targets ...any) *Env {
	t.Helper()

	log.Logger = zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.InfoLevel)

	conf := Config()
	db := DB(t)
	client, mr := Redis(t)

	opts := []fx.Option{
		// for testing, logger is too annoying. therefore, we use a NopLogger here
		fx.NopLogger,
		fx.Supply(conf, db, client),
		fx.Provide(
			infra.RedSync,
			func() (*nats.Conn, nats.JetStreamContext) {
				return nil, nil
			},
		),
	}
	opts = append(opts, app.Core()...)
	opts = append(opts, fx.Populate(targets...))

	fxApp := fxtest.New(t, opts...)
	fxApp.RequireStart()
	t.Cleanup(fxApp.RequireStop)

	return &Env{
		Config:    conf,
		DB:        db,
		Redis:     client,
		Miniredis: mr,
		Fixtures:  Seed(t, db),
	}
}
