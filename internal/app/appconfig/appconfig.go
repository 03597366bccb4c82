package appconfig

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"exusiai.dev/activity-backend/internal/app/appcontext"
	"exusiai.dev/activity-backend/internal/pkg/projectpath"
)

const EnvPrefix = "activity"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load(filepath.Join(projectpath.Root, ".env"))
	if err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var config ConfigSpec
	err = envconfig.Process(EnvPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(EnvPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. More info on how to configure this backend is located at https://pkg.go.dev/exusiai.dev/activity-backend/internal/app/appconfig#ConfigSpec", err)
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}
