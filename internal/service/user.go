package service

import (
	"context"

	"github.com/dchest/uniuri"

	"exusiai.dev/activity-backend/internal/app/appconfig"
	"exusiai.dev/activity-backend/internal/constant"
	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/model/cache"
	"exusiai.dev/activity-backend/internal/pkg/crypto"
	"exusiai.dev/activity-backend/internal/pkg/observability"
	"exusiai.dev/activity-backend/internal/repo"
	"exusiai.dev/activity-backend/internal/util/i18n"
)

type User struct {
	conf     *appconfig.Config
	UserRepo *repo.User
}

func NewUser(conf *appconfig.Config, userRepo *repo.User) *User {
	return &User{
		conf:     conf,
		UserRepo: userRepo,
	}
}

// GetUserByAPIKey resolves an api key to its user. Unknown keys yield pgerr.ErrNotFound.
// Cache: (set) user#apiKey, UserCacheTTL
func (s *User) GetUserByAPIKey(ctx context.Context, apiKey string) (*model.User, error) {
	var user model.User
	calculated, err := cache.UserByAPIKey.MutexGetSet(crypto.Fingerprint(apiKey), &user, func() (model.User, error) {
		u, err := s.UserRepo.GetUserByAPIKey(ctx, apiKey)
		if err != nil {
			return model.User{}, err
		}
		return *u, nil
	}, s.conf.UserCacheTTL)
	if err != nil {
		return nil, err
	}
	observability.CacheLookups.WithLabelValues("user#apiKey", cacheResult(calculated)).Inc()
	return &user, nil
}

// CreateUser creates a user with a freshly generated api key.
func (s *User) CreateUser(ctx context.Context, username, locale string) (*model.User, error) {
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	user := &model.User{
		Username: username,
		Locale:   locale,
		APIKey:   uniuri.NewLen(constant.APIKeyLength),
	}
	if err := s.UserRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func cacheResult(calculated bool) string {
	if calculated {
		return "miss"
	}
	return "hit"
}
