package middlewares

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"exusiai.dev/activity-backend/internal/constant"
	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/flog"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
)

type UserResolver interface {
	GetUserByAPIKey(ctx context.Context, apiKey string) (*model.User, error)
}

// ExtractAPIKey returns the api key of an `Authorization: Token <key>` header.
func ExtractAPIKey(ctx *fiber.Ctx) string {
	authorization := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
	realm, key, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(realm, constant.AuthorizationRealm) {
		return ""
	}
	return strings.TrimSpace(key)
}

// RequireUser rejects requests without a valid api key and stores the
// resolved *model.User in the "user" local.
func RequireUser(users UserResolver) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key := ExtractAPIKey(ctx)
		if key == "" {
			return pgerr.ErrUnauthorized
		}

		user, err := users.GetUserByAPIKey(ctx.UserContext(), key)
		if errors.Is(err, pgerr.ErrNotFound) {
			return pgerr.ErrUnauthorized
		} else if err != nil {
			return err
		}

		ctx.Locals(constant.ContextKeyUser, user)
		SentryUser(ctx)
		flog.With(ctx, func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", user.ID)
		})

		return ctx.Next()
	}
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(ctx *fiber.Ctx) *model.User {
	user, _ := ctx.Locals(constant.ContextKeyUser).(*model.User)
	return user
}

// ScopeByUser prefixes key with the id of the current user.
func ScopeByUser(ctx *fiber.Ctx, key string) string {
	user := CurrentUser(ctx)
	if user == nil {
		return "anonymous:" + key
	}
	return strconv.FormatInt(user.ID, 10) + ":" + key
}
