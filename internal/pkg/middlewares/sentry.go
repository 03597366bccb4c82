package middlewares

import (
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"exusiai.dev/activity-backend/internal/constant"
	"exusiai.dev/activity-backend/internal/model"
)

func EnrichSentry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hub := fibersentry.GetHubFromContext(c); hub != nil {
			if id, ok := c.Locals(constant.ContextKeyRequestID).(string); ok {
				hub.Scope().SetTag("request_id", id)
			}
		}

		var r http.Request
		if err := fasthttpadaptor.ConvertRequest(c.Context(), &r, true); err != nil {
			return err
		}
		rootSpan := sentry.StartSpan(c.Context(), "backend", sentry.ContinueFromRequest(&r))
		defer rootSpan.Finish()

		return c.Next()
	}
}

// SentryUser attaches the authenticated user, if any, to the request's sentry scope.
func SentryUser(c *fiber.Ctx) {
	hub := fibersentry.GetHubFromContext(c)
	if hub == nil {
		return
	}
	if u, ok := c.Locals(constant.ContextKeyUser).(*model.User); ok {
		hub.Scope().SetUser(sentry.User{
			ID:       strconv.FormatInt(u.ID, 10),
			Username: u.Username,
		})
	}
}
