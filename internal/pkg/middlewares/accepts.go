package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"exusiai.dev/activity-backend/internal/pkg/pgerr"
)

func Accepts(mimes ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Accepts(mimes...) != "" {
			return ctx.Next()
		}

		return pgerr.ErrInvalidReq.Msg("invalid or missing Accept header. Accepts: %s", strings.Join(mimes, ", "))
	}
}

var AcceptsJSON = Accepts(fiber.MIMEApplicationJSON)
