package httpserver

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/activity-backend/internal/pkg/flog"
	"exusiai.dev/activity-backend/internal/pkg/middlewares"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
)

func handleCustomError(ctx *fiber.Ctx, e *pgerr.APIError) error {
	flog.WarnFrom(ctx).
		Err(e).
		Int("status", e.StatusCode).
		Msg(e.Message)

	// Provide error code if pgerr.APIError type
	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	// Add extra details if needed
	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	// Use custom error handler to return JSON error responses
	if e, ok := pgerr.As(err); ok {
		return handleCustomError(ctx, e)
	}

	// Return default error handler
	// Default 500 statuscode
	re := *pgerr.ErrInternalError

	if e, ok := err.(*fiber.Error); ok {
		// Overwrite status code if fiber.Error type & provided code
		re.StatusCode = e.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = e.Message

		// routing misses and the like are client errors
		if e.Code < fiber.StatusInternalServerError {
			return handleCustomError(ctx, &re)
		}
	}

	flog.ErrorFrom(ctx).
		Stack().
		Err(err).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		if u := middlewares.CurrentUser(ctx); u != nil {
			hub.Scope().SetUser(sentry.User{
				ID:       strconv.FormatInt(u.ID, 10),
				Username: u.Username,
			})
		}
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, &re)
}
