package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/activity-backend/internal/util/rekuest"
)

const LocalsKeyBody = "body"

// InjectValidBody parses and validates the request body as T and stores the
// resulting *T in the "body" local.
func InjectValidBody[T any]() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		dest := new(T)
		if err := rekuest.ValidBody(ctx, dest); err != nil {
			return err
		}

		ctx.Locals(LocalsKeyBody, dest)

		return ctx.Next()
	}
}

// Body returns the body stored by InjectValidBody.
func Body[T any](ctx *fiber.Ctx) *T {
	body, _ := ctx.Locals(LocalsKeyBody).(*T)
	return body
}
