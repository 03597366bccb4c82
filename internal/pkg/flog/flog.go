// Package flog provides a set of fiber.Ctx helpers for zerolog.
package flog

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// FromFiberCtx gets the logger in the request's context.
// This is a shortcut for zerolog.Ctx(ctx.UserContext())
func FromFiberCtx(ctx *fiber.Ctx) *zerolog.Logger {
	return zerolog.Ctx(ctx.UserContext())
}

// NewHandlerMiddleware injects log into requests context.
func NewHandlerMiddleware(log zerolog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// Create a copy of the logger (including internal context slice)
		// to prevent data race when using UpdateContext.
		l := log.With().Logger()
		ctx.SetUserContext(l.WithContext(ctx.UserContext()))
		return ctx.Next()
	}
}

// With adds fields to the request's logger for the rest of the request.
func With(ctx *fiber.Ctx, fn func(c zerolog.Context) zerolog.Context) {
	FromFiberCtx(ctx).UpdateContext(fn)
}

// FieldHandler adds the value returned by fn as a field to the request's
// logger using fieldKey as field key.
func FieldHandler(fieldKey string, fn func(ctx *fiber.Ctx) string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		With(ctx, func(c zerolog.Context) zerolog.Context {
			return c.Str(fieldKey, fn(ctx))
		})
		return ctx.Next()
	}
}

// URLHandler adds the requested path using fieldKey as field key.
func URLHandler(fieldKey string) fiber.Handler {
	return FieldHandler(fieldKey, func(ctx *fiber.Ctx) string {
		return ctx.Path()
	})
}

// MethodHandler adds the request method using fieldKey as field key.
func MethodHandler(fieldKey string) fiber.Handler {
	return FieldHandler(fieldKey, func(ctx *fiber.Ctx) string {
		return ctx.Method()
	})
}

// RemoteAddrHandler adds the request's remote address using fieldKey as field key.
func RemoteAddrHandler(fieldKey string) fiber.Handler {
	return FieldHandler(fieldKey, func(ctx *fiber.Ctx) string {
		return ctx.IP()
	})
}

// UserAgentHandler adds the request's user-agent using fieldKey as field key.
func UserAgentHandler(fieldKey string) fiber.Handler {
	return FieldHandler(fieldKey, func(ctx *fiber.Ctx) string {
		return ctx.Get(fiber.HeaderUserAgent)
	})
}

type idKey struct{}

// IDFromFiberCtx returns the unique id associated to the *fiber.Ctx if any.
func IDFromFiberCtx(ctx *fiber.Ctx) (id xid.ID, ok bool) {
	if ctx == nil {
		return
	}
	return IDFromCtx(ctx.UserContext())
}

// IDFromCtx returns the unique id associated to the context if any.
func IDFromCtx(ctx context.Context) (id xid.ID, ok bool) {
	id, ok = ctx.Value(idKey{}).(xid.ID)
	return
}

// CtxWithID adds the given xid.ID to the context
func CtxWithID(ctx context.Context, id xid.ID) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// RequestIDHandler returns a handler setting a unique id to the request which can
// be gathered using IDFromFiberCtx(ctx). This generated id is added as a field to the
// logger using the passed fieldKey as field name. The id is also added as a response
// header if the headerName is not empty.
func RequestIDHandler(fieldKey, headerName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, ok := IDFromFiberCtx(ctx)
		if !ok {
			id = xid.New()
			ctx.SetUserContext(CtxWithID(ctx.UserContext(), id))
		}
		if fieldKey != "" {
			With(ctx, func(c zerolog.Context) zerolog.Context {
				return c.Str(fieldKey, id.String())
			})
		}
		if headerName != "" {
			ctx.Set(headerName, id.String())
		}
		return ctx.Next()
	}
}

// AccessHandler returns a handler that call f after each request.
func AccessHandler(f func(ctx *fiber.Ctx, duration time.Duration)) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		f(ctx, time.Since(start))
		return err
	}
}

func WarnFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Warn()
}

func ErrorFrom(ctx *fiber.Ctx) *zerolog.Event {
	return FromFiberCtx(ctx).Error()
}
