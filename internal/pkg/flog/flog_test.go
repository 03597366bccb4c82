package flog

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	app := fiber.New()
	app.Use(
		NewHandlerMiddleware(logger),
		RequestIDHandler("request_id", "X-Request-ID"),
		MethodHandler("method"),
		URLHandler("url"),
		AccessHandler(func(ctx *fiber.Ctx, _ time.Duration) {
			FromFiberCtx(ctx).Info().Int("status", ctx.Response().StatusCode()).Msg("done")
		}),
	)
	app.Get("/activities", func(ctx *fiber.Ctx) error {
		With(ctx, func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", 7)
		})
		return ctx.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/activities", nil), -1)
	require.NoError(t, err)
	requestID := resp.Header.Get("X-Request-ID")
	assert.Len(t, requestID, 20)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, requestID, entry["request_id"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/activities", entry["url"])
	assert.Equal(t, float64(7), entry["user_id"])
	assert.Equal(t, float64(http.StatusNoContent), entry["status"])
}
