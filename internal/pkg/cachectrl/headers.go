// Package cachectrl sets the HTTP caching headers of a response.
package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// OptIn lets clients and proxies cache the response for maxAge. modified is
// reported as Last-Modified.
func OptIn(ctx *fiber.Ctx, modified time.Time, maxAge time.Duration) {
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	ctx.Set(fiber.HeaderExpires, time.Now().Add(maxAge).UTC().Format(time.RFC1123))

	ctx.Response().Header.SetLastModified(modified)
}

func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}
