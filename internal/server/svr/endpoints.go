package svr

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/activity-backend/internal/pkg/middlewares"
	"exusiai.dev/activity-backend/internal/service"
)

// Admin is the authenticated /admin/api group.
type Admin struct {
	fiber.Router
}

// Meta is the unauthenticated /api/_ group.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, userService *service.User) (*Admin, *Meta) {
	admin := app.Group("/admin/api",
		middlewares.AcceptsJSON,
		middlewares.RequireUser(userService),
	)
	meta := app.Group("/api/_")

	return &Admin{Router: admin}, &Meta{Router: meta}
}
