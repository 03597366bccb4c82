package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"exusiai.dev/activity-backend/internal/model/types"
	"exusiai.dev/activity-backend/internal/server/svr"
	"exusiai.dev/activity-backend/internal/service"
)

type Lookup struct {
	fx.In

	LookupService *service.Lookup
}

func RegisterLookup(admin *svr.Admin, c Lookup) {
	admin.Get("/activity-statuses", c.GetActivityStatuses)
	admin.Get("/activity-priorities", c.GetActivityPriorities)
	admin.Get("/activity-types", c.GetActivityTypes)
}

func (c *Lookup) GetActivityStatuses(ctx *fiber.Ctx) error {
	items, err := c.LookupService.ListActivityStatuses(ctx.UserContext(), actorFrom(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(types.NewCollection("activityStatuses", items, len(items)))
}

func (c *Lookup) GetActivityPriorities(ctx *fiber.Ctx) error {
	items, err := c.LookupService.ListActivityPriorities(ctx.UserContext(), actorFrom(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(types.NewCollection("activityPriorities", items, len(items)))
}

func (c *Lookup) GetActivityTypes(ctx *fiber.Ctx) error {
	items, err := c.LookupService.ListActivityTypes(ctx.UserContext(), actorFrom(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(types.NewCollection("activityTypes", items, len(items)))
}
