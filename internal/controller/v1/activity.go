package v1

import (
	"net/url"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"exusiai.dev/activity-backend/internal/app/appconfig"
	"exusiai.dev/activity-backend/internal/constant"
	"exusiai.dev/activity-backend/internal/model/types"
	"exusiai.dev/activity-backend/internal/pkg/cachectrl"
	"exusiai.dev/activity-backend/internal/pkg/fiberstore"
	"exusiai.dev/activity-backend/internal/pkg/middlewares"
	"exusiai.dev/activity-backend/internal/server/svr"
	"exusiai.dev/activity-backend/internal/service"
	"exusiai.dev/activity-backend/internal/util/rekuest"
)

const activitiesRel = "activities"

// the field table only changes with a deploy
var fieldsModified = time.Now()

type Activity struct {
	fx.In

	Config          *appconfig.Config
	Redis           *redis.Client
	RedSync         *redsync.Redsync
	ActivityService *service.Activity
}

func RegisterActivity(admin *svr.Admin, c Activity) {
	admin.Get("/activities", c.GetActivities)
	// registered before /activities/:id so that "fields" is not taken for an id
	admin.Get("/activities/fields", c.GetFields)
	admin.Get("/activities/:id", c.GetActivity)
	admin.Post("/activities",
		middlewares.Idempotency(&middlewares.IdempotencyConfig{
			Lifetime:  c.Config.IdempotencyLifetime,
			KeyHeader: constant.IdempotencyKeyHeader,
			Storage:   fiberstore.NewRedis(c.Redis, "activity:idempotency"),
			RedSync:   c.RedSync,
			Scope:     middlewares.ScopeByUser,
		}),
		middlewares.InjectValidBody[types.ActivityRequest](),
		c.CreateActivity,
	)
	admin.Put("/activities/:id", middlewares.InjectValidBody[types.ActivityRequest](), c.UpdateActivity)
	admin.Delete("/activities/:id", c.DeleteActivity)
}

func actorFrom(ctx *fiber.Ctx) service.Actor {
	return service.NewActor(middlewares.CurrentUser(ctx), ctx.Query("locale"))
}

// GetActivities lists activities. With flat=true a paginated projection of
// the requested fields is returned, otherwise every activity in full.
func (c *Activity) GetActivities(ctx *fiber.Ctx) error {
	query := &types.ActivityListQuery{}
	if err := rekuest.ValidQuery(ctx, query); err != nil {
		return err
	}
	actor := actorFrom(ctx)
	cachectrl.OptOut(ctx)

	if !query.Flat {
		activities, err := c.ActivityService.List(ctx.UserContext(), actor)
		if err != nil {
			return err
		}

		return ctx.JSON(types.NewCollection(activitiesRel, types.NewActivities(activities, actor.Locale), len(activities)))
	}

	list, err := c.ActivityService.ListFlat(ctx.UserContext(), actor, query)
	if err != nil {
		return err
	}

	values, err := url.ParseQuery(string(ctx.Request().URI().QueryString()))
	if err != nil {
		values = url.Values{}
	}

	return ctx.JSON(types.NewPaginatedCollection(activitiesRel, list.Rows, list.Total, list.Page, list.Limit, ctx.Path(), values))
}

func (c *Activity) GetFields(ctx *fiber.Ctx) error {
	cachectrl.OptIn(ctx, fieldsModified, time.Hour)
	return ctx.JSON(c.ActivityService.Fields())
}

func (c *Activity) GetActivity(ctx *fiber.Ctx) error {
	id, err := rekuest.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	actor := actorFrom(ctx)

	activity, err := c.ActivityService.Get(ctx.UserContext(), actor, id)
	if err != nil {
		return err
	}

	return ctx.JSON(types.NewActivity(activity, actor.Locale))
}

// CreateActivity responds 200 rather than 201 for existing clients.
func (c *Activity) CreateActivity(ctx *fiber.Ctx) error {
	actor := actorFrom(ctx)

	activity, err := c.ActivityService.Create(ctx.UserContext(), actor, middlewares.Body[types.ActivityRequest](ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(types.NewActivity(activity, actor.Locale))
}

func (c *Activity) UpdateActivity(ctx *fiber.Ctx) error {
	id, err := rekuest.ParamID(ctx, "id")
	if err != nil {
		return err
	}
	actor := actorFrom(ctx)

	activity, err := c.ActivityService.Update(ctx.UserContext(), actor, id, middlewares.Body[types.ActivityRequest](ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(types.NewActivity(activity, actor.Locale))
}

func (c *Activity) DeleteActivity(ctx *fiber.Ctx) error {
	id, err := rekuest.ParamID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.ActivityService.Delete(ctx.UserContext(), actorFrom(ctx), id); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).Send(nil)
}
