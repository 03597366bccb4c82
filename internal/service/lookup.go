package service

import (
	"context"
	"strconv"

	"github.com/uptrace/bun"

	"exusiai.dev/activity-backend/internal/app/appconfig"
	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/model/cache"
	"exusiai.dev/activity-backend/internal/model/types"
	pkgcache "exusiai.dev/activity-backend/internal/pkg/cache"
	"exusiai.dev/activity-backend/internal/pkg/observability"
	"exusiai.dev/activity-backend/internal/repo"
)

// Lookup serves the activity statuses, priorities and types.
type Lookup struct {
	conf         *appconfig.Config
	StatusRepo   *repo.Lookup[model.ActivityStatus]
	PriorityRepo *repo.Lookup[model.ActivityPriority]
	TypeRepo     *repo.Lookup[model.ActivityType]
}

func NewLookup(
	conf *appconfig.Config,
	statusRepo *repo.Lookup[model.ActivityStatus],
	priorityRepo *repo.Lookup[model.ActivityPriority],
	typeRepo *repo.Lookup[model.ActivityType],
) *Lookup {
	return &Lookup{
		conf:         conf,
		StatusRepo:   statusRepo,
		PriorityRepo: priorityRepo,
		TypeRepo:     typeRepo,
	}
}

// Cache: (set) activityStatus#id, LookupCacheTTL
func (s *Lookup) GetActivityStatus(ctx context.Context, db bun.IDB, id int64) (*model.ActivityStatus, error) {
	return getLookup(ctx, s.StatusRepo.WithTx(db), cache.ActivityStatusByID, id, s.conf)
}

// Cache: (set) activityPriority#id, LookupCacheTTL
func (s *Lookup) GetActivityPriority(ctx context.Context, db bun.IDB, id int64) (*model.ActivityPriority, error) {
	return getLookup(ctx, s.PriorityRepo.WithTx(db), cache.ActivityPriorityByID, id, s.conf)
}

// Cache: (set) activityType#id, LookupCacheTTL
func (s *Lookup) GetActivityType(ctx context.Context, db bun.IDB, id int64) (*model.ActivityType, error) {
	return getLookup(ctx, s.TypeRepo.WithTx(db), cache.ActivityTypeByID, id, s.conf)
}

// Cache: (singular) activityStatuses, LookupCacheTTL
func (s *Lookup) ListActivityStatuses(ctx context.Context, actor Actor) ([]*types.LookupRef, error) {
	return listLookups(ctx, s.StatusRepo, cache.ActivityStatuses, actor.Locale, s.conf)
}

// Cache: (singular) activityPriorities, LookupCacheTTL
func (s *Lookup) ListActivityPriorities(ctx context.Context, actor Actor) ([]*types.LookupRef, error) {
	return listLookups(ctx, s.PriorityRepo, cache.ActivityPriorities, actor.Locale, s.conf)
}

// Cache: (singular) activityTypes, LookupCacheTTL
func (s *Lookup) ListActivityTypes(ctx context.Context, actor Actor) ([]*types.LookupRef, error) {
	return listLookups(ctx, s.TypeRepo, cache.ActivityTypes, actor.Locale, s.conf)
}

func getLookup[T any](ctx context.Context, r *repo.Lookup[T], c *pkgcache.Set[T], id int64, conf *appconfig.Config) (*T, error) {
	var l T
	calculated, err := c.MutexGetSet(strconv.FormatInt(id, 10), &l, func() (T, error) {
		v, err := r.GetByID(ctx, id)
		if err != nil {
			var zero T
			return zero, err
		}
		return *v, nil
	}, conf.LookupCacheTTL)
	if err != nil {
		return nil, err
	}
	observability.CacheLookups.WithLabelValues(r.Entity()+"#id", cacheResult(calculated)).Inc()
	return &l, nil
}

func listLookups[T any, PT interface {
	*T
	model.Lookup
}](ctx context.Context, r *repo.Lookup[T], c *pkgcache.Singular[[]*T], locale string, conf *appconfig.Config) ([]*types.LookupRef, error) {
	var items []*T
	err := c.MutexGetSet(&items, func() ([]*T, error) {
		return r.GetAll(ctx)
	}, conf.LookupCacheTTL)
	if err != nil {
		return nil, err
	}

	refs := make([]*types.LookupRef, len(items))
	for i, item := range items {
		refs[i] = types.NewLookupRef(PT(item), locale)
	}
	return refs, nil
}
