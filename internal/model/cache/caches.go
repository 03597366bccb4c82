package cache

import (
	"github.com/redis/go-redis/v9"

	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/pkg/cache"
)

type Flusher func() error

var (
	UserByAPIKey *cache.Set[model.User]

	ActivityStatusByID   *cache.Set[model.ActivityStatus]
	ActivityPriorityByID *cache.Set[model.ActivityPriority]
	ActivityTypeByID     *cache.Set[model.ActivityType]

	ActivityStatuses   *cache.Singular[[]*model.ActivityStatus]
	ActivityPriorities *cache.Singular[[]*model.ActivityPriority]
	ActivityTypes      *cache.Singular[[]*model.ActivityType]

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

// Initialize (re)creates every cache on top of client.
func Initialize(client *redis.Client) {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// user
	UserByAPIKey = cache.NewSet[model.User](client, "activity:user#apiKey")
	SetMap["user#apiKey"] = UserByAPIKey.Flush

	// lookups
	ActivityStatusByID = cache.NewSet[model.ActivityStatus](client, "activity:activityStatus#id")
	ActivityPriorityByID = cache.NewSet[model.ActivityPriority](client, "activity:activityPriority#id")
	ActivityTypeByID = cache.NewSet[model.ActivityType](client, "activity:activityType#id")

	SetMap["activityStatus#id"] = ActivityStatusByID.Flush
	SetMap["activityPriority#id"] = ActivityPriorityByID.Flush
	SetMap["activityType#id"] = ActivityTypeByID.Flush

	ActivityStatuses = cache.NewSingular[[]*model.ActivityStatus]("activityStatuses")
	ActivityPriorities = cache.NewSingular[[]*model.ActivityPriority]("activityPriorities")
	ActivityTypes = cache.NewSingular[[]*model.ActivityType]("activityTypes")

	SingularFlusherMap["activityStatuses"] = ActivityStatuses.Delete
	SingularFlusherMap["activityPriorities"] = ActivityPriorities.Delete
	SingularFlusherMap["activityTypes"] = ActivityTypes.Delete
}

// Delete flushes the named cache. Unknown names are ignored.
func Delete(name string) error {
	if f, ok := SingularFlusherMap[name]; ok {
		return f()
	}
	if f, ok := SetMap[name]; ok {
		return f()
	}
	return nil
}

// FlushAll flushes every cache.
func FlushAll() error {
	for _, f := range SingularFlusherMap {
		if err := f(); err != nil {
			return err
		}
	}
	for _, f := range SetMap {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}
