package model

// Entity names reported in not-found errors.
const (
	EntityActivity         = "Activity"
	EntityActivityStatus   = "ActivityStatus"
	EntityActivityPriority = "ActivityPriority"
	EntityActivityType     = "ActivityType"
	EntityContact          = "Contact"
	EntityAccount          = "Account"
	EntityUser             = "User"
)
