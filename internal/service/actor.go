package service

import (
	"exusiai.dev/activity-backend/internal/model"
	"exusiai.dev/activity-backend/internal/util/i18n"
)

// Actor is the caller on whose behalf an operation runs.
type Actor struct {
	User   *model.User
	Locale string
}

// NewActor picks the explicitly requested locale, then the user's own, then
// the default locale.
func NewActor(user *model.User, locale string) Actor {
	if locale == "" && user != nil {
		locale = user.Locale
	}
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	return Actor{
		User:   user,
		Locale: locale,
	}
}

func (a Actor) UserID() *int64 {
	if a.User == nil {
		return nil
	}
	id := a.User.ID
	return &id
}
