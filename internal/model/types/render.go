package types

import (
	"exusiai.dev/activity-backend/internal/model"
)

func NewLookupRef(l model.Lookup, locale string) *LookupRef {
	return &LookupRef{
		ID:   l.GetID(),
		Name: l.GetName().Resolve(locale, model.FallbackLocale),
	}
}

func NewContactRef(c *model.Contact) *ContactRef {
	if c == nil {
		return nil
	}
	return &ContactRef{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
	}
}

func newAccountRef(a *model.Account) *AccountRef {
	if a == nil {
		return nil
	}
	return &AccountRef{ID: a.ID, Name: a.Name}
}

func newUserRef(u *model.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Username: u.Username}
}

// NewActivity renders a with its relations loaded, resolving lookup names to locale.
func NewActivity(a *model.Activity, locale string) *Activity {
	r := &Activity{
		ID:              a.ID,
		Subject:         a.Subject,
		Note:            a.Note,
		DueDate:         a.DueDate,
		StartDate:       a.StartDate,
		Created:         a.Created,
		Changed:         a.Changed,
		Creator:         newUserRef(a.Creator),
		Changer:         newUserRef(a.Changer),
		AssignedContact: NewContactRef(a.AssignedContact),
	}
	if a.ActivityStatus != nil {
		r.ActivityStatus = NewLookupRef(a.ActivityStatus, locale)
	}
	if a.ActivityPriority != nil {
		r.ActivityPriority = NewLookupRef(a.ActivityPriority, locale)
	}
	if a.ActivityType != nil {
		r.ActivityType = NewLookupRef(a.ActivityType, locale)
	}
	switch a.Owner().(type) {
	case model.AccountOwner:
		r.Account = newAccountRef(a.Account)
	case model.ContactOwner:
		r.Contact = NewContactRef(a.Contact)
	}
	return r
}

func NewActivities(activities []*model.Activity, locale string) []*Activity {
	r := make([]*Activity, len(activities))
	for i, a := range activities {
		r[i] = NewActivity(a, locale)
	}
	return r
}
