package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID        int64       `bun:"id,pk,autoincrement"`
	Subject   string      `bun:"subject,notnull"`
	Note      null.String `bun:"note,type:text"`
	DueDate   time.Time   `bun:"due_date,notnull"`
	StartDate *time.Time  `bun:"start_date"`

	ActivityStatusID   *int64 `bun:"activity_status_id"`
	ActivityPriorityID *int64 `bun:"activity_priority_id"`
	ActivityTypeID     *int64 `bun:"activity_type_id"`
	AssignedContactID  int64  `bun:"assigned_contact_id,notnull"`

	// AccountID and ContactID are written through SetOwner only.
	AccountID *int64 `bun:"account_id"`
	ContactID *int64 `bun:"contact_id"`

	Created   time.Time `bun:"created,notnull"`
	CreatorID *int64    `bun:"creator_id"`
	Changed   time.Time `bun:"changed,notnull"`
	ChangerID *int64    `bun:"changer_id"`

	ActivityStatus   *ActivityStatus   `bun:"rel:belongs-to,join:activity_status_id=id"`
	ActivityPriority *ActivityPriority `bun:"rel:belongs-to,join:activity_priority_id=id"`
	ActivityType     *ActivityType     `bun:"rel:belongs-to,join:activity_type_id=id"`
	AssignedContact  *Contact          `bun:"rel:belongs-to,join:assigned_contact_id=id"`
	Account          *Account          `bun:"rel:belongs-to,join:account_id=id"`
	Contact          *Contact          `bun:"rel:belongs-to,join:contact_id=id"`
	Creator          *User             `bun:"rel:belongs-to,join:creator_id=id"`
	Changer          *User             `bun:"rel:belongs-to,join:changer_id=id"`
}

// ActivityRelations are loaded whenever an activity is rendered in full.
var ActivityRelations = []string{
	"ActivityStatus",
	"ActivityPriority",
	"ActivityType",
	"AssignedContact",
	"Account",
	"Contact",
	"Creator",
	"Changer",
}

// SetOwner links the activity to exactly one account or contact and clears
// the other link.
func (a *Activity) SetOwner(o Owner) {
	id := o.OwnerID()
	switch o.(type) {
	case AccountOwner:
		a.AccountID = &id
		a.ContactID = nil
		a.Contact = nil
	case ContactOwner:
		a.ContactID = &id
		a.AccountID = nil
		a.Account = nil
	}
}

// Owner returns the account or contact the activity belongs to, or nil for
// an activity that has not been linked yet.
func (a *Activity) Owner() Owner {
	switch {
	case a.AccountID != nil:
		return AccountOwner{ID: *a.AccountID}
	case a.ContactID != nil:
		return ContactOwner{ID: *a.ContactID}
	default:
		return nil
	}
}

// Touch stamps the change audit fields.
func (a *Activity) Touch(at time.Time, user *User) {
	a.Changed = at
	a.ChangerID = userID(user)
	a.Changer = user
}

// Stamp stamps both the creation and change audit fields of a new activity.
func (a *Activity) Stamp(at time.Time, user *User) {
	a.Created = at
	a.CreatorID = userID(user)
	a.Creator = user
	a.Touch(at, user)
}

func userID(u *User) *int64 {
	if u == nil {
		return nil
	}
	id := u.ID
	return &id
}
