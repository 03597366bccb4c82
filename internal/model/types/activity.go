package types

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// Ref references another entity by id. A zero id counts as absent.
type Ref struct {
	ID int64 `json:"id" validate:"gte=0"`
}

// Given reports whether the reference was sent. A sent reference is always
// resolved, so {"id":0} is looked up and reported as not found.
func (r *Ref) Given() bool {
	return r != nil
}

// ActivityRequest is the body of POST and PUT /activities.
type ActivityRequest struct {
	Subject   string      `json:"subject" validate:"max=255"`
	Note      null.String `json:"note" validate:"max=4096"`
	DueDate   string      `json:"dueDate" validate:"omitempty,activitydate"`
	StartDate string      `json:"startDate" validate:"omitempty,activitydate"`

	AssignedContact  *Ref `json:"assignedContact"`
	ActivityStatus   *Ref `json:"activityStatus"`
	ActivityPriority *Ref `json:"activityPriority"`
	ActivityType     *Ref `json:"activityType"`
	Account          *Ref `json:"account"`
	Contact          *Ref `json:"contact"`
}

type LookupRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type ContactRef struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
}

type AccountRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Activity is the full representation of an activity.
type Activity struct {
	ID        int64       `json:"id"`
	Subject   string      `json:"subject"`
	Note      null.String `json:"note"`
	DueDate   time.Time   `json:"dueDate"`
	StartDate *time.Time  `json:"startDate"`
	Created   time.Time   `json:"created"`
	Changed   time.Time   `json:"changed"`

	Creator *UserRef `json:"creator"`
	Changer *UserRef `json:"changer"`

	ActivityStatus   *LookupRef  `json:"activityStatus"`
	ActivityPriority *LookupRef  `json:"activityPriority"`
	ActivityType     *LookupRef  `json:"activityType"`
	AssignedContact  *ContactRef `json:"assignedContact"`

	Account *AccountRef `json:"account"`
	Contact *ContactRef `json:"contact"`
}
