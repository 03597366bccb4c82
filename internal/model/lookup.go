package model

import "github.com/uptrace/bun"

// Lookup is implemented by the small reference tables an activity points to:
// *ActivityStatus, *ActivityPriority and *ActivityType.
type Lookup interface {
	GetID() int64
	GetName() I18nString
	EntityName() string
}

type ActivityStatus struct {
	bun.BaseModel `bun:"table:activity_statuses,alias:activity_status"`

	ID   int64      `bun:"id,pk,autoincrement" json:"id"`
	Name I18nString `bun:"name,type:jsonb,notnull" json:"name"`
}

func (l *ActivityStatus) GetID() int64        { return l.ID }
func (l *ActivityStatus) GetName() I18nString { return l.Name }
func (*ActivityStatus) EntityName() string    { return EntityActivityStatus }

type ActivityPriority struct {
	bun.BaseModel `bun:"table:activity_priorities,alias:activity_priority"`

	ID   int64      `bun:"id,pk,autoincrement" json:"id"`
	Name I18nString `bun:"name,type:jsonb,notnull" json:"name"`
}

func (l *ActivityPriority) GetID() int64        { return l.ID }
func (l *ActivityPriority) GetName() I18nString { return l.Name }
func (*ActivityPriority) EntityName() string    { return EntityActivityPriority }

type ActivityType struct {
	bun.BaseModel `bun:"table:activity_types,alias:activity_type"`

	ID   int64      `bun:"id,pk,autoincrement" json:"id"`
	Name I18nString `bun:"name,type:jsonb,notnull" json:"name"`
}

func (l *ActivityType) GetID() int64        { return l.ID }
func (l *ActivityType) GetName() I18nString { return l.Name }
func (*ActivityType) EntityName() string    { return EntityActivityType }
