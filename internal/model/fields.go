package model

import "exusiai.dev/activity-backend/internal/pkg/listbuilder"

const ActivityListAlias = "a"

var (
	joinActivityStatus = listbuilder.Join{
		Table: "activity_statuses",
		Alias: "activity_status",
		On:    "activity_status.id = a.activity_status_id",
	}
	joinActivityPriority = listbuilder.Join{
		Table: "activity_priorities",
		Alias: "activity_priority",
		On:    "activity_priority.id = a.activity_priority_id",
	}
	joinActivityType = listbuilder.Join{
		Table: "activity_types",
		Alias: "activity_type",
		On:    "activity_type.id = a.activity_type_id",
	}
	joinAssignedContact = listbuilder.Join{
		Table: "contacts",
		Alias: "assigned_contact",
		On:    "assigned_contact.id = a.assigned_contact_id",
	}
	joinAccount = listbuilder.Join{
		Table: "accounts",
		Alias: "account",
		On:    "account.id = a.account_id",
	}
	joinContact = listbuilder.Join{
		Table: "contacts",
		Alias: "contact",
		On:    "contact.id = a.contact_id",
	}
)

// ActivityFields are the columns available to flat activity lists, in the
// order GET /activities/fields reports them.
var ActivityFields = listbuilder.Schema{
	{
		Name:        "id",
		Expr:        "a.id",
		Translation: "public.id",
		Disabled:    true,
	},
	{
		Name:        "subject",
		Expr:        "a.subject",
		Translation: "contact.activities.subject",
		Default:     true,
		Width:       "180px",
		Sortable:    true,
	},
	{
		Name:        "note",
		Expr:        "a.note",
		Translation: "contact.activities.note",
		Disabled:    true,
	},
	{
		Name:        "dueDate",
		Expr:        "a.due_date",
		Translation: "contact.activities.dueDate",
		Default:     true,
		Type:        listbuilder.TypeDate,
		Sortable:    true,
	},
	{
		Name:        "startDate",
		Expr:        "a.start_date",
		Translation: "contact.activities.startDate",
		Disabled:    true,
		Type:        listbuilder.TypeDate,
	},
	{
		Name:        "created",
		Expr:        "a.created",
		Translation: "public.created",
		Disabled:    true,
		Type:        listbuilder.TypeDate,
	},
	{
		Name:        "changed",
		Expr:        "a.changed",
		Translation: "public.changed",
		Disabled:    true,
		Type:        listbuilder.TypeDate,
	},
	{
		Name:        "activityStatus",
		Expr:        "activity_status.name",
		Translation: "contact.activities.status",
		Joins:       []listbuilder.Join{joinActivityStatus},
		Default:     true,
		Type:        listbuilder.TypeTranslation,
		Sortable:    true,
	},
	{
		Name:        "activityPriority",
		Expr:        "activity_priority.name",
		Translation: "contact.activities.priority",
		Joins:       []listbuilder.Join{joinActivityPriority},
		Default:     true,
		Type:        listbuilder.TypeTranslation,
		Sortable:    true,
	},
	{
		Name:        "activityType",
		Expr:        "activity_type.name",
		Translation: "contact.activities.type",
		Joins:       []listbuilder.Join{joinActivityType},
		Disabled:    true,
		Type:        listbuilder.TypeTranslation,
		Sortable:    true,
	},
	{
		Name:        "assignedContact",
		Expr:        "assigned_contact.first_name || ' ' || assigned_contact.last_name",
		Translation: "contact.activities.assignedContact",
		Joins:       []listbuilder.Join{joinAssignedContact},
	},
}

// ActivityFilters are the flat list filters keyed by query parameter name.
var ActivityFilters = map[string]*listbuilder.Field{
	"account": {
		Name:  "account",
		Expr:  "account.id",
		Joins: []listbuilder.Join{joinAccount},
	},
	"contact": {
		Name:  "contact",
		Expr:  "contact.id",
		Joins: []listbuilder.Join{joinContact},
	},
}
