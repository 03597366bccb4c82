package types

import "exusiai.dev/activity-backend/internal/pkg/listbuilder"

// ActivityListQuery holds the query parameters of GET /activities.
type ActivityListQuery struct {
	listbuilder.Params

	Flat    bool   `query:"flat"`
	Locale  string `query:"locale" validate:"omitempty,max=16"`
	Type    string `query:"type"`
	Account int64  `query:"account" validate:"gte=0"`
	Contact int64  `query:"contact" validate:"gte=0"`
}
