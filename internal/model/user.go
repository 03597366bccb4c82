package model

import "github.com/uptrace/bun"

// User is an authenticated API caller. Activities record their creator and
// last changer as users.
type User struct {
	bun.BaseModel `bun:"table:users,alias:user"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	Username  string `bun:"username,notnull,unique" json:"username"`
	Locale    string `bun:"locale,notnull,default:'en'" json:"locale"`
	APIKey    string `bun:"api_key,notnull,unique" json:"-"`
	ContactID *int64 `bun:"contact_id" json:"contactId,omitempty"`
}
