package model

import "github.com/uptrace/bun"

type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:account"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
}
