package model

import (
	"strings"

	"github.com/uptrace/bun"
)

type Contact struct {
	bun.BaseModel `bun:"table:contacts,alias:contact"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	FirstName string `bun:"first_name,notnull" json:"firstName"`
	LastName  string `bun:"last_name,notnull" json:"lastName"`
}

func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
