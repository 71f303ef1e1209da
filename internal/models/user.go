package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID        string    `bun:"id,pk" json:"id"`
	Username  string    `bun:"username,unique,notnull" json:"username"`
	Password  string    `bun:"password,notnull" json:"password"`
	IsAdmin   bool      `bun:"is_admin" json:"isAdmin"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// InsertUser carries the caller-supplied fields of a new user. The store
// assigns the id and creation time; isAdmin is always false on insert.
type InsertUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
