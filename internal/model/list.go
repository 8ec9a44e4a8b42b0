package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// List is a named collection of items owned by a single user.
type List struct {
	bun.BaseModel `bun:"table:lists,alias:lst"`

	ID        uuid.UUID `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	UserID    uuid.UUID `bun:"user_id,notnull" json:"user_id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// CreateListInput is the payload for creating a list.
type CreateListInput struct {
	Name string `json:"name"`
}

// UpdateListInput is a partial list update.
type UpdateListInput struct {
	Name *string `json:"name"`
}
