package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Item is a product owned by a single user that can be placed on lists.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:itm"`

	ID            uuid.UUID `bun:"id,pk" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	QuantityUnits *string   `bun:"quantity_units" json:"quantity_units,omitempty"`
	UserID        uuid.UUID `bun:"user_id,notnull" json:"user_id"`
	PictureMime   *string   `bun:"picture_mime" json:"picture_mime,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at"`
}

// CreateItemInput is the payload for creating an item.
type CreateItemInput struct {
	Name          string  `json:"name"`
	QuantityUnits *string `json:"quantity_units"`
}

// UpdateItemInput is a partial item update.
type UpdateItemInput struct {
	Name          *string `json:"name"`
	QuantityUnits *string `json:"quantity_units"`
}
