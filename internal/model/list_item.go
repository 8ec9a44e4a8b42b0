package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ListItem places an item on a list. A given item appears at most once per
// list. The list and item relations are referenced by id only; callers
// resolve them with explicit lookups.
type ListItem struct {
	bun.BaseModel `bun:"table:list_items,alias:li"`

	ID        uuid.UUID `bun:"id,pk" json:"id"`
	Quantity  int       `bun:"quantity,notnull" json:"quantity"`
	Completed bool      `bun:"completed,notnull" json:"completed"`
	ListID    uuid.UUID `bun:"list_id,notnull" json:"list_id"`
	ItemID    uuid.UUID `bun:"item_id,notnull" json:"item_id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// ListItemView is a list item together with its explicitly loaded relations.
// A nil relation was not requested.
type ListItemView struct {
	*ListItem
	Item *Item `json:"item,omitempty"`
	List *List `json:"list,omitempty"`
}

// CreateListItemInput is the payload for adding an item to a list.
type CreateListItemInput struct {
	Quantity  *int   `json:"quantity"`
	Completed *bool  `json:"completed"`
	ListID    string `json:"list_id"`
	ItemID    string `json:"item_id"`
}

// UpdateListItemInput is a partial list item update. ListID and ItemID
// reassign the relations independently of the other fields.
type UpdateListItemInput struct {
	Quantity  *int    `json:"quantity"`
	Completed *bool   `json:"completed"`
	ListID    *string `json:"list_id"`
	ItemID    *string `json:"item_id"`
}
