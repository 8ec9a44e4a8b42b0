package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/erazemk/anylist/internal/model"
)

// ListItems persists list entries. Ownership is enforced by the caller
// through the parent list and item.
type ListItems struct {
	db  bun.IDB
	log *slog.Logger
}

func listItemNotFound(id uuid.UUID) string {
	return "List item with id " + id.String() + " not found"
}

// Create inserts li, assigning its ID and creation time. Adding an item to
// a list twice is a conflict.
func (r *ListItems) Create(ctx context.Context, li *model.ListItem) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	li.CreatedAt = time.Now().UTC()

	if _, err := r.db.NewInsert().Model(li).Exec(ctx); err != nil {
		return mapDBError(r.log, "creating list item", err, "")
	}
	return nil
}

// FindAllByList returns a page of the entries of listID whose item name
// contains the search term.
func (r *ListItems) FindAllByList(ctx context.Context, listID uuid.UUID, page model.Page, s model.Search) ([]model.ListItem, error) {
	entries := make([]model.ListItem, 0)
	q := r.db.NewSelect().
		Model(&entries).
		Join("JOIN items AS itm ON itm.id = ?TableAlias.item_id").
		Where("?TableAlias.list_id = ?", listID)
	q = search(q, s, "itm.name")

	if err := paginate(q, page).Scan(ctx); err != nil {
		return nil, mapDBError(r.log, "listing list items", err, "")
	}
	return entries, nil
}

// CountByList returns the number of entries on listID.
func (r *ListItems) CountByList(ctx context.Context, listID uuid.UUID) (int, error) {
	n, err := r.db.NewSelect().
		Model((*model.ListItem)(nil)).
		Where("?TableAlias.list_id = ?", listID).
		Count(ctx)
	if err != nil {
		return 0, mapDBError(r.log, "counting list items", err, "")
	}
	return n, nil
}

// FindOne returns the entry with id.
func (r *ListItems) FindOne(ctx context.Context, id uuid.UUID) (*model.ListItem, error) {
	li := new(model.ListItem)
	err := r.db.NewSelect().
		Model(li).
		Where("?TableAlias.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "getting list item", err, listItemNotFound(id))
	}
	return li, nil
}

// Update writes the mutable fields of li: quantity, completion and the
// list and item it links.
func (r *ListItems) Update(ctx context.Context, li *model.ListItem) error {
	res, err := r.db.NewUpdate().
		Model(li).
		Column("quantity", "completed", "list_id", "item_id").
		Where("?TableAlias.id = ?", li.ID).
		Exec(ctx)
	if err != nil {
		return mapDBError(r.log, "updating list item", err, listItemNotFound(li.ID))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound("%s", listItemNotFound(li.ID))
	}
	return nil
}

// Remove deletes the entry with id and returns it.
func (r *ListItems) Remove(ctx context.Context, id uuid.UUID) (*model.ListItem, error) {
	li, err := r.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = r.db.NewDelete().
		Model(li).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "removing list item", err, listItemNotFound(id))
	}
	return li, nil
}

// DeleteAll removes every list entry.
func (r *ListItems) DeleteAll(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*model.ListItem)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return mapDBError(r.log, "deleting list items", err, "")
}
