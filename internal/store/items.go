package store

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/erazemk/anylist/internal/model"
)

// Items persists items. Every lookup is scoped to the owning user and a
// record owned by someone else is reported as missing.
type Items struct {
	db  bun.IDB
	log *slog.Logger
}

func itemNotFound(id uuid.UUID) string {
	return "Item with id: " + id.String() + " not found"
}

// Create inserts item, assigning its ID and creation time.
func (r *Items) Create(ctx context.Context, item *model.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now().UTC()

	if _, err := r.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return mapDBError(r.log, "creating item", err, "")
	}
	return nil
}

// FindAll returns a page of ownerID's items whose name contains the search
// term.
func (r *Items) FindAll(ctx context.Context, ownerID uuid.UUID, page model.Page, s model.Search) ([]model.Item, error) {
	items := make([]model.Item, 0)
	q := r.db.NewSelect().
		Model(&items).
		Where("?TableAlias.user_id = ?", ownerID)
	q = search(q, s, "?TableAlias.name")

	if err := paginate(q, page).Scan(ctx); err != nil {
		return nil, mapDBError(r.log, "listing items", err, "")
	}
	return items, nil
}

// FindOne returns the item with id owned by ownerID.
func (r *Items) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	item := new(model.Item)
	err := r.db.NewSelect().
		Model(item).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Scan(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "getting item", err, itemNotFound(id))
	}
	return item, nil
}

// FindByIDs returns the items among ids owned by ownerID, keyed by ID.
func (r *Items) FindByIDs(ctx context.Context, ids []uuid.UUID, ownerID uuid.UUID) (map[uuid.UUID]*model.Item, error) {
	found := make(map[uuid.UUID]*model.Item, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var items []model.Item
	err := r.db.NewSelect().
		Model(&items).
		Where("?TableAlias.id IN (?)", bun.In(ids)).
		Where("?TableAlias.user_id = ?", ownerID).
		Scan(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "getting items", err, "")
	}
	for i := range items {
		found[items[i].ID] = &items[i]
	}
	return found, nil
}

// Update applies in to the item with id owned by ownerID.
func (r *Items) Update(ctx context.Context, id, ownerID uuid.UUID, in model.UpdateItemInput) (*model.Item, error) {
	item, err := r.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.QuantityUnits != nil {
		item.QuantityUnits = in.QuantityUnits
	}

	_, err = r.db.NewUpdate().
		Model(item).
		Column("name", "quantity_units").
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "updating item", err, itemNotFound(id))
	}
	return item, nil
}

// Remove deletes the item with id owned by ownerID and returns it. Items
// still placed on a list cannot be removed.
func (r *Items) Remove(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	item, err := r.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	_, err = r.db.NewDelete().
		Model(item).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "removing item", err, itemNotFound(id))
	}
	return item, nil
}

// CountByOwner returns the number of items owned by ownerID.
func (r *Items) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	n, err := r.db.NewSelect().
		Model((*model.Item)(nil)).
		Where("?TableAlias.user_id = ?", ownerID).
		Count(ctx)
	if err != nil {
		return 0, mapDBError(r.log, "counting items", err, "")
	}
	return n, nil
}

// SetPicture stores a picture for the item with id owned by ownerID.
func (r *Items) SetPicture(ctx context.Context, id, ownerID uuid.UUID, data []byte, mime string) error {
	res, err := r.db.NewUpdate().
		Model((*model.Item)(nil)).
		Set("picture = ?", data).
		Set("picture_mime = ?", mime).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return mapDBError(r.log, "setting item picture", err, itemNotFound(id))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound("%s", itemNotFound(id))
	}
	return nil
}

// Picture returns the picture of the item with id owned by ownerID.
func (r *Items) Picture(ctx context.Context, id, ownerID uuid.UUID) ([]byte, string, error) {
	var data []byte
	var mime sql.NullString
	err := r.db.NewSelect().
		Model((*model.Item)(nil)).
		ColumnExpr("?TableAlias.picture, ?TableAlias.picture_mime").
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Scan(ctx, &data, &mime)
	if err != nil {
		return nil, "", mapDBError(r.log, "getting item picture", err, itemNotFound(id))
	}
	if len(data) == 0 {
		return nil, "", model.ErrNotFound("Item with id: %s has no picture", id)
	}
	return data, mime.String, nil
}

// DeleteAll removes every item.
func (r *Items) DeleteAll(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*model.Item)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return mapDBError(r.log, "deleting items", err, "")
}
