package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/erazemk/anylist/internal/model"
)

// Lists persists lists, scoped to the owning user like Items.
type Lists struct {
	db  bun.IDB
	log *slog.Logger
}

func listNotFound(id uuid.UUID) string {
	return "List with id: " + id.String() + " not found"
}

// Create inserts list, assigning its ID and creation time.
func (r *Lists) Create(ctx context.Context, list *model.List) error {
	if list.ID == uuid.Nil {
		list.ID = uuid.New()
	}
	list.CreatedAt = time.Now().UTC()

	if _, err := r.db.NewInsert().Model(list).Exec(ctx); err != nil {
		return mapDBError(r.log, "creating list", err, "")
	}
	return nil
}

// FindAll returns a page of ownerID's lists whose name contains the search
// term.
func (r *Lists) FindAll(ctx context.Context, ownerID uuid.UUID, page model.Page, s model.Search) ([]model.List, error) {
	lists := make([]model.List, 0)
	q := r.db.NewSelect().
		Model(&lists).
		Where("?TableAlias.user_id = ?", ownerID)
	q = search(q, s, "?TableAlias.name")

	if err := paginate(q, page).Scan(ctx); err != nil {
		return nil, mapDBError(r.log, "listing lists", err, "")
	}
	return lists, nil
}

// FindOne returns the list with id owned by ownerID.
func (r *Lists) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*model.List, error) {
	list := new(model.List)
	err := r.db.NewSelect().
		Model(list).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Scan(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "getting list", err, listNotFound(id))
	}
	return list, nil
}

// Update applies in to the list with id owned by ownerID.
func (r *Lists) Update(ctx context.Context, id, ownerID uuid.UUID, in model.UpdateListInput) (*model.List, error) {
	list, err := r.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		list.Name = *in.Name
	}

	_, err = r.db.NewUpdate().
		Model(list).
		Column("name").
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "updating list", err, listNotFound(id))
	}
	return list, nil
}

// Remove deletes the list with id owned by ownerID and returns it. A list
// that still has entries cannot be removed.
func (r *Lists) Remove(ctx context.Context, id, ownerID uuid.UUID) (*model.List, error) {
	list, err := r.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	_, err = r.db.NewDelete().
		Model(list).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "removing list", err, listNotFound(id))
	}
	return list, nil
}

// CountByOwner returns the number of lists owned by ownerID.
func (r *Lists) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	n, err := r.db.NewSelect().
		Model((*model.List)(nil)).
		Where("?TableAlias.user_id = ?", ownerID).
		Count(ctx)
	if err != nil {
		return 0, mapDBError(r.log, "counting lists", err, "")
	}
	return n, nil
}

// DeleteAll removes every list.
func (r *Lists) DeleteAll(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*model.List)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return mapDBError(r.log, "deleting lists", err, "")
}
