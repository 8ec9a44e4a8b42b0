package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/erazemk/anylist/internal/imaging"
	"github.com/erazemk/anylist/internal/model"
	"github.com/erazemk/anylist/internal/store"
)

// Items manages the items of their owners.
type Items struct {
	store *store.Store
	log   *slog.Logger
}

// NewItems creates an Items service.
func NewItems(st *store.Store, log *slog.Logger) *Items {
	return &Items{store: st, log: log}
}

// Create adds an item owned by ownerID.
func (s *Items) Create(ctx context.Context, ownerID uuid.UUID, in model.CreateItemInput) (*model.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	item := &model.Item{
		Name:          in.Name,
		QuantityUnits: in.QuantityUnits,
		UserID:        ownerID,
	}
	if err := s.store.Items.Create(ctx, item); err != nil {
		return nil, err
	}
	s.log.Info("item created", "item_id", item.ID, "user_id", ownerID)
	return item, nil
}

// FindAll returns a page of ownerID's items.
func (s *Items) FindAll(ctx context.Context, ownerID uuid.UUID, page model.Page, search model.Search) ([]model.Item, error) {
	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}
	return s.store.Items.FindAll(ctx, ownerID, page, search)
}

// FindOne returns the item with id owned by ownerID.
func (s *Items) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	return s.store.Items.FindOne(ctx, id, ownerID)
}

// Update applies a partial update to the item with id owned by ownerID.
func (s *Items) Update(ctx context.Context, id, ownerID uuid.UUID, in model.UpdateItemInput) (*model.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.Items.Update(ctx, id, ownerID, in)
}

// Remove deletes the item with id owned by ownerID.
func (s *Items) Remove(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	item, err := s.store.Items.Remove(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	s.log.Info("item removed", "item_id", id, "user_id", ownerID)
	return item, nil
}

// Count returns the number of items owned by ownerID.
func (s *Items) Count(ctx context.Context, ownerID uuid.UUID) (int, error) {
	return s.store.Items.CountByOwner(ctx, ownerID)
}

// SetPicture normalizes an uploaded picture and attaches it to the item
// with id owned by ownerID.
func (s *Items) SetPicture(ctx context.Context, id, ownerID uuid.UUID, r io.Reader) (*model.Item, error) {
	if _, err := s.store.Items.FindOne(ctx, id, ownerID); err != nil {
		return nil, err
	}

	pic, err := imaging.Normalize(r, imaging.Options{})
	if err != nil {
		return nil, err
	}
	if err := s.store.Items.SetPicture(ctx, id, ownerID, pic.Data, pic.MIME); err != nil {
		return nil, err
	}

	s.log.Info("item picture set", "item_id", id, "bytes", len(pic.Data), "width", pic.Width, "height", pic.Height)
	return s.store.Items.FindOne(ctx, id, ownerID)
}

// Picture returns the picture of the item with id owned by ownerID.
func (s *Items) Picture(ctx context.Context, id, ownerID uuid.UUID) ([]byte, string, error) {
	return s.store.Items.Picture(ctx, id, ownerID)
}
