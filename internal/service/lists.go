package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/erazemk/anylist/internal/model"
	"github.com/erazemk/anylist/internal/store"
)

// Lists manages lists and their entries. An entry is visible to the owner
// of its list, and only the owner's items can be placed on it.
type Lists struct {
	store *store.Store
	log   *slog.Logger
}

// NewLists creates a Lists service.
func NewLists(st *store.Store, log *slog.Logger) *Lists {
	return &Lists{store: st, log: log}
}

// Create adds a list owned by ownerID.
func (s *Lists) Create(ctx context.Context, ownerID uuid.UUID, in model.CreateListInput) (*model.List, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	list := &model.List{Name: in.Name, UserID: ownerID}
	if err := s.store.Lists.Create(ctx, list); err != nil {
		return nil, err
	}
	s.log.Info("list created", "list_id", list.ID, "user_id", ownerID)
	return list, nil
}

// FindAll returns a page of ownerID's lists.
func (s *Lists) FindAll(ctx context.Context, ownerID uuid.UUID, page model.Page, search model.Search) ([]model.List, error) {
	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}
	return s.store.Lists.FindAll(ctx, ownerID, page, search)
}

// FindOne returns the list with id owned by ownerID.
func (s *Lists) FindOne(ctx context.Context, id, ownerID uuid.UUID) (*model.List, error) {
	return s.store.Lists.FindOne(ctx, id, ownerID)
}

// Update applies a partial update to the list with id owned by ownerID.
func (s *Lists) Update(ctx context.Context, id, ownerID uuid.UUID, in model.UpdateListInput) (*model.List, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.Lists.Update(ctx, id, ownerID, in)
}

// Remove deletes the list with id owned by ownerID.
func (s *Lists) Remove(ctx context.Context, id, ownerID uuid.UUID) (*model.List, error) {
	list, err := s.store.Lists.Remove(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	s.log.Info("list removed", "list_id", id, "user_id", ownerID)
	return list, nil
}

// Count returns the number of lists owned by ownerID.
func (s *Lists) Count(ctx context.Context, ownerID uuid.UUID) (int, error) {
	return s.store.Lists.CountByOwner(ctx, ownerID)
}

// Entries returns a page of the entries of list id, each with its item.
func (s *Lists) Entries(ctx context.Context, id, ownerID uuid.UUID, page model.Page, search model.Search) ([]model.ListItemView, error) {
	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Lists.FindOne(ctx, id, ownerID); err != nil {
		return nil, err
	}

	entries, err := s.store.ListItems.FindAllByList(ctx, id, page, search)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, li := range entries {
		ids = append(ids, li.ItemID)
	}
	items, err := s.store.Items.FindByIDs(ctx, ids, ownerID)
	if err != nil {
		return nil, err
	}

	views := make([]model.ListItemView, 0, len(entries))
	for i := range entries {
		views = append(views, model.ListItemView{ListItem: &entries[i], Item: items[entries[i].ItemID]})
	}
	return views, nil
}

// CountEntries returns the number of entries on list id.
func (s *Lists) CountEntries(ctx context.Context, id, ownerID uuid.UUID) (int, error) {
	if _, err := s.store.Lists.FindOne(ctx, id, ownerID); err != nil {
		return 0, err
	}
	return s.store.ListItems.CountByList(ctx, id)
}

// AddEntry places one of ownerID's items on one of ownerID's lists.
// Quantity defaults to 0 and completion to false.
func (s *Lists) AddEntry(ctx context.Context, ownerID uuid.UUID, in model.CreateListItemInput) (*model.ListItemView, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	listID, err := model.ParseID("list_id", in.ListID)
	if err != nil {
		return nil, err
	}
	itemID, err := model.ParseID("item_id", in.ItemID)
	if err != nil {
		return nil, err
	}

	list, err := s.store.Lists.FindOne(ctx, listID, ownerID)
	if err != nil {
		return nil, err
	}
	item, err := s.store.Items.FindOne(ctx, itemID, ownerID)
	if err != nil {
		return nil, err
	}

	li := &model.ListItem{ListID: listID, ItemID: itemID}
	if in.Quantity != nil {
		li.Quantity = *in.Quantity
	}
	if in.Completed != nil {
		li.Completed = *in.Completed
	}
	if err := s.store.ListItems.Create(ctx, li); err != nil {
		return nil, err
	}

	return &model.ListItemView{ListItem: li, Item: item, List: list}, nil
}

// Entry returns the entry with id if its list is owned by ownerID.
func (s *Lists) Entry(ctx context.Context, id, ownerID uuid.UUID) (*model.ListItemView, error) {
	li, err := s.store.ListItems.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	list, err := s.store.Lists.FindOne(ctx, li.ListID, ownerID)
	var nf *model.NotFoundError
	if errors.As(err, &nf) {
		return nil, model.ErrNotFound("List item with id %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	item, err := s.store.Items.FindOne(ctx, li.ItemID, ownerID)
	if err != nil && !errors.As(err, &nf) {
		return nil, err
	}

	return &model.ListItemView{ListItem: li, Item: item, List: list}, nil
}

// UpdateEntry applies a partial update to the entry with id. The entry may
// be moved to another list or pointed at another item, both of which must
// be owned by ownerID.
func (s *Lists) UpdateEntry(ctx context.Context, id, ownerID uuid.UUID, in model.UpdateListItemInput) (*model.ListItemView, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	view, err := s.Entry(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	li := view.ListItem

	if in.Quantity != nil {
		li.Quantity = *in.Quantity
	}
	if in.Completed != nil {
		li.Completed = *in.Completed
	}
	if in.ListID != nil {
		listID, err := model.ParseID("list_id", *in.ListID)
		if err != nil {
			return nil, err
		}
		if view.List, err = s.store.Lists.FindOne(ctx, listID, ownerID); err != nil {
			return nil, err
		}
		li.ListID = listID
	}
	if in.ItemID != nil {
		itemID, err := model.ParseID("item_id", *in.ItemID)
		if err != nil {
			return nil, err
		}
		if view.Item, err = s.store.Items.FindOne(ctx, itemID, ownerID); err != nil {
			return nil, err
		}
		li.ItemID = itemID
	}

	if err := s.store.ListItems.Update(ctx, li); err != nil {
		return nil, err
	}
	return view, nil
}

// RemoveEntry deletes the entry with id if its list is owned by ownerID.
func (s *Lists) RemoveEntry(ctx context.Context, id, ownerID uuid.UUID) (*model.ListItem, error) {
	if _, err := s.Entry(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return s.store.ListItems.Remove(ctx, id)
}
