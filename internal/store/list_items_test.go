package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/anylist/internal/model"
)

func TestListItemsUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	item := createItem(t, s, owner, "Milk")
	list := createList(t, s, owner, "Groceries")

	require.NoError(t, s.ListItems.Create(ctx, &model.ListItem{ListID: list.ID, ItemID: item.ID, Quantity: 2}))

	err := s.ListItems.Create(ctx, &model.ListItem{ListID: list.ID, ItemID: item.ID, Quantity: 1})
	require.True(t, assertConflict(t, err))
	assert.EqualError(t, err, "list_id, item_id already exists")

	n, err := s.ListItems.CountByList(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestListItemsFindAllByListSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	list := createList(t, s, owner, "Groceries")
	other := createList(t, s, owner, "Other")
	for _, name := range []string{"Milk", "Oat Milk", "Bread", "Črne olive"} {
		item := createItem(t, s, owner, name)
		require.NoError(t, s.ListItems.Create(ctx, &model.ListItem{ListID: list.ID, ItemID: item.ID}))
		require.NoError(t, s.ListItems.Create(ctx, &model.ListItem{ListID: other.ID, ItemID: item.ID}))
	}

	all, err := s.ListItems.FindAllByList(ctx, list.ID, model.DefaultPage(), model.Search{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, li := range all {
		assert.Equal(t, list.ID, li.ListID)
	}

	milk, err := s.ListItems.FindAllByList(ctx, list.ID, model.DefaultPage(), model.Search{Term: "milk"})
	require.NoError(t, err)
	assert.Len(t, milk, 2)

	olives, err := s.ListItems.FindAllByList(ctx, list.ID, model.DefaultPage(), model.Search{Term: "čRNE"})
	require.NoError(t, err)
	require.Len(t, olives, 1)
	assert.Equal(t, all[3].ID, olives[0].ID)

	page, err := s.ListItems.FindAllByList(ctx, list.ID, model.Page{Limit: 1, Offset: 1}, model.Search{})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, all[1].ID, page[0].ID)
}

func TestListItemsUpdateAndRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	milk := createItem(t, s, owner, "Milk")
	bread := createItem(t, s, owner, "Bread")
	list := createList(t, s, owner, "Groceries")

	li := &model.ListItem{ListID: list.ID, ItemID: milk.ID, Quantity: 1}
	require.NoError(t, s.ListItems.Create(ctx, li))
	require.NoError(t, s.ListItems.Create(ctx, &model.ListItem{ListID: list.ID, ItemID: bread.ID}))

	li.Quantity = 3
	li.Completed = true
	require.NoError(t, s.ListItems.Update(ctx, li))
	got, err := s.ListItems.FindOne(ctx, li.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	assert.True(t, got.Completed)

	// Reassigning onto an existing (list, item) pair conflicts.
	li.ItemID = bread.ID
	assertConflict(t, s.ListItems.Update(ctx, li))

	_, err = s.ListItems.Remove(ctx, li.ID)
	require.NoError(t, err)
	_, err = s.ListItems.FindOne(ctx, li.ID)
	assertNotFound(t, err, "after remove")
}
