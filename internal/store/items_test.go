package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/anylist/internal/model"
)

func TestItemsOwnershipIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createUser(t, s, "Alice")
	bob := createUser(t, s, "Bob")
	milk := createItem(t, s, alice, "Milk")

	_, err := s.Items.FindOne(ctx, milk.ID, alice.ID)
	require.NoError(t, err)

	_, foreignErr := s.Items.FindOne(ctx, milk.ID, bob.ID)
	require.True(t, assertNotFound(t, foreignErr, "foreign item"))
	_, missingErr := s.Items.FindOne(ctx, uuid.New(), bob.ID)
	require.True(t, assertNotFound(t, missingErr, "missing item"))
	// Foreign and missing records are indistinguishable apart from the id.
	assert.EqualError(t, foreignErr, itemNotFound(milk.ID))

	name := "Oat milk"
	_, err = s.Items.Update(ctx, milk.ID, bob.ID, model.UpdateItemInput{Name: &name})
	assertNotFound(t, err, "updating foreign item")
	_, err = s.Items.Remove(ctx, milk.ID, bob.ID)
	assertNotFound(t, err, "removing foreign item")

	bobs, err := s.Items.FindAll(ctx, bob.ID, model.DefaultPage(), model.Search{})
	require.NoError(t, err)
	assert.Empty(t, bobs)
}

func TestItemsPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	for i := 0; i < 5; i++ {
		createItem(t, s, owner, fmt.Sprintf("item-%d", i))
	}

	page, err := s.Items.FindAll(ctx, owner.ID, model.Page{Limit: 2, Offset: 2}, model.Search{})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "item-2", page[0].Name)
	assert.Equal(t, "item-3", page[1].Name)

	// Repeating the query yields the same window.
	again, err := s.Items.FindAll(ctx, owner.ID, model.Page{Limit: 2, Offset: 2}, model.Search{})
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, page[0].ID, again[0].ID)
	assert.Equal(t, page[1].ID, again[1].ID)

	tail, err := s.Items.FindAll(ctx, owner.ID, model.Page{Limit: 10, Offset: 4}, model.Search{})
	require.NoError(t, err)
	assert.Len(t, tail, 1)
}

func TestItemsSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	createItem(t, s, owner, "Apple")
	createItem(t, s, owner, "Pineapple")
	createItem(t, s, owner, "Banana")
	createItem(t, s, owner, "100% juice")

	found, err := s.Items.FindAll(ctx, owner.ID, model.DefaultPage(), model.Search{Term: "APPLE"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// Wildcards in the term match literally.
	pct, err := s.Items.FindAll(ctx, owner.ID, model.DefaultPage(), model.Search{Term: "%"})
	require.NoError(t, err)
	require.Len(t, pct, 1)
	assert.Equal(t, "100% juice", pct[0].Name)
}

func TestItemsSearchNonASCII(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	chocolate := createItem(t, s, owner, "Čokolada")
	apples := createItem(t, s, owner, "Äpfel")
	createItem(t, s, owner, "Kava")

	tests := []struct {
		term string
		want *model.Item
	}{
		{"Čokolada", chocolate},
		{"čokolada", chocolate},
		{"ČOKOLADA", chocolate},
		{"okolada", chocolate},
		{"Äpfel", apples},
		{"äPFEL", apples},
	}
	for _, tt := range tests {
		found, err := s.Items.FindAll(ctx, owner.ID, model.DefaultPage(), model.Search{Term: tt.term})
		require.NoError(t, err)
		require.Len(t, found, 1, "search %q", tt.term)
		assert.Equal(t, tt.want.ID, found[0].ID, "search %q", tt.term)
	}
}

func TestItemsUpdateAndCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	item := createItem(t, s, owner, "Milk")
	createItem(t, s, owner, "Bread")

	units := "liters"
	updated, err := s.Items.Update(ctx, item.ID, owner.ID, model.UpdateItemInput{QuantityUnits: &units})
	require.NoError(t, err)
	assert.Equal(t, "Milk", updated.Name)
	require.NotNil(t, updated.QuantityUnits)
	assert.Equal(t, "liters", *updated.QuantityUnits)

	n, err := s.Items.CountByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	removed, err := s.Items.Remove(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, removed.ID)

	n, err = s.Items.CountByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestItemsRemoveReferenced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	item := createItem(t, s, owner, "Milk")
	list := createList(t, s, owner, "Groceries")
	require.NoError(t, s.ListItems.Create(ctx, &model.ListItem{ListID: list.ID, ItemID: item.ID}))

	_, err := s.Items.Remove(ctx, item.ID, owner.ID)
	assertConflict(t, err, "removing referenced item")
	_, err = s.Lists.Remove(ctx, list.ID, owner.ID)
	assertConflict(t, err, "removing non-empty list")
}

func TestItemPicture(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	other := createUser(t, s, "Other")
	item := createItem(t, s, owner, "Milk")

	_, _, err := s.Items.Picture(ctx, item.ID, owner.ID)
	require.True(t, assertNotFound(t, err, "before upload"))

	require.NoError(t, s.Items.SetPicture(ctx, item.ID, owner.ID, []byte{0xff, 0xd8, 0xff}, "image/jpeg"))
	data, mime, err := s.Items.Picture(ctx, item.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)
	assert.Equal(t, "image/jpeg", mime)

	assertNotFound(t, s.Items.SetPicture(ctx, item.ID, other.ID, []byte{1}, "image/jpeg"), "foreign upload")
	_, _, err = s.Items.Picture(ctx, item.ID, other.ID)
	assertNotFound(t, err, "foreign picture")
}

func TestItemsFindByIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createUser(t, s, "Owner")
	other := createUser(t, s, "Other")
	milk := createItem(t, s, owner, "Milk")
	bread := createItem(t, s, owner, "Bread")
	foreign := createItem(t, s, other, "Foreign")

	found, err := s.Items.FindByIDs(ctx, []uuid.UUID{milk.ID, bread.ID, foreign.ID}, owner.ID)
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Contains(t, found, milk.ID)
	assert.Contains(t, found, bread.ID)

	empty, err := s.Items.FindByIDs(ctx, nil, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
