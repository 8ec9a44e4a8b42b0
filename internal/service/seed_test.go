package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/anylist/internal/model"
)

func TestSeed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	seeder := NewSeeder(e.store, false, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Existing data is wiped.
	stale := e.signUp(t).User

	res, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{Users: len(seedUsers), Items: len(seedItems), Lists: len(seedLists), ListItems: seedEntries}, res)

	_, err = e.accounts.FindOne(ctx, stale.ID)
	assertKind[*model.NotFoundError](t, err)

	login, err := e.accounts.Login(ctx, model.LoginInput{Email: seedUsers[0].email, Password: seedUsers[0].password})
	require.NoError(t, err)
	owner := login.User
	assert.True(t, owner.Roles.Has(model.RoleAdmin))

	lists, err := e.lists.FindAll(ctx, owner.ID, model.DefaultPage(), model.Search{Term: seedLists[0]})
	require.NoError(t, err)
	require.Len(t, lists, 1)

	entries, err := e.lists.Entries(ctx, lists[0].ID, owner.ID, model.Page{Limit: model.MaxLimit}, model.Search{})
	require.NoError(t, err)
	require.Len(t, entries, seedEntries)
	for _, v := range entries {
		assert.GreaterOrEqual(t, v.Quantity, 1)
		assert.LessOrEqual(t, v.Quantity, 20)
		assert.False(t, v.Completed)
	}

	// Seeding again yields the same shape.
	_, err = seeder.Seed(ctx)
	require.NoError(t, err)
	users, err := e.accounts.FindAll(ctx, nil, model.Page{Limit: model.MaxLimit}, model.Search{})
	require.NoError(t, err)
	assert.Len(t, users, len(seedUsers))
}

func TestSeedRefusedInProduction(t *testing.T) {
	e := newEnv(t)
	seeder := NewSeeder(e.store, true, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := seeder.Seed(context.Background())
	assertKind[*model.ForbiddenError](t, err)
}
