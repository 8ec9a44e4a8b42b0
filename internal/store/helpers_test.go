package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/anylist/internal/db"
	"github.com/erazemk/anylist/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(db.NewTestDB(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var userSeq int

func createUser(t *testing.T, s *Store, name string, roles ...model.Role) *model.User {
	t.Helper()
	userSeq++
	u := &model.User{
		FullName:     name,
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		PasswordHash: "hash",
		Roles:        roles,
		IsActive:     true,
	}
	require.NoError(t, s.Users.Create(context.Background(), u), "creating user")
	return u
}

func createItem(t *testing.T, s *Store, owner *model.User, name string) *model.Item {
	t.Helper()
	item := &model.Item{Name: name, UserID: owner.ID}
	require.NoError(t, s.Items.Create(context.Background(), item), "creating item")
	return item
}

func createList(t *testing.T, s *Store, owner *model.User, name string) *model.List {
	t.Helper()
	list := &model.List{Name: name, UserID: owner.ID}
	require.NoError(t, s.Lists.Create(context.Background(), list), "creating list")
	return list
}

func assertNotFound(t *testing.T, err error, msgAndArgs ...any) bool {
	t.Helper()
	var nf *model.NotFoundError
	return assert.ErrorAs(t, err, &nf, msgAndArgs...)
}

func assertConflict(t *testing.T, err error, msgAndArgs ...any) bool {
	t.Helper()
	var c *model.ConflictError
	return assert.ErrorAs(t, err, &c, msgAndArgs...)
}
