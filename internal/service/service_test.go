package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/anylist/internal/auth"
	"github.com/erazemk/anylist/internal/db"
	"github.com/erazemk/anylist/internal/model"
	"github.com/erazemk/anylist/internal/store"
)

type env struct {
	store    *store.Store
	accounts *Accounts
	items    *Items
	lists    *Lists
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(db.NewTestDB(t), log)
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)
	return &env{
		store:    st,
		accounts: NewAccounts(st, tokens, log),
		items:    NewItems(st, log),
		lists:    NewLists(st, log),
	}
}

func (e *env) signUp(t *testing.T) *model.AuthResponse {
	t.Helper()
	res, err := e.accounts.SignUp(context.Background(), model.SignUpInput{
		FullName: gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	})
	require.NoError(t, err)
	return res
}

// promote grants roles directly in the store.
func (e *env) promote(t *testing.T, u *model.User, roles ...model.Role) {
	t.Helper()
	u.Roles = roles
	require.NoError(t, e.store.Users.Update(context.Background(), u, "roles"))
}

func assertKind[T error](t *testing.T, err error) T {
	t.Helper()
	var target T
	require.Error(t, err)
	require.True(t, errors.As(err, &target), "expected %T, got %T: %v", target, err, err)
	return target
}
