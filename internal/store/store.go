// Package store implements the repositories over SQLite using bun.
package store

import (
	"context"
	"log/slog"

	"github.com/uptrace/bun"
)

// Store groups the repositories sharing one database handle.
type Store struct {
	db  bun.IDB
	log *slog.Logger

	Users     *Users
	Items     *Items
	Lists     *Lists
	ListItems *ListItems
	Tokens    *Tokens
	Settings  *Settings
}

// New creates a Store over db, which may be a *bun.DB or a bun.Tx.
func New(db bun.IDB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		db:        db,
		log:       log,
		Users:     &Users{db: db, log: log},
		Items:     &Items{db: db, log: log},
		Lists:     &Lists{db: db, log: log},
		ListItems: &ListItems{db: db, log: log},
		Tokens:    &Tokens{db: db, log: log},
		Settings:  &Settings{db: db, log: log},
	}
}

// RunInTx runs fn with a Store bound to a single transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, New(tx, s.log))
	})
}
