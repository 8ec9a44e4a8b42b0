package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/anylist/internal/model"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const uniquePrefix = "UNIQUE constraint failed: "

// mapDBError converts a storage error into a domain error. notFound is the
// message reported for a missing row. Unexpected errors are logged with
// full detail and returned as an InternalError.
func mapDBError(log *slog.Logger, op string, err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound("%s", notFound)
	}

	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return model.ErrConflict("%s already exists", uniqueColumns(serr.Error()))
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return model.ErrConflict("record is still referenced or references a missing record")
		}
	}

	log.Error("database error", "op", op, "error", err)
	return &model.InternalError{Err: fmt.Errorf("%s: %w", op, err)}
}

// uniqueColumns extracts the column names from a SQLite uniqueness error,
// e.g. "UNIQUE constraint failed: list_items.list_id, list_items.item_id
// (2067)" yields "list_id, item_id".
func uniqueColumns(msg string) string {
	i := strings.Index(msg, uniquePrefix)
	if i < 0 {
		return "record"
	}
	rest := msg[i+len(uniquePrefix):]
	if j := strings.Index(rest, " ("); j >= 0 {
		rest = rest[:j]
	}
	cols := strings.Split(rest, ",")
	for k, col := range cols {
		col = strings.TrimSpace(col)
		if dot := strings.LastIndex(col, "."); dot >= 0 {
			col = col[dot+1:]
		}
		cols[k] = col
	}
	return strings.Join(cols, ", ")
}
