package db

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// FoldFunc is the SQL name of a Unicode-aware lower(). SQLite's built-in
// LOWER only folds ASCII.
const FoldFunc = "ulower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(FoldFunc, 1, fold)
}

func fold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
