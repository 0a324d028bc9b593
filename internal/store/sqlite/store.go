// Package sqlite implements store.Store on top of a SQLite database.
package sqlite

import (
	"database/sql"
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"

	"github.com/erazemk/shramba/internal/store"
)

var _ store.Store = (*Store)(nil)

// SQLite's lower() only folds ASCII. unicode_lower matches strings.ToLower
// so searches for non-ASCII names behave like the memory store.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("unicode_lower", 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	}
	return args[0], nil
}

// Store is a SQLite-backed store. The database must be migrated.
type Store struct {
	db *sql.DB
}

// New wraps an open, migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
