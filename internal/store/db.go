package store

import (
	"context"
	"database/sql"
)

// DBTX is the database handle the store implementations run their
// statements against. Both *sql.DB and *sql.Tx satisfy it, so a store
// can be pointed at the shared pool or at an open transaction without
// changing its code.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
