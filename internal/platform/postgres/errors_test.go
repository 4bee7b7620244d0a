package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/casemadad/courtflow/internal/store"
)

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: "cases_case_number_key"}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "nil passes through", err: nil, expected: nil},
		{name: "no rows becomes not found", err: sql.ErrNoRows, expected: store.ErrNotFound},
		{name: "unique violation becomes duplicate", err: pgError("23505"), expected: store.ErrDuplicate},
		{name: "foreign key violation becomes invalid entity", err: pgError("23503"), expected: store.ErrInvalidEntity},
		{name: "check violation becomes invalid entity", err: pgError("23514"), expected: store.ErrInvalidEntity},
		{name: "not null violation becomes invalid entity", err: pgError("23502"), expected: store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mapped := MapError(tc.err)
			if tc.expected == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.expected)
		})
	}
}

func TestMapErrorPreservesUnknownErrors(t *testing.T) {
	t.Parallel()

	original := errors.New("connection reset")
	assert.Equal(t, original, MapError(original))

	// Wrapped driver errors still map.
	wrapped := fmt.Errorf("query failed: %w", sql.ErrNoRows)
	assert.ErrorIs(t, MapError(wrapped), store.ErrNotFound)
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError("23505")))
	assert.False(t, IsUniqueViolation(pgError("23503")))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))

	assert.True(t, IsForeignKeyViolation(pgError("23503")))
	assert.False(t, IsForeignKeyViolation(pgError("23505")))

	// Wrapped pg errors are still detected.
	wrapped := fmt.Errorf("insert failed: %w", pgError("23505"))
	assert.True(t, IsUniqueViolation(wrapped))
}
