package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError("list laborers", nil))
}

func TestWrapError_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Message: `relation "laborers" does not exist`,
		Code:    "42P01",
		Detail:  "missing table",
		Hint:    "run migrations",
	}

	err := WrapError("list laborers", pgErr)

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "42P01", storageErr.Code)
	assert.Equal(t, "missing table", storageErr.Detail)
	assert.Equal(t, "run migrations", storageErr.Hint)
	assert.Equal(t,
		`list laborers: relation "laborers" does not exist (code 42P01, details: missing table, hint: run migrations)`,
		err.Error(),
	)
	assert.ErrorIs(t, err, pgErr)
}

func TestWrapError_PlainError(t *testing.T) {
	err := WrapError("insert daily entries", errors.New("connection reset"))
	assert.Equal(t, "insert daily entries: connection reset", err.Error())
	assert.Contains(t, (err.(*StorageError)).LogAttrs(), "connection reset")
}

func TestErrorMessage(t *testing.T) {
	wrapped := fmt.Errorf("insert laborer: %w", WrapError("insert laborer", &pgconn.PgError{Message: "duplicate key value", Code: "23505"}))
	assert.Equal(t, "duplicate key value", ErrorMessage(wrapped))
	assert.Equal(t, "plain failure", ErrorMessage(errors.New("plain failure")))
}
