package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// StorageError carries the driver's message, SQLSTATE code, detail and hint
// for a failed statement.
type StorageError struct {
	Op      string
	Message string
	Code    string
	Detail  string
	Hint    string
	Err     error
}

func (e *StorageError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Message)

	var extra []string
	if e.Code != "" {
		extra = append(extra, "code "+e.Code)
	}
	if e.Detail != "" {
		extra = append(extra, "details: "+e.Detail)
	}
	if e.Hint != "" {
		extra = append(extra, "hint: "+e.Hint)
	}
	if len(extra) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(extra, ", "))
	}
	return b.String()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// LogAttrs returns key/value pairs for slog.
func (e *StorageError) LogAttrs() []any {
	return []any{
		"op", e.Op,
		"message", e.Message,
		"code", e.Code,
		"details", e.Detail,
		"hint", e.Hint,
	}
}

// WrapError converts a driver error into a *StorageError. Nil stays nil.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	storageErr := &StorageError{Op: op, Message: err.Error(), Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		storageErr.Message = pgErr.Message
		storageErr.Code = pgErr.Code
		storageErr.Detail = pgErr.Detail
		storageErr.Hint = pgErr.Hint
	}

	return storageErr
}

// ErrorMessage returns the driver's message when err carries a StorageError,
// otherwise err.Error().
func ErrorMessage(err error) string {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return storageErr.Message
	}
	return err.Error()
}

// LogError logs err at error level with the storage attributes when present.
func LogError(ctx context.Context, msg string, err error, attrs ...any) {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		attrs = append(attrs, storageErr.LogAttrs()...)
	}
	attrs = append(attrs, "error", err)
	slog.ErrorContext(ctx, msg, attrs...)
}
