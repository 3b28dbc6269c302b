package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Upload stores the content under path and returns its public URL
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Available reports whether the backend can accept writes
	Available() bool
}
