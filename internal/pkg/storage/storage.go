package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

// FileStorage keeps generated documents such as payroll workbooks
type FileStorage interface {
	// Upload stores the content under key and returns the normalized key
	Upload(ctx context.Context, content io.Reader, key string, contentType string) (string, error)

	// Download opens a stored file
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, key string) error

	// GetURL returns a public or presigned URL for key
	GetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
