package ports

import (
	"context"
	"io"

	"users-api/internal/domain/upload"
)

// FileStorage must return upload.ErrFileTooLarge, and keep nothing, when r
// yields more than limit bytes.
type FileStorage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, limit int64) (*upload.Stored, error)
}
