package ports

import (
	"context"
	"io"

	"users-api/internal/domain/upload"
)

type UploadService interface {
	SaveImage(ctx context.Context, originalName, mimeType string, r io.Reader) (*upload.Upload, error)
}
