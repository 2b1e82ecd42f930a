package upload

import (
	"errors"
	"time"
)

const (
	FieldName = "image"
	// MaxFileSize is 5 MiB.
	MaxFileSize = int64(5 << 20)
)

// AllowedMimeTypes maps each accepted type to the extension used when the
// client sent a name without one.
var AllowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

var (
	ErrInvalidFileType = errors.New("invalid file type, only JPEG, PNG and GIF images are allowed")
	ErrFileTooLarge    = errors.New("file too large, maximum size is 5MB")
	ErrNoFile          = errors.New("no file uploaded or invalid file type")
)

type (
	Upload struct {
		FileName   string
		MimeType   string
		SizeBytes  int64
		Path       string
		UploadedAt time.Time
	}
	// Stored is what a storage backend reports back after a write.
	Stored struct {
		Name string
		Path string
		Size int64
	}
)

func IsAllowedMimeType(mimeType string) bool {
	_, ok := AllowedMimeTypes[mimeType]
	return ok
}
