package services

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"users-api/internal/application/ports"
	"users-api/internal/domain/upload"
	"users-api/internal/infrastructure/metrics"
)

type UploadService struct {
	storage  ports.FileStorage
	mCounter *prometheus.CounterVec
	now      func() time.Time
}

func NewUploadService(
	storage ports.FileStorage,
	mCounter *prometheus.CounterVec,
) ports.UploadService {
	return &UploadService{
		storage:  storage,
		mCounter: mCounter,
		now:      time.Now,
	}
}

// SaveImage checks the declared type before reading any data from r.
func (s *UploadService) SaveImage(
	ctx context.Context,
	originalName string,
	mimeType string,
	r io.Reader,
) (*upload.Upload, error) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil || !upload.IsAllowedMimeType(mediaType) {
		s.mCounter.WithLabelValues(metrics.UploadRejected).Inc()
		return nil, upload.ErrInvalidFileType
	}

	now := s.now().UTC()
	name := storageName(now, originalName, mediaType)

	st, err := s.storage.Save(ctx, name, mediaType, r, upload.MaxFileSize)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			err = upload.ErrFileTooLarge
		}
		if errors.Is(err, upload.ErrFileTooLarge) {
			s.mCounter.WithLabelValues(metrics.UploadRejected).Inc()
		}
		return nil, err
	}

	s.mCounter.WithLabelValues(metrics.UploadAccepted).Inc()

	return &upload.Upload{
		FileName:   st.Name,
		MimeType:   mediaType,
		SizeBytes:  st.Size,
		Path:       st.Path,
		UploadedAt: now,
	}, nil
}
