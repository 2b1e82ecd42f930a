package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"users-api/internal/domain/upload"
	"users-api/internal/infrastructure/metrics"
	"users-api/internal/infrastructure/storage/local"
)

type fakeStorage struct {
	calls int
	name  string
	ctype string
	limit int64
	err   error
}

func (f *fakeStorage) Save(_ context.Context, name, contentType string, r io.Reader, limit int64) (*upload.Stored, error) {
	f.calls++
	f.name, f.ctype, f.limit = name, contentType, limit
	if f.err != nil {
		return nil, f.err
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}
	return &upload.Stored{Name: name, Path: "mem/" + name, Size: n}, nil
}

func newUploadService(st *fakeStorage) (*UploadService, func(string) float64) {
	counter := newTestCounter()
	s := NewUploadService(st, counter).(*UploadService)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return s, func(label string) float64 { return testutil.ToFloat64(counter.WithLabelValues(label)) }
}

func TestUploadService_SaveImage(t *testing.T) {
	st := &fakeStorage{}
	s, count := newUploadService(st)

	u, err := s.SaveImage(context.Background(), "Cat Pic.PNG", "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	assert.Equal(t, "1700000000000-cat-pic.png", u.FileName)
	assert.Equal(t, "image/png", u.MimeType)
	assert.Equal(t, int64(3), u.SizeBytes)
	assert.Equal(t, "mem/1700000000000-cat-pic.png", u.Path)
	assert.Equal(t, upload.MaxFileSize, st.limit)
	assert.Equal(t, 1.0, count(metrics.UploadAccepted))
}

func TestUploadService_MimeTypeWithParams(t *testing.T) {
	st := &fakeStorage{}
	s, _ := newUploadService(st)

	u, err := s.SaveImage(context.Background(), "a.gif", "IMAGE/GIF; foo=bar", strings.NewReader("gif"))
	require.NoError(t, err)
	assert.Equal(t, "image/gif", u.MimeType)
	assert.Equal(t, "image/gif", st.ctype)
}

func TestUploadService_RejectsTypeBeforeStorage(t *testing.T) {
	for _, ct := range []string{"text/plain", "image/webp", "application/pdf", "", "not a type"} {
		ct := ct
		t.Run(ct, func(t *testing.T) {
			st := &fakeStorage{}
			s, count := newUploadService(st)

			u, err := s.SaveImage(context.Background(), "a.png", ct, strings.NewReader("data"))
			require.ErrorIs(t, err, upload.ErrInvalidFileType)
			assert.Nil(t, u)
			assert.Zero(t, st.calls)
			assert.Equal(t, 1.0, count(metrics.UploadRejected))
		})
	}
}

func TestUploadService_StorageErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantErr      error
		wantRejected float64
	}{
		{"too large", upload.ErrFileTooLarge, upload.ErrFileTooLarge, 1},
		{"request body cap", &http.MaxBytesError{Limit: 10}, upload.ErrFileTooLarge, 1},
		{"disk error", os.ErrPermission, os.ErrPermission, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s, count := newUploadService(&fakeStorage{err: tt.err})

			_, err := s.SaveImage(context.Background(), "a.jpg", "image/jpeg", strings.NewReader("x"))
			require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, tt.wantRejected, count(metrics.UploadRejected))
			assert.Equal(t, 0.0, count(metrics.UploadAccepted))
		})
	}
}

func TestUploadService_LocalStorage_Oversized(t *testing.T) {
	dir := t.TempDir()
	st, err := local.New(zap.NewNop(), dir)
	require.NoError(t, err)
	s := NewUploadService(st, newTestCounter())

	big := bytes.Repeat([]byte{0xFF}, int(upload.MaxFileSize)+1)
	_, err = s.SaveImage(context.Background(), "big.jpg", "image/jpeg", bytes.NewReader(big))
	require.ErrorIs(t, err, upload.ErrFileTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadService_LocalStorage_MaxBytesReader(t *testing.T) {
	dir := t.TempDir()
	st, err := local.New(zap.NewNop(), dir)
	require.NoError(t, err)
	s := NewUploadService(st, newTestCounter())

	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader("0123456789")), 4)
	_, err = s.SaveImage(context.Background(), "a.png", "image/png", body)
	require.ErrorIs(t, err, upload.ErrFileTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
