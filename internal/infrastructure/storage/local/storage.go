package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"users-api/internal/domain/upload"
)

// Storage writes uploads into a single directory. Data lands in a temp file
// first and is renamed into place only once it is known to fit the limit.
type Storage struct {
	logger *zap.Logger
	dir    string
	mu     sync.Mutex
}

func New(logger *zap.Logger, dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}

	logger.Info("upload dir ready", zap.String("dir", dir))

	return &Storage{logger: logger, dir: dir}, nil
}

func (s *Storage) Save(
	ctx context.Context,
	name string,
	_ string,
	r io.Reader,
	limit int64,
) (*upload.Stored, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid file name %q", name)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, err
	}
	tmpName := tmp.Name()
	keep := false
	defer func() {
		if !keep {
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, io.LimitReader(r, limit+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, upload.ErrFileTooLarge
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	final := s.freeName(name)
	path := filepath.Join(s.dir, final)
	if err = os.Rename(tmpName, path); err != nil {
		return nil, err
	}
	keep = true

	s.logger.Debug("upload stored", zap.String("path", path), zap.Int64("size", n))

	return &upload.Stored{
		Name: final,
		Path: path,
		Size: n,
	}, nil
}

// freeName appends -1, -2... before the extension until nothing on disk
// has the name. Must be called with mu held.
func (s *Storage) freeName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; ; i++ {
		if _, err := os.Lstat(filepath.Join(s.dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
}
