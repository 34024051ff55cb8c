package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"
	"linekeeper/internal/infrastructure/storage"
)

const ext = ".json"

// Storage keeps every document as <dir>/<name>.json.
type Storage struct {
	dir string
	log *slog.Logger
}

func New(dir string, log *slog.Logger) (*Storage, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{
		dir: dir,
		log: log.With("component", "file_storage"),
	}, nil
}

func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name+ext)
}

func (s *Storage) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Write replaces the document through a temp file and rename, so a reader
// never sees a half-written document.
func (s *Storage) Write(_ context.Context, name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}

	s.log.Debug("document written", "name", name, "bytes", len(data))
	return nil
}

func (s *Storage) Close() error {
	return nil
}
