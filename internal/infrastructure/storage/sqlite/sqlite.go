package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
	"linekeeper/internal/infrastructure/migration"
	"linekeeper/internal/infrastructure/storage"
)

// Storage keeps documents as rows of a single table in a local SQLite file.
type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

func New(path string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := migration.NewMigration(path, nil).Up(); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &Storage{
		db:  db,
		log: log.With("component", "sqlite_storage"),
	}
	s.log.Debug("sqlite storage opened", "path", path)

	return s, nil
}

func (s *Storage) Read(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return body, nil
}

func (s *Storage) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, name, data, time.Now().UTC())
	if err != nil {
		s.log.Error("failed to write document", "name", name, "error", err)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
