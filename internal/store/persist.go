package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"linekeeper/internal/domain/line"
	"linekeeper/internal/domain/user"
	"linekeeper/internal/infrastructure/storage"
)

// Load reads both documents. A document that is missing, blank or not a JSON
// array is replaced with seed data. Lines are normalized to a single default,
// records without a usable identifier get a new one, and both documents are
// written back.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, ok := readDocument[line.Line](ctx, s.docs, s.log, storage.LinesDocument)
	if !ok {
		lines = s.seed.Lines()
		s.log.Info("seeded lines", "count", len(lines))
	}
	s.lines = lines
	s.repairLineIDs()
	line.Normalize(s.lines)

	users, ok := readDocument[user.User](ctx, s.docs, s.log, storage.UsersDocument)
	if !ok {
		users = s.seed.Users()
		s.log.Info("seeded users", "count", len(users))
	}
	s.users = users
	s.repairUserIDs()

	s.log.Info("store loaded", "lines", len(s.lines), "users", len(s.users))
	return s.saveLocked(ctx)
}

// Save overwrites both documents with the current collections.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	return errors.Join(s.persistLines(ctx), s.persistUsers(ctx))
}

func (s *Store) write(ctx context.Context, name string, items any) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrPersist, name, err)
	}
	if err := s.docs.Write(ctx, name, data); err != nil {
		s.log.Error("failed to persist collection", "document", name, "error", err)
		return fmt.Errorf("%w %s: %v", ErrPersist, name, err)
	}
	return nil
}

func readDocument[T any](ctx context.Context, docs storage.Documents, log *slog.Logger, name string) ([]T, bool) {
	data, err := docs.Read(ctx, name)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("document unreadable, reseeding", "document", name, "error", err)
		}
		return nil, false
	}

	if len(bytes.TrimSpace(data)) == 0 {
		log.Warn("document empty, reseeding", "document", name)
		return nil, false
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("document corrupt, reseeding", "document", name, "error", err)
		return nil, false
	}
	if items == nil {
		log.Warn("document is null, reseeding", "document", name)
		return nil, false
	}

	return items, true
}

func (s *Store) repairLineIDs() {
	seen := make(map[uuid.UUID]bool, len(s.lines))
	for i := range s.lines {
		id := s.lines[i].ID
		if id == uuid.Nil || seen[id] {
			id = s.freshID(func(c uuid.UUID) bool { return seen[c] || s.lineIDTaken(c) })
			s.lines[i].ID = id
		}
		seen[id] = true
	}
}

func (s *Store) repairUserIDs() {
	seen := make(map[uuid.UUID]bool, len(s.users))
	for i := range s.users {
		id := s.users[i].ID
		if id == uuid.Nil || seen[id] {
			id = s.freshID(func(c uuid.UUID) bool { return seen[c] || s.userIDTaken(c) })
			s.users[i].ID = id
		}
		seen[id] = true
	}
}
