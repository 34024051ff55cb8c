package store

import (
	"context"

	"github.com/google/uuid"
	"linekeeper/internal/domain/line"
	"linekeeper/internal/infrastructure/storage"
)

func (s *Store) ListLines() []line.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	return line.Clone(s.lines)
}

func (s *Store) GetLine(id uuid.UUID) (line.Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := line.IndexOf(s.lines, id)
	if idx < 0 {
		return line.Line{}, false
	}
	return s.lines[idx], true
}

func (s *Store) DefaultLine() (line.Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := line.DefaultIndex(s.lines)
	if idx < 0 {
		return line.Line{}, false
	}
	return s.lines[idx], true
}

// AddLine stores candidate under a freshly generated identifier. A candidate
// marked default takes the flag from every existing line; if nothing ends up
// default the first line is promoted. Returns the stored record.
func (s *Store) AddLine(ctx context.Context, candidate line.Line) (line.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate.ID = s.freshID(s.lineIDTaken)
	if candidate.IsDefault {
		line.ClearDefaults(s.lines, uuid.Nil)
	}
	s.lines = append(s.lines, candidate)
	line.EnsureDefault(s.lines)

	stored := s.lines[len(s.lines)-1]
	s.log.Debug("line added", "id", stored.ID, "default", stored.IsDefault)

	return stored, s.persistLines(ctx)
}

// UpdateLine replaces the line with the same identifier wholesale.
func (s *Store) UpdateLine(ctx context.Context, updated line.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := line.IndexOf(s.lines, updated.ID)
	if idx < 0 {
		return ErrNotFound
	}

	if updated.IsDefault {
		line.ClearDefaults(s.lines, updated.ID)
	}
	s.lines[idx] = updated
	line.EnsureDefault(s.lines)

	s.log.Debug("line updated", "id", updated.ID)
	return s.persistLines(ctx)
}

// DeleteLine removes the line with id. Removing the default promotes the
// first remaining line.
func (s *Store) DeleteLine(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := line.IndexOf(s.lines, id)
	if idx < 0 {
		return ErrNotFound
	}

	wasDefault := s.lines[idx].IsDefault
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	if wasDefault {
		line.EnsureDefault(s.lines)
	}

	s.log.Debug("line deleted", "id", id, "was_default", wasDefault)
	return s.persistLines(ctx)
}

func (s *Store) persistLines(ctx context.Context) error {
	if s.lines == nil {
		s.lines = []line.Line{}
	}
	return s.write(ctx, storage.LinesDocument, s.lines)
}
