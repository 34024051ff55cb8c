// Package store owns the line and user collections. Every read and mutation
// goes through one mutex; callers only ever receive copies.
package store

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"linekeeper/internal/domain/line"
	"linekeeper/internal/domain/user"
	"linekeeper/internal/infrastructure/storage"
)

type Store struct {
	mu    sync.Mutex
	docs  storage.Documents
	seed  Seeder
	newID func() uuid.UUID
	log   *slog.Logger

	lines []line.Line
	users []user.User
}

// Option настраивает Store.
type Option func(*Store)

// WithSeeder replaces the random bootstrap data generator.
func WithSeeder(seeder Seeder) Option {
	return func(s *Store) {
		s.seed = seeder
	}
}

// WithIDGenerator replaces uuid.New for newly added records.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// New creates an empty store. Call Load before serving requests.
func New(docs storage.Documents, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		docs:  docs,
		newID: uuid.New,
		log:   log.With("component", "store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed == nil {
		s.seed = NewRandomSeeder(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	return s
}

// Stats is a point-in-time summary of the collections.
type Stats struct {
	Lines      int
	Users      int
	HasDefault bool
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Lines:      len(s.lines),
		Users:      len(s.users),
		HasDefault: line.DefaultIndex(s.lines) >= 0,
	}
}

// freshID returns an identifier not present in taken. Nil is never returned.
func (s *Store) freshID(taken func(uuid.UUID) bool) uuid.UUID {
	for {
		id := s.newID()
		if id != uuid.Nil && !taken(id) {
			return id
		}
		s.log.Warn("generated identifier collided, regenerating", "id", id)
	}
}

func (s *Store) lineIDTaken(id uuid.UUID) bool {
	return line.IndexOf(s.lines, id) >= 0
}

func (s *Store) userIDTaken(id uuid.UUID) bool {
	return user.IndexOf(s.users, id) >= 0
}
