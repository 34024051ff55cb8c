package store

import (
	"context"

	"github.com/google/uuid"
	"linekeeper/internal/domain/user"
	"linekeeper/internal/infrastructure/storage"
)

func (s *Store) ListUsers() []user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return user.Clone(s.users)
}

func (s *Store) GetUser(id uuid.UUID) (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := user.IndexOf(s.users, id)
	if idx < 0 {
		return user.User{}, false
	}
	return s.users[idx], true
}

func (s *Store) AddUser(ctx context.Context, candidate user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate.ID = s.freshID(s.userIDTaken)
	s.users = append(s.users, candidate)

	s.log.Debug("user added", "id", candidate.ID, "level", candidate.AuthLevel)
	return candidate, s.persistUsers(ctx)
}

func (s *Store) UpdateUser(ctx context.Context, updated user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := user.IndexOf(s.users, updated.ID)
	if idx < 0 {
		return ErrNotFound
	}
	s.users[idx] = updated

	s.log.Debug("user updated", "id", updated.ID)
	return s.persistUsers(ctx)
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := user.IndexOf(s.users, id)
	if idx < 0 {
		return ErrNotFound
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)

	s.log.Debug("user deleted", "id", id)
	return s.persistUsers(ctx)
}

func (s *Store) persistUsers(ctx context.Context) error {
	if s.users == nil {
		s.users = []user.User{}
	}
	return s.write(ctx, storage.UsersDocument, s.users)
}
