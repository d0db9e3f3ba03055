package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"askboard/pkg/domain"
)

// FileStore keeps all users in memory and mirrors them to a single JSON
// array file. Every successful registration rewrites the file in full; the
// low write volume makes the amplification acceptable and keeps recovery
// trivial (the file is always a complete snapshot).
type FileStore struct {
	mu    sync.RWMutex
	path  string
	users []domain.User
}

// NewFileStore loads the users file at path. A missing or unparsable file
// yields an empty store rather than an error: cold starts favor availability,
// and the next successful registration writes a fresh snapshot.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("users file path is required")
	}
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("users file unreadable, starting empty", "path", path, "err", err)
		}
		return s, nil
	}
	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		slog.Warn("users file corrupt, starting empty", "path", path, "err", err)
		return s, nil
	}
	s.users = users
	return s, nil
}

// CreateUser checks email uniqueness (case-insensitive), allocates the next
// id, appends the user and rewrites the file, all under one lock.
func (s *FileStore) CreateUser(u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.User{}, ErrEmailExists
		}
	}

	ids := make([]int, 0, len(s.users))
	for _, existing := range s.users {
		ids = append(ids, existing.ID)
	}
	u.ID = domain.NextID(ids)

	s.users = append(s.users, u)
	if err := s.persist(); err != nil {
		s.users = s.users[:len(s.users)-1]
		return domain.User{}, fmt.Errorf("persist users: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks up a user by email, case-insensitively.
func (s *FileStore) GetUserByEmail(email string) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

// ListUsers returns all users in insertion order.
func (s *FileStore) ListUsers() ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.User, len(s.users))
	copy(res, s.users)
	return res, nil
}

func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}
