package tokenstore

import (
	"context"
	"errors"
	"sync"
)

// DefaultKey is the fixed key the token is stored under.
const DefaultKey = "token"

// ErrEmptyToken is returned by Write when given an empty token.
var ErrEmptyToken = errors.New("tokenstore: empty token")

// Store persists a single bearer token.
// Implementations must be safe for concurrent use.
type Store interface {
	// Read returns the persisted token and true, or "" and false when absent.
	Read(ctx context.Context) (string, bool)
	// Write persists token, overwriting any prior value.
	Write(ctx context.Context, token string) error
	// Clear removes the persisted token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read implements Store.
func (s *MemoryStore) Read(_ context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Write implements Store.
func (s *MemoryStore) Write(_ context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
