package session

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu  sync.RWMutex
	tok Token
	set bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Issue(_ context.Context, tok Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok, m.set = tok, true
	return nil
}

func (m *MemoryStore) Current(_ context.Context) (Token, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tok, m.set, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok, m.set = "", false
	return nil
}
