package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/madappgang/identifo-go/apierror"
)

// Memory stores tokens in process memory. Used by tests and by short-lived
// tools that do not need the session to survive a restart.
type Memory struct {
	mu     sync.RWMutex
	keys   Keys
	values map[string]string
	oidc   map[string]any
}

// NewMemory constructs an empty in-memory token store.
func NewMemory(opts ...Option) *Memory {
	cfg := applyOptions(opts)
	return &Memory{keys: cfg.keys, values: make(map[string]string)}
}

func (s *Memory) Accessible() bool { return true }

func (s *Memory) SaveToken(_ context.Context, t TokenType, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.keys.key(t)] = token
	return nil
}

func (s *Memory) Token(_ context.Context, t TokenType) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[s.keys.key(t)]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%s token: %w", t, apierror.ErrTokenNotFound)
}

func (s *Memory) DeleteToken(_ context.Context, t TokenType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, s.keys.key(t))
	return nil
}

func (s *Memory) SaveOIDCProviderData(_ context.Context, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oidc = data
	return nil
}

func (s *Memory) OIDCProviderData(_ context.Context) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.oidc == nil {
		return nil, fmt.Errorf("oidc provider data: %w", apierror.ErrTokenNotFound)
	}
	return s.oidc, nil
}
