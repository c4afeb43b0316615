package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/madappgang/identifo-go/apierror"
)

// ServerManaged models deployments where the session lives in httpOnly
// cookies carried by the transport's cookie jar. Client code cannot read the
// tokens, so Accessible reports false and every read fails with
// ErrTokenInaccessible; the token service treats that as "trust the server".
//
// The OIDC provider data blob is still client-side state and is kept in
// memory.
type ServerManaged struct {
	mu   sync.RWMutex
	oidc map[string]any
}

// NewServerManaged constructs the inaccessible storage variant.
func NewServerManaged() *ServerManaged {
	return &ServerManaged{}
}

func (s *ServerManaged) Accessible() bool { return false }

func (s *ServerManaged) SaveToken(context.Context, TokenType, string) error {
	// The server already set the cookie; nothing to persist locally.
	return nil
}

func (s *ServerManaged) Token(_ context.Context, t TokenType) (string, error) {
	return "", fmt.Errorf("%s token: %w", t, apierror.ErrTokenInaccessible)
}

func (s *ServerManaged) DeleteToken(context.Context, TokenType) error {
	return nil
}

func (s *ServerManaged) SaveOIDCProviderData(_ context.Context, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oidc = data
	return nil
}

func (s *ServerManaged) OIDCProviderData(context.Context) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.oidc == nil {
		return nil, fmt.Errorf("oidc provider data: %w", apierror.ErrTokenNotFound)
	}
	return s.oidc, nil
}
