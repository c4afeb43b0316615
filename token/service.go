package token

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/madappgang/identifo-go/apierror"
	"github.com/madappgang/identifo-go/storage"
)

// Service validates tokens against the application's audience and issuer and
// proxies persistence to a storage.TokenStorage. It also tracks the
// authenticated flag, which flips only on access-token writes and removals.
type Service struct {
	store storage.TokenStorage

	mu     sync.RWMutex
	isAuth bool

	now func() time.Time
}

// NewService constructs a token service over the given storage.
func NewService(store storage.TokenStorage) *Service {
	return &Service{store: store, now: time.Now}
}

// IsAuth reports whether an access token has been saved and not removed.
func (s *Service) IsAuth() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAuth
}

// Validate checks a raw token client-side: non-empty, audience membership,
// issuer match when issuer is non-empty, and expiry. Every failure is
// ErrInvalidToken.
func (s *Service) Validate(raw, audience, issuer string) error {
	if raw == "" {
		return apierror.ErrInvalidToken
	}
	p := ParseJWT(raw)
	if !p.HasAudience(audience) {
		return apierror.ErrInvalidToken
	}
	if issuer != "" && p.Issuer != issuer {
		return apierror.ErrInvalidToken
	}
	if p.Expired(s.now()) {
		return apierror.ErrInvalidToken
	}
	return nil
}

// HandleVerification validates and persists an access token in one step.
// When the storage is not accessible to client code, validation is skipped
// entirely and the server is trusted. On validation failure any stored access
// token is removed before the error is returned.
func (s *Service) HandleVerification(ctx context.Context, raw, audience, issuer string) error {
	if !s.store.Accessible() {
		return nil
	}
	if err := s.Validate(raw, audience, issuer); err != nil {
		_ = s.RemoveToken(ctx, storage.Access)
		return err
	}
	_, err := s.SaveToken(ctx, raw, storage.Access)
	return err
}

// SaveToken persists a raw token. Saving an empty string is a no-op reporting
// false. The authenticated flag flips to true only for the access type.
func (s *Service) SaveToken(ctx context.Context, raw string, t storage.TokenType) (bool, error) {
	if raw == "" {
		return false, nil
	}
	if err := s.store.SaveToken(ctx, t, raw); err != nil {
		return false, fmt.Errorf("save %s token: %w", t, err)
	}
	if t == storage.Access {
		s.mu.Lock()
		s.isAuth = true
		s.mu.Unlock()
	}
	return true, nil
}

// Token loads a stored token and recomputes its payload. A missing token
// yields (nil, nil); an inaccessible storage yields ErrTokenInaccessible.
func (s *Service) Token(ctx context.Context, t storage.TokenType) (*ClientToken, error) {
	raw, err := s.store.Token(ctx, t)
	if errors.Is(err, apierror.ErrTokenNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	return &ClientToken{Token: raw, Payload: ParseJWT(raw)}, nil
}

// RemoveToken deletes a stored token. The authenticated flag flips to false
// only for the access type.
func (s *Service) RemoveToken(ctx context.Context, t storage.TokenType) error {
	if err := s.store.DeleteToken(ctx, t); err != nil {
		return fmt.Errorf("remove %s token: %w", t, err)
	}
	if t == storage.Access {
		s.mu.Lock()
		s.isAuth = false
		s.mu.Unlock()
	}
	return nil
}

// Storage exposes the underlying token storage.
func (s *Service) Storage() storage.TokenStorage { return s.store }

// WithClock overrides the time source for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
