// Package storage abstracts durable persistence of the two session tokens and
// the OIDC provider data blob. Implementations cover an in-memory map, a
// bbolt file, redis, and a server-managed mode where tokens are never visible
// to client code.
//
// Error contract, shared by all backends:
//   - a missing key yields apierror.ErrTokenNotFound (optionally wrapped)
//   - server-managed storage yields apierror.ErrTokenInaccessible on reads
//   - infrastructure failures are returned wrapped with context
package storage

import "context"

// TokenType selects which of the two session tokens an operation targets.
type TokenType string

const (
	Access  TokenType = "access"
	Refresh TokenType = "refresh"
)

// Default storage keys. Instances may override them to keep several
// applications apart in a shared store.
const (
	DefaultAccessKey           = "identifo_access_token"
	DefaultRefreshKey          = "identifo_refresh_token"
	DefaultOIDCProviderDataKey = "identifo_oidc_provider_data"
)

// Keys holds the storage keys one instance writes under.
type Keys struct {
	Access           string
	Refresh          string
	OIDCProviderData string
}

// DefaultKeys returns the identifo_-prefixed key set.
func DefaultKeys() Keys {
	return Keys{
		Access:           DefaultAccessKey,
		Refresh:          DefaultRefreshKey,
		OIDCProviderData: DefaultOIDCProviderDataKey,
	}
}

func (k Keys) key(t TokenType) string {
	if t == Refresh {
		return k.Refresh
	}
	return k.Access
}

// TokenStorage persists opaque token strings and the OIDC provider data blob.
//
// Accessible reports whether tokens can be read back by client code. When it
// returns false the token service skips every client-side expiry and audience
// check and trusts the server instead.
type TokenStorage interface {
	Accessible() bool
	SaveToken(ctx context.Context, t TokenType, token string) error
	Token(ctx context.Context, t TokenType) (string, error)
	DeleteToken(ctx context.Context, t TokenType) error
	SaveOIDCProviderData(ctx context.Context, data map[string]any) error
	OIDCProviderData(ctx context.Context) (map[string]any, error)
}
