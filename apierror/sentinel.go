package apierror

import "errors"

// Sentinel errors for local facts. These are raised before any network call
// and are never part of a server response.
//
//   - ErrNoToken: an authenticated endpoint was called without an access token
//   - ErrTokenNotFound: storage holds nothing under the requested key
//   - ErrTokenInaccessible: the active storage cannot expose tokens to client
//     code (server-managed session); validation must be skipped, not failed
//   - ErrInvalidToken: token failed client-side validation (shape, audience,
//     issuer, or expiry)
var (
	ErrNoToken           = errors.New("no token in token service")
	ErrTokenNotFound     = errors.New("token not found")
	ErrTokenInaccessible = errors.New("token storage is not accessible")
	ErrInvalidToken      = errors.New("empty or invalid token")
)
