// Package token owns the JWT lifecycle of a session: unverified claim
// parsing, expiry computation, audience and issuer validation, and persistence
// through a storage.TokenStorage.
package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Payload is the decoded, unverified claim set of a JWT. Audience uses
// jwt.ClaimStrings so a scalar aud claim normalizes to a one-element list.
type Payload struct {
	jwt.RegisteredClaims
	// Raw carries every claim, including non-registered ones.
	Raw map[string]any `json:"-"`
}

// ClientToken pairs a raw token string with its decoded payload. It is always
// derived from the string, never constructed by hand.
type ClientToken struct {
	Token   string
	Payload Payload
}

// sentinelExpiry is the exp claim of the payload returned for malformed
// tokens. Ten seconds past the epoch, so such a payload is expired by
// construction and fails every audience check.
const sentinelExpiry = 10

func sentinelPayload() Payload {
	return Payload{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "",
		Audience:  jwt.ClaimStrings{},
		ExpiresAt: jwt.NewNumericDate(time.Unix(sentinelExpiry, 0)),
	}}
}

// ParseJWT decodes the claim segment of a token without verifying the
// signature. A token without a decodable second segment yields the sentinel
// payload instead of an error: empty audience, empty issuer, exp in 1970.
func ParseJWT(raw string) Payload {
	parts := strings.Split(raw, ".")
	if len(parts) < 2 || parts[1] == "" {
		return sentinelPayload()
	}
	seg, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return sentinelPayload()
	}
	var p Payload
	if err := json.Unmarshal(seg, &p.RegisteredClaims); err != nil {
		return sentinelPayload()
	}
	// Claim set already proved to be valid JSON, so this cannot fail.
	_ = json.Unmarshal(seg, &p.Raw)
	return p
}

// Expired reports whether the payload's exp claim is strictly in the past.
// A token expiring exactly now is still valid; a payload without exp never
// expires client-side.
func (p Payload) Expired(now time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	return now.Unix() > p.ExpiresAt.Unix()
}

// HasAudience reports whether aud contains the given audience.
func (p Payload) HasAudience(audience string) bool {
	for _, a := range p.Audience {
		if a == audience {
			return true
		}
	}
	return false
}
