package token

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mint builds an unsigned JWT around the given claim set. Signature
// verification never happens client-side, so a fake third segment is enough.
func mint(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	body, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

func Test_ParseJWT(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	raw := mint(t, map[string]any{
		"iss":  "https://id.example.com",
		"aud":  []string{"app-1", "app-2"},
		"sub":  "user-42",
		"exp":  exp,
		"role": "admin",
	})

	p := ParseJWT(raw)
	assert.Equal(t, "https://id.example.com", p.Issuer)
	assert.ElementsMatch(t, []string{"app-1", "app-2"}, p.Audience)
	assert.Equal(t, "user-42", p.Subject)
	require.NotNil(t, p.ExpiresAt)
	assert.Equal(t, exp, p.ExpiresAt.Unix())
	assert.Equal(t, "admin", p.Raw["role"])
}

func Test_ParseJWT_ScalarAudience(t *testing.T) {
	p := ParseJWT(mint(t, map[string]any{"aud": "app-1"}))
	assert.Equal(t, []string{"app-1"}, []string(p.Audience))
	assert.True(t, p.HasAudience("app-1"))
}

func Test_ParseJWT_Malformed(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":           "",
		"no dots":         "not-a-token",
		"empty claims":    "header..sig",
		"bad base64":      "header.!!!.sig",
		"claims not json": "header." + base64.RawURLEncoding.EncodeToString([]byte("plain text")) + ".sig",
	} {
		t.Run(name, func(t *testing.T) {
			p := ParseJWT(raw)
			assert.Empty(t, p.Issuer)
			assert.Empty(t, p.Audience)
			require.NotNil(t, p.ExpiresAt)
			assert.Equal(t, int64(sentinelExpiry), p.ExpiresAt.Unix())
			assert.True(t, p.Expired(time.Now()))
			assert.False(t, p.HasAudience("app-1"))
		})
	}
}

func Test_ParseJWT_PaddedSegment(t *testing.T) {
	body := base64.URLEncoding.EncodeToString([]byte(`{"iss":"padded"}`))
	p := ParseJWT("header." + body + ".sig")
	assert.Equal(t, "padded", p.Issuer)
}

func Test_Expired(t *testing.T) {
	now := time.Unix(1000, 0)

	past := ParseJWT(mint(t, map[string]any{"exp": 999}))
	assert.True(t, past.Expired(now))

	// Expiring exactly now is not yet expired.
	boundary := ParseJWT(mint(t, map[string]any{"exp": 1000}))
	assert.False(t, boundary.Expired(now))

	future := ParseJWT(mint(t, map[string]any{"exp": 1001}))
	assert.False(t, future.Expired(now))

	noExp := ParseJWT(mint(t, map[string]any{"iss": "x"}))
	assert.False(t, noExp.Expired(now))
}
