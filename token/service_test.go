package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madappgang/identifo-go/apierror"
	"github.com/madappgang/identifo-go/storage"
)

const (
	testAudience = "app-1"
	testIssuer   = "https://id.example.com"
)

func testToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	return mint(t, map[string]any{
		"iss": testIssuer,
		"aud": testAudience,
		"exp": time.Now().Add(expiresIn).Unix(),
	})
}

func Test_Validate(t *testing.T) {
	svc := NewService(storage.NewMemory())
	valid := testToken(t, time.Hour)

	require.NoError(t, svc.Validate(valid, testAudience, testIssuer))

	// Issuer check is skipped when no issuer is configured.
	require.NoError(t, svc.Validate(valid, testAudience, ""))

	for name, tc := range map[string]struct {
		raw      string
		audience string
		issuer   string
	}{
		"empty token":    {"", testAudience, testIssuer},
		"wrong audience": {valid, "other-app", testIssuer},
		"wrong issuer":   {valid, testAudience, "https://other.example.com"},
		"expired":        {testToken(t, -time.Hour), testAudience, testIssuer},
		"malformed":      {"garbage", testAudience, testIssuer},
	} {
		t.Run(name, func(t *testing.T) {
			err := svc.Validate(tc.raw, tc.audience, tc.issuer)
			require.ErrorIs(t, err, apierror.ErrInvalidToken)
		})
	}
}

func Test_SaveToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(storage.NewMemory())
	raw := testToken(t, time.Hour)

	assert.False(t, svc.IsAuth())

	saved, err := svc.SaveToken(ctx, raw, storage.Access)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, svc.IsAuth())

	tok, err := svc.Token(ctx, storage.Access)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, raw, tok.Token)
	assert.Equal(t, testIssuer, tok.Payload.Issuer)

	require.NoError(t, svc.RemoveToken(ctx, storage.Access))
	assert.False(t, svc.IsAuth())

	tok, err = svc.Token(ctx, storage.Access)
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func Test_SaveToken_Empty(t *testing.T) {
	svc := NewService(storage.NewMemory())

	saved, err := svc.SaveToken(context.Background(), "", storage.Access)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, svc.IsAuth())
}

func Test_SaveToken_RefreshDoesNotAuthenticate(t *testing.T) {
	svc := NewService(storage.NewMemory())

	saved, err := svc.SaveToken(context.Background(), testToken(t, time.Hour), storage.Refresh)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.False(t, svc.IsAuth())
}

func Test_HandleVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token is persisted", func(t *testing.T) {
		svc := NewService(storage.NewMemory())
		raw := testToken(t, time.Hour)

		require.NoError(t, svc.HandleVerification(ctx, raw, testAudience, testIssuer))

		tok, err := svc.Token(ctx, storage.Access)
		require.NoError(t, err)
		require.NotNil(t, tok)
		assert.Equal(t, raw, tok.Token)
	})

	t.Run("invalid token removes the stored one", func(t *testing.T) {
		svc := NewService(storage.NewMemory())
		_, err := svc.SaveToken(ctx, testToken(t, time.Hour), storage.Access)
		require.NoError(t, err)

		err = svc.HandleVerification(ctx, testToken(t, -time.Hour), testAudience, testIssuer)
		require.ErrorIs(t, err, apierror.ErrInvalidToken)

		tok, err := svc.Token(ctx, storage.Access)
		require.NoError(t, err)
		assert.Nil(t, tok)
		assert.False(t, svc.IsAuth())
	})

	t.Run("inaccessible storage trusts the server", func(t *testing.T) {
		svc := NewService(storage.NewServerManaged())
		require.NoError(t, svc.HandleVerification(ctx, "whatever", testAudience, testIssuer))
	})
}

func Test_Token_InaccessibleStorage(t *testing.T) {
	svc := NewService(storage.NewServerManaged())

	_, err := svc.Token(context.Background(), storage.Access)
	require.ErrorIs(t, err, apierror.ErrTokenInaccessible)
}

func Test_WithClock(t *testing.T) {
	svc := NewService(storage.NewMemory())
	raw := mint(t, map[string]any{"aud": testAudience, "exp": 2000})

	svc.WithClock(func() time.Time { return time.Unix(1000, 0) })
	require.NoError(t, svc.Validate(raw, testAudience, ""))

	svc.WithClock(func() time.Time { return time.Unix(3000, 0) })
	require.ErrorIs(t, svc.Validate(raw, testAudience, ""), apierror.ErrInvalidToken)
}
