package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madappgang/identifo-go/apierror"
)

func Test_ServerManaged(t *testing.T) {
	ctx := context.Background()
	store := NewServerManaged()

	assert.False(t, store.Accessible())

	// Token writes and deletes are silently accepted, reads always fail.
	require.NoError(t, store.SaveToken(ctx, Access, "raw"))
	_, err := store.Token(ctx, Access)
	require.ErrorIs(t, err, apierror.ErrTokenInaccessible)
	require.NoError(t, store.DeleteToken(ctx, Access))

	// OIDC provider data is still client-side state.
	in := map[string]any{"provider": "facebook"}
	require.NoError(t, store.SaveOIDCProviderData(ctx, in))
	data, err := store.OIDCProviderData(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, data)
}
