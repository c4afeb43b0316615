package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/madappgang/identifo-go/apierror"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
}

func (s *MemoryStoreSuite) TestAccessible() {
	s.True(s.store.Accessible())
}

func (s *MemoryStoreSuite) TestTokenRoundTrip() {
	ctx := context.Background()

	s.Run("missing token reports not found", func() {
		_, err := s.store.Token(ctx, Access)
		s.Require().ErrorIs(err, apierror.ErrTokenNotFound)
	})

	s.Run("saved token comes back verbatim", func() {
		s.Require().NoError(s.store.SaveToken(ctx, Access, "access-raw"))
		s.Require().NoError(s.store.SaveToken(ctx, Refresh, "refresh-raw"))

		got, err := s.store.Token(ctx, Access)
		s.Require().NoError(err)
		s.Equal("access-raw", got)

		got, err = s.store.Token(ctx, Refresh)
		s.Require().NoError(err)
		s.Equal("refresh-raw", got)
	})

	s.Run("delete removes only the given type", func() {
		s.Require().NoError(s.store.SaveToken(ctx, Access, "access-raw"))
		s.Require().NoError(s.store.SaveToken(ctx, Refresh, "refresh-raw"))

		s.Require().NoError(s.store.DeleteToken(ctx, Access))

		_, err := s.store.Token(ctx, Access)
		s.Require().ErrorIs(err, apierror.ErrTokenNotFound)

		got, err := s.store.Token(ctx, Refresh)
		s.Require().NoError(err)
		s.Equal("refresh-raw", got)
	})

	s.Run("deleting a missing token is a no-op", func() {
		s.Require().NoError(s.store.DeleteToken(ctx, Access))
	})
}

func (s *MemoryStoreSuite) TestOIDCProviderData() {
	ctx := context.Background()

	_, err := s.store.OIDCProviderData(ctx)
	s.Require().ErrorIs(err, apierror.ErrTokenNotFound)

	in := map[string]any{"provider": "google", "state": "abc123"}
	s.Require().NoError(s.store.SaveOIDCProviderData(ctx, in))

	data, err := s.store.OIDCProviderData(ctx)
	s.Require().NoError(err)
	s.Equal(in, data)
}

func (s *MemoryStoreSuite) TestCustomKeys() {
	ctx := context.Background()
	store := NewMemory(WithKeys(Keys{Access: "custom_access", Refresh: "custom_refresh", OIDCProviderData: "custom_oidc"}))

	s.Require().NoError(store.SaveToken(ctx, Access, "raw"))
	got, err := store.Token(ctx, Access)
	s.Require().NoError(err)
	s.Equal("raw", got)
}
