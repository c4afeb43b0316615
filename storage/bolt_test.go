package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/madappgang/identifo-go/apierror"
)

type BoltStoreSuite struct {
	suite.Suite
	store *Bolt
}

func TestBoltStoreSuite(t *testing.T) {
	suite.Run(t, new(BoltStoreSuite))
}

func (s *BoltStoreSuite) SetupTest() {
	store, err := OpenBolt(filepath.Join(s.T().TempDir(), "tokens.db"))
	s.Require().NoError(err)
	s.store = store
}

func (s *BoltStoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *BoltStoreSuite) TestTokenRoundTrip() {
	ctx := context.Background()

	_, err := s.store.Token(ctx, Access)
	s.Require().ErrorIs(err, apierror.ErrTokenNotFound)

	s.Require().NoError(s.store.SaveToken(ctx, Access, "access-raw"))
	got, err := s.store.Token(ctx, Access)
	s.Require().NoError(err)
	s.Equal("access-raw", got)

	s.Require().NoError(s.store.DeleteToken(ctx, Access))
	_, err = s.store.Token(ctx, Access)
	s.Require().ErrorIs(err, apierror.ErrTokenNotFound)
}

func (s *BoltStoreSuite) TestSurvivesReopen() {
	ctx := context.Background()
	path := filepath.Join(s.T().TempDir(), "persist.db")

	store, err := OpenBolt(path)
	s.Require().NoError(err)
	s.Require().NoError(store.SaveToken(ctx, Refresh, "refresh-raw"))
	s.Require().NoError(store.Close())

	store, err = OpenBolt(path)
	s.Require().NoError(err)
	defer store.Close()

	got, err := store.Token(ctx, Refresh)
	s.Require().NoError(err)
	s.Equal("refresh-raw", got)
}

func (s *BoltStoreSuite) TestOIDCProviderData() {
	ctx := context.Background()

	_, err := s.store.OIDCProviderData(ctx)
	s.Require().ErrorIs(err, apierror.ErrTokenNotFound)

	in := map[string]any{"provider": "apple", "nonce": "n-1"}
	s.Require().NoError(s.store.SaveOIDCProviderData(ctx, in))

	data, err := s.store.OIDCProviderData(ctx)
	s.Require().NoError(err)
	s.Equal(in, data)
}
