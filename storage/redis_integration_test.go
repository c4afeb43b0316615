//go:build integration

package storage_test

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/madappgang/identifo-go/apierror"
	"github.com/madappgang/identifo-go/storage"
)

type RedisStoreSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *goredis.Client
	store     *storage.Redis
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(ctx)
	s.Require().NoError(err)
	opts, err := goredis.ParseURL(uri)
	s.Require().NoError(err)
	s.client = goredis.NewClient(opts)
	s.store = storage.NewRedis(s.client)
}

func (s *RedisStoreSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *RedisStoreSuite) TestTokenRoundTrip() {
	ctx := context.Background()

	_, err := s.store.Token(ctx, storage.Access)
	s.Require().ErrorIs(err, apierror.ErrTokenNotFound)

	s.Require().NoError(s.store.SaveToken(ctx, storage.Access, "access-raw"))
	got, err := s.store.Token(ctx, storage.Access)
	s.Require().NoError(err)
	s.Equal("access-raw", got)

	s.Require().NoError(s.store.DeleteToken(ctx, storage.Access))
	_, err = s.store.Token(ctx, storage.Access)
	s.Require().ErrorIs(err, apierror.ErrTokenNotFound)
}

func (s *RedisStoreSuite) TestTokensAreKeyedSeparately() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveToken(ctx, storage.Access, "a"))
	s.Require().NoError(s.store.SaveToken(ctx, storage.Refresh, "r"))
	s.Require().NoError(s.store.DeleteToken(ctx, storage.Access))

	got, err := s.store.Token(ctx, storage.Refresh)
	s.Require().NoError(err)
	s.Equal("r", got)
}

func (s *RedisStoreSuite) TestOIDCProviderData() {
	ctx := context.Background()

	_, err := s.store.OIDCProviderData(ctx)
	s.Require().ErrorIs(err, apierror.ErrTokenNotFound)

	in := map[string]any{"provider": "google", "state": "s-1"}
	s.Require().NoError(s.store.SaveOIDCProviderData(ctx, in))

	data, err := s.store.OIDCProviderData(ctx)
	s.Require().NoError(err)
	s.Equal(in, data)
}
