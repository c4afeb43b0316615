package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/madappgang/identifo-go/apierror"
)

var tokenLoadDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "identifo_token_load_duration_ms",
	Help:    "Latency of token reads from redis in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

// Redis keeps tokens in a shared redis instance so that several workers of
// the same consumer (for example a fleet of API gateways holding one service
// session) see a single session.
type Redis struct {
	client *redis.Client
	keys   Keys
}

// NewRedis constructs a redis-backed token store.
func NewRedis(client *redis.Client, opts ...Option) *Redis {
	cfg := applyOptions(opts)
	return &Redis{client: client, keys: cfg.keys}
}

func (s *Redis) Accessible() bool { return true }

func (s *Redis) SaveToken(ctx context.Context, t TokenType, token string) error {
	return s.client.Set(ctx, s.keys.key(t), token, 0).Err()
}

func (s *Redis) Token(ctx context.Context, t TokenType) (string, error) {
	start := time.Now()
	defer func() {
		tokenLoadDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	v, err := s.client.Get(ctx, s.keys.key(t)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%s token: %w", t, apierror.ErrTokenNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load %s token: %w", t, err)
	}
	return v, nil
}

func (s *Redis) DeleteToken(ctx context.Context, t TokenType) error {
	return s.client.Del(ctx, s.keys.key(t)).Err()
}

func (s *Redis) SaveOIDCProviderData(ctx context.Context, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode oidc provider data: %w", err)
	}
	return s.client.Set(ctx, s.keys.OIDCProviderData, raw, 0).Err()
}

func (s *Redis) OIDCProviderData(ctx context.Context) (map[string]any, error) {
	raw, err := s.client.Get(ctx, s.keys.OIDCProviderData).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("oidc provider data: %w", apierror.ErrTokenNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load oidc provider data: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode oidc provider data: %w", err)
	}
	return data, nil
}
