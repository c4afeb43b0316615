package storage

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/madappgang/identifo-go/apierror"
)

var boltBucket = []byte("identifo")

// Bolt persists tokens in a local bbolt file. This is the durable option for
// CLIs and native apps, standing in for browser local storage.
type Bolt struct {
	db   *bolt.DB
	keys Keys
}

// OpenBolt opens (creating if needed) the token bucket inside the given file.
func OpenBolt(path string, opts ...Option) (*Bolt, error) {
	cfg := applyOptions(opts)
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create token bucket: %w", err)
	}
	return &Bolt{db: db, keys: cfg.keys}, nil
}

// Close releases the underlying file.
func (s *Bolt) Close() error { return s.db.Close() }

func (s *Bolt) Accessible() bool { return true }

func (s *Bolt) SaveToken(_ context.Context, t TokenType, token string) error {
	return s.put(s.keys.key(t), []byte(token))
}

func (s *Bolt) Token(_ context.Context, t TokenType) (string, error) {
	v, err := s.get(s.keys.key(t))
	if err != nil {
		return "", fmt.Errorf("%s token: %w", t, err)
	}
	return string(v), nil
}

func (s *Bolt) DeleteToken(_ context.Context, t TokenType) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(s.keys.key(t)))
	})
}

func (s *Bolt) SaveOIDCProviderData(_ context.Context, data map[string]any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode oidc provider data: %w", err)
	}
	return s.put(s.keys.OIDCProviderData, raw)
}

func (s *Bolt) OIDCProviderData(_ context.Context) (map[string]any, error) {
	raw, err := s.get(s.keys.OIDCProviderData)
	if err != nil {
		return nil, fmt.Errorf("oidc provider data: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode oidc provider data: %w", err)
	}
	return data, nil
}

func (s *Bolt) put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), value)
	})
}

func (s *Bolt) get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v == nil {
			return apierror.ErrTokenNotFound
		}
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}
