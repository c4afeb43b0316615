// Package session composes the token service, URL builder and transport into
// the authenticated-session view of the SDK: a cached access token that
// renews itself through the refresh token, and the boot-time handoff of
// tokens arriving as query parameters.
package session

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/madappgang/identifo-go/api"
	"github.com/madappgang/identifo-go/storage"
	"github.com/madappgang/identifo-go/token"
	"github.com/madappgang/identifo-go/urlbuilder"
)

// jwtShape guards query-parameter tokens before they touch storage.
var jwtShape = regexp.MustCompile(`^[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*$`)

// ErrNoToken is returned when neither a valid access token nor a renewable
// refresh token is available.
var ErrNoToken = fmt.Errorf("no token")

// Manager owns the in-memory ClientToken cache. It is the only component
// that decides when a token is stale and triggers renewal.
type Manager struct {
	tokens   *token.Service
	client   *api.Client
	audience string
	issuer   string
	urls     urlbuilder.Params
	log      *zap.Logger

	renew singleflight.Group
	now   func() time.Time
}

// Config carries the static identity of the session.
type Config struct {
	// Audience the access token must carry; normally the application id.
	Audience string
	// Issuer to validate against; empty skips the issuer check.
	Issuer string
	// URLParams feed the hosted flow URL builder.
	URLParams urlbuilder.Params
}

// New constructs a session manager over an api client and its token service.
func New(cfg Config, client *api.Client, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		tokens:   client.Tokens(),
		client:   client,
		audience: cfg.Audience,
		issuer:   cfg.Issuer,
		urls:     cfg.URLParams,
		log:      log,
		now:      time.Now,
	}
}

// IsAuth reports whether the session currently holds an access token.
func (m *Manager) IsAuth() bool { return m.tokens.IsAuth() }

// Tokens exposes the underlying token service.
func (m *Manager) Tokens() *token.Service { return m.tokens }

// Token returns an unexpired access token, renewing through the refresh
// token when needed. Renewal failure clears both tokens and yields ErrNoToken.
// Concurrent callers share one in-flight renewal.
func (m *Manager) Token(ctx context.Context) (*token.ClientToken, error) {
	access, err := m.tokens.Token(ctx, storage.Access)
	if err != nil {
		return nil, err
	}
	if access != nil && !access.Payload.Expired(m.now()) {
		return access, nil
	}

	refresh, err := m.tokens.Token(ctx, storage.Refresh)
	if err != nil {
		return nil, err
	}
	if refresh == nil {
		m.clearTokens(ctx)
		return nil, ErrNoToken
	}

	renewed, err, _ := m.renew.Do("renew", func() (any, error) {
		return m.Renew(ctx)
	})
	if err != nil {
		m.clearTokens(ctx)
		return nil, ErrNoToken
	}
	return renewed.(*token.ClientToken), nil
}

// Renew forces a token refresh against the server and returns the new access
// token.
func (m *Manager) Renew(ctx context.Context) (*token.ClientToken, error) {
	resp, err := m.client.RenewToken(ctx)
	if err != nil {
		m.log.Debug("token renewal failed", zap.Error(err))
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, ErrNoToken
	}
	return &token.ClientToken{Token: resp.AccessToken, Payload: token.ParseJWT(resp.AccessToken)}, nil
}

// HandleAuthentication consumes token and refresh_token query parameters the
// server appended during a redirect flow. The access token is verified
// against the configured audience and issuer and both tokens are persisted.
// The returned URL always has the two parameters scrubbed, whether or not the
// handoff succeeded.
func (m *Manager) HandleAuthentication(ctx context.Context, rawURL string) (cleanURL string, err error) {
	u, parseErr := url.Parse(rawURL)
	if parseErr != nil {
		return rawURL, fmt.Errorf("parse callback url: %w", parseErr)
	}

	q := u.Query()
	access := q.Get("token")
	refresh := q.Get("refresh_token")

	defer func() {
		q.Del("token")
		q.Del("refresh_token")
		u.RawQuery = q.Encode()
		cleanURL = u.String()
	}()

	if access == "" || !jwtShape.MatchString(access) {
		return "", ErrNoToken
	}

	if err := m.tokens.HandleVerification(ctx, access, m.audience, m.issuer); err != nil {
		return "", err
	}
	if refresh != "" && jwtShape.MatchString(refresh) {
		if _, err := m.tokens.SaveToken(ctx, refresh, storage.Refresh); err != nil {
			return "", err
		}
	}
	return "", nil
}

// Logout invalidates the server session and clears local tokens. Local
// cleanup happens even when the server call fails.
func (m *Manager) Logout(ctx context.Context) error {
	_, err := m.client.Logout(ctx)
	m.clearTokens(ctx)
	return err
}

func (m *Manager) clearTokens(ctx context.Context) {
	if err := m.tokens.RemoveToken(ctx, storage.Access); err != nil {
		m.log.Debug("remove access token", zap.Error(err))
	}
	if err := m.tokens.RemoveToken(ctx, storage.Refresh); err != nil {
		m.log.Debug("remove refresh token", zap.Error(err))
	}
}

// SignInURL renders the hosted password login page for this session's app.
func (m *Manager) SignInURL() string { return urlbuilder.SigninURL(m.urls) }

// SignUpURL renders the hosted registration page for this session's app.
func (m *Manager) SignUpURL() string { return urlbuilder.SignupURL(m.urls) }

// LogoutURL renders the hosted logout page for this session's app.
func (m *Manager) LogoutURL() string { return urlbuilder.LogoutURL(m.urls) }

// RenewSessionURL renders the silent renewal URL for this session's app.
func (m *Manager) RenewSessionURL() string { return urlbuilder.RenewSessionURL(m.urls) }

// WithClock overrides the time source for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}
