// Package api is the HTTP transport of the SDK. It binds the fixed REST
// endpoint set of the identity server, injects bearer headers from the token
// service, and normalizes every failure into the apierror taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/madappgang/identifo-go/apierror"
	"github.com/madappgang/identifo-go/storage"
	"github.com/madappgang/identifo-go/token"
)

// Header names of the server contract.
const (
	headerClientID = "X-Identifo-Clientid"
)

// authScheme selects how a call authenticates.
type authScheme int

const (
	authNone authScheme = iota
	authBearer
	// authBearerUpper preserves the historical uppercase BEARER scheme two
	// TFA endpoints ship with. Compatibility quirk, do not fix.
	authBearerUpper
	authRefresh
)

// Client talks to one identity server on behalf of one application.
type Client struct {
	base    *url.URL
	appID   string
	origin  string
	http    *http.Client
	tokens  *token.Service
	nav     Navigator
	log     *zap.Logger
	tracer  trace.Tracer
	headers http.Header
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default cookie-jar client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithLogger attaches a structured logger; default is a nop logger.
func WithLogger(log *zap.Logger) Option { return func(c *Client) { c.log = log } }

// WithNavigator injects the external redirect capability used by federated
// login. Without it FederatedLogin fails locally.
func WithNavigator(nav Navigator) Option { return func(c *Client) { c.nav = nav } }

// WithOrigin sets the origin reported in network error messages, normally the
// application's callback URL origin.
func WithOrigin(origin string) Option { return func(c *Client) { c.origin = origin } }

// WithHeader adds a default header sent on every call. Caller-supplied
// headers win over the built-in defaults.
func WithHeader(name, value string) Option {
	return func(c *Client) { c.headers.Set(name, value) }
}

// New constructs a transport bound to baseURL (trailing slash stripped) and
// an application id. Every call carries the application id header and cookies
// are kept across calls, mirroring credentialed browser requests.
func New(baseURL, appID string, tokens *token.Service, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q has no scheme or host", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	c := &Client{
		base:    base,
		appID:   appID,
		origin:  base.Scheme + "://" + base.Host,
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
		tokens:  tokens,
		log:     zap.NewNop(),
		tracer:  otel.Tracer("identifo-go/api"),
		headers: http.Header{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Tokens exposes the token service the transport stores into.
func (c *Client) Tokens() *token.Service { return c.tokens }

// AppID returns the configured application id.
func (c *Client) AppID() string { return c.appID }

// BaseURL returns the normalized server origin.
func (c *Client) BaseURL() string { return c.base.String() }

// authorizationHeader resolves the Authorization header for the given scheme.
// A missing token is a local precondition failure; an inaccessible storage
// means the cookie jar carries the session, so the header is simply omitted.
func (c *Client) authorizationHeader(ctx context.Context, scheme authScheme) (string, error) {
	if scheme == authNone {
		return "", nil
	}
	tokenType := storage.Access
	if scheme == authRefresh {
		tokenType = storage.Refresh
	}
	tok, err := c.tokens.Token(ctx, tokenType)
	if err != nil {
		if !c.tokens.Storage().Accessible() {
			return "", nil
		}
		return "", err
	}
	if tok == nil || tok.Token == "" {
		return "", apierror.ErrNoToken
	}
	if scheme == authBearerUpper {
		return "BEARER " + tok.Token, nil
	}
	return "Bearer " + tok.Token, nil
}

// do executes one call. Failure normalization:
//  1. transport-level error -> coded network error, status 0, origin hint
//  2. non-2xx -> error envelope parsed into *apierror.Error
//  3. 2xx -> body decoded into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, scheme authScheme) error {
	ctx, span := c.tracer.Start(ctx, "identifo."+method+" "+path)
	defer span.End()

	start := time.Now()
	defer func() {
		requestDurationMs.WithLabelValues(path, method).
			Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	auth, err := c.authorizationHeader(ctx, scheme)
	if err != nil {
		requestErrorsTotal.WithLabelValues(path, "local").Inc()
		return err
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerClientID, c.appID)
	for name, values := range c.headers {
		req.Header[name] = values
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetAttributes(attribute.Bool("identifo.network_error", true))
		requestErrorsTotal.WithLabelValues(path, string(apierror.CodeNetwork)).Inc()
		c.log.Debug("identity api transport failure",
			zap.String("path", path), zap.Error(err))
		return networkError(c.origin, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		requestErrorsTotal.WithLabelValues(path, string(apierror.CodeNetwork)).Inc()
		return networkError(c.origin, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := apierror.FromResponse(resp.StatusCode, raw)
		requestErrorsTotal.WithLabelValues(path, string(apiErr.ID)).Inc()
		c.log.Debug("identity api error",
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("id", string(apiErr.ID)))
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// storeTokens is the single choke point that keeps the token service in sync
// with the latest server response, including silent refreshes. Empty values
// are skipped, so it is idempotent over token-free responses.
func (c *Client) storeTokens(ctx context.Context, access, refresh string) error {
	if _, err := c.tokens.SaveToken(ctx, access, storage.Access); err != nil {
		return err
	}
	if _, err := c.tokens.SaveToken(ctx, refresh, storage.Refresh); err != nil {
		return err
	}
	return nil
}
