// Package identifo wires the SDK layers (storage, token service, transport,
// session, flow machine) into ready-to-use constructors.
package identifo

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/madappgang/identifo-go/api"
	"github.com/madappgang/identifo-go/cdk"
	"github.com/madappgang/identifo-go/session"
	"github.com/madappgang/identifo-go/storage"
	"github.com/madappgang/identifo-go/token"
	"github.com/madappgang/identifo-go/urlbuilder"
)

// Config configures one client of one identity server application.
type Config struct {
	// URL is the identity server origin.
	URL string
	// AppID identifies the application and doubles as the token audience.
	AppID string
	// Scopes requested on credential exchanges.
	Scopes []string
	// Issuer, when set, is validated against token iss claims.
	Issuer string
	// CallbackURL receives the final navigation once a session completes.
	CallbackURL string
	// RedirectURL is where federated providers send the browser back to.
	RedirectURL string
	// Federated shapes the federated login navigation.
	Federated api.FederatedOptions
}

// Client bundles the composed SDK layers for one application session.
type Client struct {
	API  *api.Client
	Auth *session.Manager
	CDK  *cdk.CDK
}

// New composes a full client over the given token storage. A nil storage
// defaults to the in-memory store; a nil logger to a nop logger.
func New(cfg Config, store storage.TokenStorage, nav api.Navigator, log *zap.Logger) (*Client, error) {
	if cfg.URL == "" || cfg.AppID == "" {
		return nil, fmt.Errorf("identity server URL and app id are required")
	}
	if store == nil {
		store = storage.NewMemory()
	}
	if log == nil {
		log = zap.NewNop()
	}

	tokens := token.NewService(store)
	apiClient, err := api.New(cfg.URL, cfg.AppID, tokens,
		api.WithLogger(log),
		api.WithNavigator(nav),
		api.WithOrigin(originOf(cfg)),
	)
	if err != nil {
		return nil, err
	}

	auth := session.New(session.Config{
		Audience: cfg.AppID,
		Issuer:   cfg.Issuer,
		URLParams: urlbuilder.Params{
			BaseURL:     cfg.URL,
			AppID:       cfg.AppID,
			Scopes:      cfg.Scopes,
			CallbackURL: cfg.CallbackURL,
		},
	}, apiClient, log)

	machine := cdk.New(cdk.Config{
		URL:         cfg.URL,
		AppID:       cfg.AppID,
		Scopes:      cfg.Scopes,
		Issuer:      cfg.Issuer,
		CallbackURL: cfg.CallbackURL,
		RedirectURL: cfg.RedirectURL,
		Federated:   cfg.Federated,
	}, apiClient, auth, log)

	return &Client{API: apiClient, Auth: auth, CDK: machine}, nil
}

// originOf picks the origin reported in network error messages: the place
// the operator should allow-list, normally where the app itself is served.
func originOf(cfg Config) string {
	source := cfg.CallbackURL
	if source == "" {
		source = cfg.URL
	}
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return source
	}
	return u.Scheme + "://" + u.Host
}
