// Package cdk is the client-side flow orchestrator: it sequences the
// multi-step authentication flows of the identity server and publishes the
// current flow state to registered observers.
//
// A CDK instance is explicitly constructed and owns its state; there are no
// package-level singletons, so several sessions can coexist in one process.
package cdk

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madappgang/identifo-go/api"
	"github.com/madappgang/identifo-go/apierror"
	"github.com/madappgang/identifo-go/model"
	"github.com/madappgang/identifo-go/session"
)

// Config is the static configuration of one flow machine.
type Config struct {
	// URL is the identity server origin.
	URL string
	// AppID identifies the application; it doubles as the token audience.
	AppID string
	// Scopes requested on every credential exchange.
	Scopes []string
	// Issuer, when set, is validated against token iss claims.
	Issuer string
	// CallbackURL receives the final navigation with token query parameters
	// appended once a session completes.
	CallbackURL string
	// RedirectURL is where federated providers send the browser back to.
	RedirectURL string
	// Federated shapes the federated login navigation (popup or full page).
	Federated api.FederatedOptions
}

// CDK is the flow state machine. All methods are safe for concurrent use;
// when two actions overlap, the later-dispatched one wins and the earlier
// completion is dropped.
type CDK struct {
	cfg    Config
	client *api.Client
	auth   *session.Manager
	log    *zap.Logger

	mu        sync.Mutex
	state     State
	settings  model.AppSettings
	lastLogin model.LoginResponse
	op        uuid.UUID
	subs      map[uint64]func(State)
	subSeq    uint64
}

// New wires a flow machine over an api client and session manager.
func New(cfg Config, client *api.Client, auth *session.Manager, log *zap.Logger) *CDK {
	if log == nil {
		log = zap.NewNop()
	}
	return &CDK{
		cfg:    cfg,
		client: client,
		auth:   auth,
		log:    log,
		state:  StateLoading{},
		subs:   make(map[uint64]func(State)),
	}
}

// State returns the current flow state.
func (c *CDK) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Settings returns the policy snapshot fetched at boot.
func (c *CDK) Settings() model.AppSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Auth exposes the session manager backing this machine.
func (c *CDK) Auth() *session.Manager { return c.auth }

// Subscribe registers an observer for state transitions and returns its
// deregistration func. The observer sees every transition from then on;
// the current state can be read immediately via State.
func (c *CDK) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subSeq++
	id := c.subSeq
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// begin tags a new in-flight operation, superseding any earlier one.
func (c *CDK) begin() (uuid.UUID, State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.op = uuid.New()
	return c.op, c.state
}

// commit installs the next state unless a newer operation superseded op while
// its network call was in flight. Transitions are total replacements.
func (c *CDK) commit(op uuid.UUID, next State) {
	c.mu.Lock()
	if c.op != op {
		c.mu.Unlock()
		c.log.Debug("dropping stale flow transition",
			zap.String("route", string(next.Route())))
		return
	}
	c.state = next
	observers := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
}

// Start boots the machine: federated completion when the boot URL carries
// provider and state parameters, then the settings fetch, then the first
// factor screen. rawURL is the URL the host app was opened with; it may be
// empty for headless hosts.
func (c *CDK) Start(ctx context.Context, rawURL string) error {
	op, _ := c.begin()
	c.commit(op, StateLoading{})

	if c.cfg.URL == "" || c.cfg.AppID == "" {
		err := apierror.New(apierror.CodeValidation, "identity server URL and app id are required")
		c.commit(op, StateError{Err: err})
		return err
	}

	settings, err := c.client.GetAppSettings(ctx, c.cfg.CallbackURL)
	if err != nil {
		c.commit(op, StateError{Err: asAPIError(err)})
		return err
	}
	c.mu.Lock()
	c.settings = settings
	c.mu.Unlock()

	if query, ok := federatedCompletionParams(rawURL, c.cfg.AppID); ok {
		c.scrubBootURL(rawURL)
		lr, err := c.client.FederatedLoginComplete(ctx, query)
		if err != nil {
			st := c.firstFactorState()
			c.commit(op, withBootError(st, asAPIError(err)))
			return nil
		}
		c.commit(op, c.afterLoginRedirect(ctx, RouteLoading, lr))
		return nil
	}

	c.commit(op, c.firstFactorState())
	return nil
}

// federatedCompletionParams detects the redirect back from a federated
// provider. The full boot query is forwarded to the completion endpoint with
// the app id re-derived from configuration.
func federatedCompletionParams(rawURL, appID string) (url.Values, bool) {
	if rawURL == "" {
		return nil, false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, false
	}
	q := u.Query()
	if q.Get("provider") == "" || q.Get("state") == "" {
		return nil, false
	}
	q.Set("appId", appID)
	return q, true
}

// scrubBootURL drops every query parameter except the re-derived appId and
// replaces the host's URL, so a reload does not re-trigger completion.
func (c *CDK) scrubBootURL(rawURL string) {
	nav := c.client.Navigator()
	if nav == nil {
		return
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return
	}
	u.RawQuery = url.Values{"appId": {c.cfg.AppID}}.Encode()
	if err := nav.ReplaceURL(u.String()); err != nil {
		c.log.Debug("replace boot url", zap.Error(err))
	}
}

// firstFactorState picks the initial screen from the configured login
// methods: phone-only apps open on the one-time-code screen.
func (c *CDK) firstFactorState() State {
	c.mu.Lock()
	settings := c.settings
	c.mu.Unlock()
	if settings.LoginWith.Phone && !settings.LoginWith.Email {
		return StateOTPLogin{
			RegistrationForbidden: settings.RegistrationForbidden,
			ResendTimeout:         settings.TFAResendTimeout,
		}
	}
	return StateLogin{
		RegistrationForbidden: settings.RegistrationForbidden,
		FederatedProviders:    settings.FederatedProviders,
	}
}

func withBootError(st State, err *apierror.Error) State {
	switch s := st.(type) {
	case StateLogin:
		s.Err = err
		return s
	case StateOTPLogin:
		s.Err = err
		return s
	default:
		return st
	}
}

func wrongRoute(a Action, s State) error {
	return fmt.Errorf("action %T is not available on route %q", a, s.Route())
}

// asAPIError normalizes any error into the surfaced taxonomy and trims its
// message fields, the only mutation an api error undergoes.
func asAPIError(err error) *apierror.Error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return apiErr.Trim()
	}
	return &apierror.Error{Message: err.Error(), DetailedMessage: err.Error()}
}
