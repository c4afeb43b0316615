package cdk

import (
	"context"

	"github.com/google/uuid"

	"github.com/madappgang/identifo-go/apierror"
)

// scopeOffline asks the server for a refresh token alongside the access
// token, extending the session past a single access token lifetime.
const scopeOffline = "offline"

func (c *CDK) loginScopes(remember bool) []string {
	scopes := append([]string(nil), c.cfg.Scopes...)
	if !remember {
		return scopes
	}
	for _, s := range scopes {
		if s == scopeOffline {
			return scopes
		}
	}
	return append(scopes, scopeOffline)
}

// loginCatch handles a failed credential exchange. PleaseEnableTFA is
// swallowed: by the time the server emits it the machine is already inside a
// TFA flow, so surfacing it would clobber that screen. Everything else lands
// on the originating state's error field.
func (c *CDK) loginCatch(op uuid.UUID, attach func(*apierror.Error) State, err error) error {
	if apierror.Is(err, apierror.CodePleaseEnableTFA) {
		return nil
	}
	c.commit(op, attach(asAPIError(err)))
	return nil
}

func (c *CDK) signIn(ctx context.Context, op uuid.UUID, cur State, a SignIn) error {
	st, ok := cur.(StateLogin)
	if !ok {
		return wrongRoute(a, cur)
	}
	attach := func(e *apierror.Error) State { st.Err = e; return st }

	if !validEmail(a.Email) {
		c.commit(op, attach(validationError("enter a valid email address")))
		return nil
	}
	lr, err := c.client.Login(ctx, a.Email, a.Password, "", c.loginScopes(a.Remember))
	if err != nil {
		return c.loginCatch(op, attach, err)
	}
	c.commit(op, c.afterLoginRedirect(ctx, RouteLogin, lr))
	return nil
}

func (c *CDK) signUp(ctx context.Context, op uuid.UUID, cur State, a SignUp) error {
	st, ok := cur.(StateRegister)
	if !ok {
		return wrongRoute(a, cur)
	}
	attach := func(e *apierror.Error) State { st.Err = e; return st }

	if !validEmail(a.Email) {
		c.commit(op, attach(validationError("enter a valid email address")))
		return nil
	}
	lr, err := c.client.Register(ctx, a.Email, a.Password, a.InviteToken, c.loginScopes(false))
	if err != nil {
		return c.loginCatch(op, attach, err)
	}
	c.commit(op, c.afterLoginRedirect(ctx, RouteRegister, lr))
	return nil
}

func (c *CDK) socialLogin(ctx context.Context, op uuid.UUID, cur State, a SocialLogin) error {
	st, ok := cur.(StateLogin)
	if !ok {
		return wrongRoute(a, cur)
	}
	redirect := c.cfg.RedirectURL
	if redirect == "" {
		redirect = c.cfg.CallbackURL
	}
	err := c.client.FederatedLogin(ctx, a.Provider, c.cfg.Scopes, redirect, c.cfg.CallbackURL, c.cfg.Federated)
	if err != nil {
		st.Err = asAPIError(err)
		c.commit(op, st)
	}
	// On success the navigation owns the rest of the flow.
	return nil
}

func (c *CDK) requestPhoneCode(ctx context.Context, op uuid.UUID, cur State, a RequestPhoneCode) error {
	st, ok := cur.(StateOTPLogin)
	if !ok {
		return wrongRoute(a, cur)
	}
	attach := func(e *apierror.Error) State { st.Err = e; return st }

	if !validPhone(a.Phone) {
		c.commit(op, attach(validationError("enter a phone number in international format")))
		return nil
	}
	if _, err := c.client.RequestPhoneCode(ctx, a.Phone); err != nil {
		c.commit(op, attach(asAPIError(err)))
		return nil
	}
	st.Phone = a.Phone
	st.CodeSent = true
	st.Err = nil
	c.commit(op, st)
	return nil
}

func (c *CDK) phoneLogin(ctx context.Context, op uuid.UUID, cur State, a PhoneLogin) error {
	st, ok := cur.(StateOTPLogin)
	if !ok {
		return wrongRoute(a, cur)
	}
	attach := func(e *apierror.Error) State { st.Err = e; return st }

	if !validPhone(a.Phone) {
		c.commit(op, attach(validationError("enter a phone number in international format")))
		return nil
	}
	lr, err := c.client.PhoneLogin(ctx, a.Phone, a.Code, c.loginScopes(false))
	if err != nil {
		return c.loginCatch(op, attach, err)
	}
	c.commit(op, c.afterLoginRedirect(ctx, RouteOTPLogin, lr))
	return nil
}

func (c *CDK) showRegister(op uuid.UUID, cur State, a ShowRegister) error {
	st, ok := cur.(StateLogin)
	if !ok {
		return wrongRoute(a, cur)
	}
	if st.RegistrationForbidden {
		st.Err = validationError("registration is disabled for this application")
		c.commit(op, st)
		return nil
	}
	c.commit(op, StateRegister{})
	return nil
}

func (c *CDK) showLogin(op uuid.UUID, _ State) error {
	c.commit(op, c.firstFactorState())
	return nil
}

func (c *CDK) showOTPLogin(op uuid.UUID, cur State, a ShowOTPLogin) error {
	c.mu.Lock()
	settings := c.settings
	c.mu.Unlock()
	if !settings.LoginWith.Phone {
		return wrongRoute(a, cur)
	}
	c.commit(op, StateOTPLogin{
		RegistrationForbidden: settings.RegistrationForbidden,
		ResendTimeout:         settings.TFAResendTimeout,
	})
	return nil
}

func (c *CDK) showPasswordForgot(op uuid.UUID, cur State, a ShowPasswordForgot) error {
	if _, ok := cur.(StateLogin); !ok {
		return wrongRoute(a, cur)
	}
	c.commit(op, StatePasswordForgot{})
	return nil
}

func (c *CDK) logout(ctx context.Context, op uuid.UUID, _ State) error {
	st := StateLogout{}
	if err := c.auth.Logout(ctx); err != nil {
		st.Err = asAPIError(err)
	}
	c.commit(op, st)
	return nil
}
