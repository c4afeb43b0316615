package cdk

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/madappgang/identifo-go/model"
)

// credentialRoutes are the screens where the user just typed a credential.
// The optional-TFA pitch is shown only right after one of these, never after
// a silent refresh or a federated bounce.
func isCredentialRoute(r Route) bool {
	return r == RouteLogin || r == RouteOTPLogin || r == RouteRegister
}

// afterLoginRedirect is the single decision point reached after every
// credential-accepting call. First match wins:
//
//  1. second factor required but not enrolled -> setup
//  2. second factor required and enrolled -> verification
//  3. optional policy right after fresh credentials -> skippable setup offer
//  4. response carries an access token -> callback
//  5. otherwise -> first factor screen
func (c *CDK) afterLoginRedirect(ctx context.Context, from Route, lr model.LoginResponse) State {
	c.mu.Lock()
	c.lastLogin = lr
	settings := c.settings
	c.mu.Unlock()

	switch {
	case lr.Require2FA && !lr.Enabled2FA:
		return c.tfaSetupState(ctx, settings, lr)
	case lr.Require2FA && lr.Enabled2FA:
		return tfaVerifyState(settings)
	case settings.TFAStatus == model.TFAStatusOptional && isCredentialRoute(from):
		return StateTFASetupSelect{TFATypes: settings.TFAType, CanSkip: true}
	case lr.AccessToken != "":
		return c.callbackState(lr)
	default:
		return c.firstFactorState()
	}
}

// tfaSetupState routes to the setup screen of the single configured channel,
// or to the selection screen when several are configured. Entering the app
// channel asks the server for provisioning material first.
func (c *CDK) tfaSetupState(ctx context.Context, settings model.AppSettings, lr model.LoginResponse) State {
	if len(settings.TFAType) != 1 {
		return StateTFASetupSelect{TFATypes: settings.TFAType}
	}
	switch settings.TFAType[0] {
	case model.TFATypeApp:
		return c.appProvisioningState(ctx)
	case model.TFATypeSMS:
		return StateTFASetupSMS{Phone: lr.User.Phone}
	default:
		return StateTFASetupEmail{Email: lr.User.Email}
	}
}

func (c *CDK) appProvisioningState(ctx context.Context) State {
	resp, err := c.client.EnableTFA(ctx, model.EnableTFARequest{})
	if err != nil {
		return StateTFASetupApp{Err: asAPIError(err)}
	}
	return StateTFASetupApp{
		ProvisioningURI: resp.ProvisioningURI,
		ProvisioningQR:  resp.ProvisioningQR,
	}
}

func tfaVerifyState(settings model.AppSettings) State {
	if len(settings.TFAType) != 1 {
		return StateTFAVerifySelect{TFATypes: settings.TFAType}
	}
	switch settings.TFAType[0] {
	case model.TFATypeApp:
		return StateTFAVerifyApp{}
	case model.TFATypeSMS:
		return StateTFAVerifySMS{ResendTimeout: settings.TFAResendTimeout}
	default:
		return StateTFAVerifyEmail{ResendTimeout: settings.TFAResendTimeout}
	}
}

// callbackState finalizes the session. When a callback URL is known the
// tokens are appended as query parameters and the navigator performs a full
// navigation to it.
func (c *CDK) callbackState(lr model.LoginResponse) State {
	target := lr.CallbackURL
	if target == "" {
		target = c.cfg.CallbackURL
	}

	st := StateCallback{
		Result:       lr,
		AccessToken:  lr.AccessToken,
		RefreshToken: lr.RefreshToken,
	}
	if target == "" {
		return st
	}

	u, err := url.Parse(target)
	if err != nil {
		c.log.Debug("bad callback url", zap.String("url", target), zap.Error(err))
		return st
	}
	q := u.Query()
	q.Set("token", lr.AccessToken)
	if lr.RefreshToken != "" {
		q.Set("refresh_token", lr.RefreshToken)
	}
	u.RawQuery = q.Encode()
	st.URL = u.String()

	if nav := c.client.Navigator(); nav != nil {
		if err := nav.Navigate(st.URL); err != nil {
			c.log.Debug("callback navigation failed", zap.Error(err))
		}
	}
	return st
}
