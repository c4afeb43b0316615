package cdk

import (
	"context"

	"github.com/google/uuid"

	"github.com/madappgang/identifo-go/apierror"
	"github.com/madappgang/identifo-go/model"
)

func (c *CDK) selectTFAType(ctx context.Context, op uuid.UUID, cur State, a SelectTFAType) error {
	c.mu.Lock()
	settings := c.settings
	lr := c.lastLogin
	c.mu.Unlock()

	switch st := cur.(type) {
	case StateTFASetupSelect:
		switch a.Type {
		case model.TFATypeApp:
			c.commit(op, c.appProvisioningState(ctx))
		case model.TFATypeSMS:
			c.commit(op, StateTFASetupSMS{Phone: lr.User.Phone})
		case model.TFATypeEmail:
			c.commit(op, StateTFASetupEmail{Email: lr.User.Email})
		default:
			st.Err = validationError("unknown second factor type")
			c.commit(op, st)
		}
	case StateTFAVerifySelect:
		switch a.Type {
		case model.TFATypeApp:
			c.commit(op, StateTFAVerifyApp{})
		case model.TFATypeSMS:
			c.commit(op, StateTFAVerifySMS{ResendTimeout: settings.TFAResendTimeout})
		case model.TFATypeEmail:
			c.commit(op, StateTFAVerifyEmail{ResendTimeout: settings.TFAResendTimeout})
		default:
			st.Err = validationError("unknown second factor type")
			c.commit(op, st)
		}
	case StatePasswordForgotTFASelect:
		switch a.Type {
		case model.TFATypeApp:
			c.commit(op, StatePasswordForgotTFAApp{Email: st.Email})
		case model.TFATypeSMS:
			c.commit(op, StatePasswordForgotTFASMS{Email: st.Email, ResendTimeout: settings.TFAResendTimeout})
		case model.TFATypeEmail:
			c.commit(op, StatePasswordForgotTFAEmail{Email: st.Email, ResendTimeout: settings.TFAResendTimeout})
		default:
			st.Err = validationError("unknown second factor type")
			c.commit(op, st)
		}
	default:
		return wrongRoute(a, cur)
	}
	return nil
}

// setupTFA confirms enrollment on a per-channel setup screen. The app
// channel already has provisioning on screen, so Continue goes straight to
// verification; email and sms re-enable the factor with the (possibly
// edited) contact first.
func (c *CDK) setupTFA(ctx context.Context, op uuid.UUID, cur State, a SetupTFA) error {
	c.mu.Lock()
	settings := c.settings
	c.mu.Unlock()

	switch st := cur.(type) {
	case StateTFASetupApp:
		c.commit(op, StateTFAVerifyApp{})
		return nil
	case StateTFASetupEmail:
		email := a.Email
		if email == "" {
			email = st.Email
		}
		if !validEmail(email) {
			st.Err = validationError("enter a valid email address")
			c.commit(op, st)
			return nil
		}
		if _, err := c.client.EnableTFA(ctx, model.EnableTFARequest{Email: email}); err != nil {
			st.Err = asAPIError(err)
			c.commit(op, st)
			return nil
		}
		c.commit(op, StateTFAVerifyEmail{ResendTimeout: settings.TFAResendTimeout})
		return nil
	case StateTFASetupSMS:
		phone := a.Phone
		if phone == "" {
			phone = st.Phone
		}
		if !validPhone(phone) {
			st.Err = validationError("enter a phone number in international format")
			c.commit(op, st)
			return nil
		}
		if _, err := c.client.EnableTFA(ctx, model.EnableTFARequest{Phone: phone}); err != nil {
			st.Err = asAPIError(err)
			c.commit(op, st)
			return nil
		}
		c.commit(op, StateTFAVerifySMS{ResendTimeout: settings.TFAResendTimeout})
		return nil
	default:
		return wrongRoute(a, cur)
	}
}

// setupTFANextTime skips the optional enrollment pitch and completes the
// session with the tokens from the last credential exchange.
func (c *CDK) setupTFANextTime(_ context.Context, op uuid.UUID, cur State, a SetupTFANextTime) error {
	st, ok := cur.(StateTFASetupSelect)
	if !ok || !st.CanSkip {
		return wrongRoute(a, cur)
	}
	c.mu.Lock()
	lr := c.lastLogin
	c.mu.Unlock()

	if lr.AccessToken == "" {
		c.commit(op, c.firstFactorState())
		return nil
	}
	c.commit(op, c.callbackState(lr))
	return nil
}

func (c *CDK) verifyTFA(ctx context.Context, op uuid.UUID, cur State, a VerifyTFA) error {
	switch st := cur.(type) {
	case StateTFAVerifyApp, StateTFAVerifyEmail, StateTFAVerifySMS:
		attach := func(e *apierror.Error) State { return withTFAError(cur, e) }
		lr, err := c.client.VerifyTFA(ctx, a.Code, c.cfg.Scopes)
		if err != nil {
			c.commit(op, attach(asAPIError(err)))
			return nil
		}
		c.commit(op, c.afterLoginRedirect(ctx, cur.Route(), lr))
		return nil

	case StatePasswordForgotTFAApp:
		return c.forgotWithCode(ctx, op, cur, st.Email, a.Code)
	case StatePasswordForgotTFAEmail:
		return c.forgotWithCode(ctx, op, cur, st.Email, a.Code)
	case StatePasswordForgotTFASMS:
		return c.forgotWithCode(ctx, op, cur, st.Email, a.Code)
	default:
		return wrongRoute(a, cur)
	}
}

func (c *CDK) resendTFA(ctx context.Context, op uuid.UUID, cur State, a ResendTFA) error {
	switch cur.(type) {
	case StateTFAVerifyEmail, StateTFAVerifySMS,
		StatePasswordForgotTFAEmail, StatePasswordForgotTFASMS:
	default:
		// The authenticator app channel has nothing to resend.
		return wrongRoute(a, cur)
	}
	if _, err := c.client.ResendTFA(ctx); err != nil {
		c.commit(op, withTFAError(cur, asAPIError(err)))
		return nil
	}
	c.commit(op, withTFAError(cur, nil))
	return nil
}

// withTFAError re-emits a verification state with its error field replaced,
// keeping route and form context intact.
func withTFAError(cur State, e *apierror.Error) State {
	switch st := cur.(type) {
	case StateTFAVerifyApp:
		st.Err = e
		return st
	case StateTFAVerifyEmail:
		st.Err = e
		return st
	case StateTFAVerifySMS:
		st.Err = e
		return st
	case StatePasswordForgotTFAApp:
		st.Err = e
		return st
	case StatePasswordForgotTFAEmail:
		st.Err = e
		return st
	case StatePasswordForgotTFASMS:
		st.Err = e
		return st
	default:
		return cur
	}
}
