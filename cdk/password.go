package cdk

import (
	"context"

	"github.com/google/uuid"

	"github.com/madappgang/identifo-go/model"
)

func (c *CDK) restorePassword(ctx context.Context, op uuid.UUID, cur State, a RestorePassword) error {
	st, ok := cur.(StatePasswordForgot)
	if !ok {
		return wrongRoute(a, cur)
	}
	if !validEmail(a.Email) {
		st.Err = validationError("enter a valid email address")
		c.commit(op, st)
		return nil
	}

	resp, err := c.client.RequestResetPassword(ctx, a.Email, "")
	if err != nil {
		st.Err = asAPIError(err)
		c.commit(op, st)
		return nil
	}
	if resp.Result != model.ResultTFARequired {
		c.commit(op, StatePasswordForgotSuccess{})
		return nil
	}

	// Policy gates the reset email behind a second factor.
	c.mu.Lock()
	settings := c.settings
	c.mu.Unlock()
	if len(settings.TFAType) != 1 {
		c.commit(op, StatePasswordForgotTFASelect{Email: a.Email, TFATypes: settings.TFAType})
		return nil
	}
	switch settings.TFAType[0] {
	case model.TFATypeApp:
		c.commit(op, StatePasswordForgotTFAApp{Email: a.Email})
	case model.TFATypeSMS:
		c.commit(op, StatePasswordForgotTFASMS{Email: a.Email, ResendTimeout: settings.TFAResendTimeout})
	default:
		c.commit(op, StatePasswordForgotTFAEmail{Email: a.Email, ResendTimeout: settings.TFAResendTimeout})
	}
	return nil
}

// forgotWithCode retries the reset request with the second-factor code.
func (c *CDK) forgotWithCode(ctx context.Context, op uuid.UUID, cur State, email, code string) error {
	resp, err := c.client.RequestResetPassword(ctx, email, code)
	if err != nil {
		c.commit(op, withTFAError(cur, asAPIError(err)))
		return nil
	}
	if resp.Result == model.ResultTFARequired {
		c.commit(op, withTFAError(cur, validationError("the code was not accepted, request a new one")))
		return nil
	}
	c.commit(op, StatePasswordForgotSuccess{})
	return nil
}

func (c *CDK) resetPassword(ctx context.Context, op uuid.UUID, cur State, a ResetPassword) error {
	st, ok := cur.(StatePasswordReset)
	if !ok {
		return wrongRoute(a, cur)
	}
	if a.Password == "" {
		st.Err = validationError("password must not be empty")
		c.commit(op, st)
		return nil
	}
	if _, err := c.client.ResetPassword(ctx, a.Password); err != nil {
		st.Err = asAPIError(err)
		c.commit(op, st)
		return nil
	}
	c.commit(op, c.firstFactorState())
	return nil
}

// ShowPasswordReset moves the machine onto the new-password screen. It is
// called by the host after session.HandleAuthentication installed the reset
// token from the emailed link.
func (c *CDK) ShowPasswordReset() {
	op, _ := c.begin()
	c.commit(op, StatePasswordReset{})
}
