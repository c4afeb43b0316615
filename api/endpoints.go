package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/madappgang/identifo-go/model"
)

// GetAppSettings fetches the application policy snapshot.
func (c *Client) GetAppSettings(ctx context.Context, callbackURL string) (model.AppSettings, error) {
	q := url.Values{}
	if callbackURL != "" {
		q.Set("callbackUrl", callbackURL)
	}
	var out model.AppSettings
	err := c.do(ctx, http.MethodGet, "/auth/app_settings", q, nil, &out, authNone)
	return out, err
}

// Login performs a password login.
func (c *Client) Login(ctx context.Context, email, password, deviceToken string, scopes []string) (model.LoginResponse, error) {
	req := model.LoginRequest{Email: email, Password: password, DeviceToken: deviceToken, Scopes: scopes}
	var out model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out, authNone); err != nil {
		return out, err
	}
	return out, c.storeTokens(ctx, out.AccessToken, out.RefreshToken)
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, email, password, inviteToken string, scopes []string) (model.LoginResponse, error) {
	req := model.RegisterRequest{Email: email, Password: password, InviteToken: inviteToken, Scopes: scopes}
	var out model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out, authNone); err != nil {
		return out, err
	}
	return out, c.storeTokens(ctx, out.AccessToken, out.RefreshToken)
}

// RequestPhoneCode asks the server to send a one-time code over SMS.
func (c *Client) RequestPhoneCode(ctx context.Context, phone string) (model.SuccessResponse, error) {
	var out model.SuccessResponse
	err := c.do(ctx, http.MethodPost, "/auth/request_phone_code", nil,
		model.RequestPhoneCodeRequest{PhoneNumber: phone}, &out, authNone)
	return out, err
}

// PhoneLogin exchanges a phone number and one-time code for a session.
func (c *Client) PhoneLogin(ctx context.Context, phone, code string, scopes []string) (model.LoginResponse, error) {
	req := model.PhoneLoginRequest{PhoneNumber: phone, Code: code, Scopes: scopes}
	var out model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/phone_login", nil, req, &out, authNone); err != nil {
		return out, err
	}
	return out, c.storeTokens(ctx, out.AccessToken, out.RefreshToken)
}

// RequestResetPassword sends the password reset email. The result is
// "tfa-required" when policy demands a second factor first; the code from
// that factor goes into tfaCode on the retry.
func (c *Client) RequestResetPassword(ctx context.Context, email, tfaCode string) (model.SuccessResponse, error) {
	var out model.SuccessResponse
	err := c.do(ctx, http.MethodPost, "/auth/request_reset_password", nil,
		model.RequestResetPasswordRequest{Email: email, TFACode: tfaCode}, &out, authNone)
	return out, err
}

// ResetPassword sets a new password for the holder of the reset token.
func (c *Client) ResetPassword(ctx context.Context, password string) (model.SuccessResponse, error) {
	var out model.SuccessResponse
	err := c.do(ctx, http.MethodPost, "/auth/reset_password", nil,
		model.ResetPasswordRequest{Password: password}, &out, authBearer)
	return out, err
}

// GetUser fetches the authenticated profile.
func (c *Client) GetUser(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/me", nil, nil, &out, authBearer)
	return out, err
}

// UpdateUser updates the authenticated profile.
func (c *Client) UpdateUser(ctx context.Context, req model.UpdateUserRequest) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPut, "/me", nil, req, &out, authBearer)
	return out, err
}

// EnableTFA (re)issues two-factor provisioning, optionally updating the
// contact channel first. A fresh access token in the response is persisted.
func (c *Client) EnableTFA(ctx context.Context, req model.EnableTFARequest) (model.EnableTFAResponse, error) {
	var out model.EnableTFAResponse
	if err := c.do(ctx, http.MethodPut, "/auth/tfa/enable", nil, req, &out, authBearerUpper); err != nil {
		return out, err
	}
	return out, c.storeTokens(ctx, out.AccessToken, "")
}

// VerifyTFA submits a second-factor code and completes the session.
func (c *Client) VerifyTFA(ctx context.Context, code string, scopes []string) (model.LoginResponse, error) {
	req := model.VerifyTFARequest{TFACode: code, Scopes: scopes}
	var out model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/tfa/login", nil, req, &out, authBearer); err != nil {
		return out, err
	}
	return out, c.storeTokens(ctx, out.AccessToken, out.RefreshToken)
}

// ResendTFA asks for a fresh code on the active email or sms channel.
func (c *Client) ResendTFA(ctx context.Context) (model.LoginResponse, error) {
	var out model.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/tfa/resend", nil, nil, &out, authBearerUpper)
	return out, err
}

// RenewToken exchanges the refresh token for a fresh access token.
func (c *Client) RenewToken(ctx context.Context) (model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/token", nil, nil, &out, authRefresh); err != nil {
		return out, err
	}
	return out, c.storeTokens(ctx, out.AccessToken, out.RefreshToken)
}

// Logout invalidates the server-side session. Token cleanup is the caller's
// concern; the session manager clears both tokens afterwards.
func (c *Client) Logout(ctx context.Context) (model.SuccessResponse, error) {
	var out model.SuccessResponse
	err := c.do(ctx, http.MethodPost, "/me/logout", nil, nil, &out, authBearer)
	return out, err
}
