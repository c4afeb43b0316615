// Package model holds the wire types of the identity server contract.
package model

import (
	"encoding/json"
	"fmt"
)

// TFAType is a second-factor channel.
type TFAType string

const (
	TFATypeApp   TFAType = "app"
	TFATypeSMS   TFAType = "sms"
	TFATypeEmail TFAType = "email"
)

// TFAStatus is the server-side two-factor policy.
type TFAStatus string

const (
	TFAStatusDisabled  TFAStatus = "disabled"
	TFAStatusOptional  TFAStatus = "optional"
	TFAStatusMandatory TFAStatus = "mandatory"
)

// FederatedProvider names a third-party identity provider.
type FederatedProvider string

const (
	ProviderApple    FederatedProvider = "apple"
	ProviderGoogle   FederatedProvider = "google"
	ProviderFacebook FederatedProvider = "facebook"
)

// TFATypes unmarshals from either a single scalar or an array; older servers
// return a bare string when exactly one type is configured.
type TFATypes []TFAType

func (t *TFATypes) UnmarshalJSON(data []byte) error {
	var single TFAType
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TFATypes{single}
		return nil
	}
	var many []TFAType
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("tfa type: %w", err)
	}
	*t = many
	return nil
}

// LoginTypes declares which first-factor login methods the app accepts.
type LoginTypes struct {
	Email bool `json:"email"`
	Phone bool `json:"phone"`
}

// AppSettings is the policy snapshot served by /auth/app_settings.
type AppSettings struct {
	RegistrationForbidden        bool                `json:"registrationForbidden"`
	AnonymousRegistrationAllowed bool                `json:"anonymousRegistrationAllowed"`
	TFAType                      TFATypes            `json:"tfaType"`
	TFAStatus                    TFAStatus           `json:"tfaStatus"`
	TFAResendTimeout             int                 `json:"tfaResendTimeout"`
	FederatedProviders           []FederatedProvider `json:"federatedProviders"`
	LoginWith                    LoginTypes          `json:"loginWith"`
}

// TFAInfo is the per-user two-factor record nested inside User.
type TFAInfo struct {
	IsEnabled bool `json:"is_enabled"`
}

// User is the profile served by /me.
type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username,omitempty"`
	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	TFAInfo   TFAInfo `json:"tfa_info"`
	Active    bool    `json:"active"`
	Anonymous bool    `json:"anonymous,omitempty"`
}

// LoginResponse is returned by every credential-accepting endpoint.
// Require2FA=true means the session is not complete yet: the caller must
// branch on Enabled2FA to pick setup versus verification.
type LoginResponse struct {
	AccessToken  string   `json:"access_token,omitempty"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	Require2FA   bool     `json:"require_2fa"`
	Enabled2FA   bool     `json:"enabled_2fa"`
	User         User     `json:"user"`
	Scopes       []string `json:"scopes,omitempty"`
	CallbackURL  string   `json:"callbackUrl,omitempty"`
}

// EnableTFAResponse carries provisioning material for the authenticator-app
// channel; email and sms channels return only a fresh access token.
type EnableTFAResponse struct {
	ProvisioningURI string `json:"provisioning_uri,omitempty"`
	ProvisioningQR  string `json:"provisioning_qr,omitempty"`
	AccessToken     string `json:"access_token,omitempty"`
}

// Result values of SuccessResponse.
const (
	ResultOK          = "ok"
	ResultTFARequired = "tfa-required"
)

// SuccessResponse acknowledges an operation that yields no session.
type SuccessResponse struct {
	Result string `json:"result"`
}
