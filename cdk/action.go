package cdk

import "github.com/madappgang/identifo-go/model"

// Action is the closed command set of the flow machine. Dispatch rejects an
// action whose kind the current route does not accept.
type Action interface {
	isAction()
}

// SignIn submits password credentials from the login screen. Remember
// requests an offline session, adding a refresh token to the response.
type SignIn struct {
	Email    string
	Password string
	Remember bool
}

// SignUp submits registration data from the register screen.
type SignUp struct {
	Email       string
	Password    string
	InviteToken string
}

// SocialLogin starts a federated flow with the chosen provider.
type SocialLogin struct {
	Provider model.FederatedProvider
}

// RequestPhoneCode asks for a one-time code on the phone login screen.
type RequestPhoneCode struct {
	Phone string
}

// PhoneLogin submits the one-time code on the phone login screen.
type PhoneLogin struct {
	Phone string
	Code  string
}

// SelectTFAType picks a channel on a setup, verify or reset selection screen.
type SelectTFAType struct {
	Type model.TFAType
}

// SetupTFA confirms enrollment on a per-channel setup screen. Email and Phone
// update the contact channel first; both stay empty on the app channel.
type SetupTFA struct {
	Email string
	Phone string
}

// SetupTFANextTime skips optional enrollment and completes the session.
type SetupTFANextTime struct{}

// VerifyTFA submits a second-factor code.
type VerifyTFA struct {
	Code string
}

// ResendTFA requests a fresh code on an email or sms verification screen.
type ResendTFA struct{}

// RestorePassword sends reset instructions from the forgot screen; on the
// forgot-TFA screens the code travels in VerifyTFA instead.
type RestorePassword struct {
	Email string
}

// ResetPassword sets the new password on the reset screen.
type ResetPassword struct {
	Password string
}

// ShowRegister navigates login -> register.
type ShowRegister struct{}

// ShowLogin navigates back to the first-factor screen.
type ShowLogin struct{}

// ShowOTPLogin navigates to the phone login screen on apps that accept it.
type ShowOTPLogin struct{}

// ShowPasswordForgot navigates login -> password forgot.
type ShowPasswordForgot struct{}

// Logout terminates the session.
type Logout struct{}

func (SignIn) isAction()             {}
func (SignUp) isAction()             {}
func (SocialLogin) isAction()        {}
func (RequestPhoneCode) isAction()   {}
func (PhoneLogin) isAction()         {}
func (SelectTFAType) isAction()      {}
func (SetupTFA) isAction()           {}
func (SetupTFANextTime) isAction()   {}
func (VerifyTFA) isAction()          {}
func (ResendTFA) isAction()          {}
func (RestorePassword) isAction()    {}
func (ResetPassword) isAction()      {}
func (ShowRegister) isAction()       {}
func (ShowLogin) isAction()          {}
func (ShowOTPLogin) isAction()       {}
func (ShowPasswordForgot) isAction() {}
func (Logout) isAction()             {}
