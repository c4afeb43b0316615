package cdk

import (
	"github.com/madappgang/identifo-go/apierror"
	"github.com/madappgang/identifo-go/model"
)

// State is the tagged union of flow states. Exactly one state is current at
// any time; every transition replaces the whole value, so consumers can
// always switch on Route and destructure the concrete type safely.
//
// States carry data only. What can be done in a state is expressed through
// the Action set accepted by Dispatch, not through embedded closures.
type State interface {
	Route() Route
}

// StateLoading is the boot state while settings are being fetched.
type StateLoading struct{}

func (StateLoading) Route() Route { return RouteLoading }

// StateError is terminal: configuration is unusable or settings could not be
// fetched.
type StateError struct {
	Err *apierror.Error
}

func (StateError) Route() Route { return RouteError }

// StateLogin is the password login screen.
type StateLogin struct {
	RegistrationForbidden bool
	FederatedProviders    []model.FederatedProvider
	Err                   *apierror.Error
}

func (StateLogin) Route() Route { return RouteLogin }

// StateRegister is the registration screen.
type StateRegister struct {
	Err *apierror.Error
}

func (StateRegister) Route() Route { return RouteRegister }

// StateOTPLogin is the phone login screen. CodeSent flips after the one-time
// code has been requested.
type StateOTPLogin struct {
	RegistrationForbidden bool
	Phone                 string
	CodeSent              bool
	ResendTimeout         int
	Err                   *apierror.Error
}

func (StateOTPLogin) Route() Route { return RouteOTPLogin }

// StateTFASetupSelect offers a choice of second-factor channels to enroll.
// CanSkip is set when policy is optional and the user just entered fresh
// credentials.
type StateTFASetupSelect struct {
	TFATypes []model.TFAType
	CanSkip  bool
	Err      *apierror.Error
}

func (StateTFASetupSelect) Route() Route { return RouteTFASetupSelect }

// StateTFASetupApp shows authenticator-app provisioning material.
type StateTFASetupApp struct {
	ProvisioningURI string
	ProvisioningQR  string
	Err             *apierror.Error
}

func (StateTFASetupApp) Route() Route { return RouteTFASetupApp }

// StateTFASetupEmail collects or confirms the email channel.
type StateTFASetupEmail struct {
	Email string
	Err   *apierror.Error
}

func (StateTFASetupEmail) Route() Route { return RouteTFASetupEmail }

// StateTFASetupSMS collects or confirms the phone channel.
type StateTFASetupSMS struct {
	Phone string
	Err   *apierror.Error
}

func (StateTFASetupSMS) Route() Route { return RouteTFASetupSMS }

// StateTFAVerifySelect offers a choice of enrolled channels to verify with.
type StateTFAVerifySelect struct {
	TFATypes []model.TFAType
	Err      *apierror.Error
}

func (StateTFAVerifySelect) Route() Route { return RouteTFAVerifySelect }

// StateTFAVerifyApp awaits a TOTP code. The app channel has no resend.
type StateTFAVerifyApp struct {
	Err *apierror.Error
}

func (StateTFAVerifyApp) Route() Route { return RouteTFAVerifyApp }

// StateTFAVerifyEmail awaits an emailed code.
type StateTFAVerifyEmail struct {
	ResendTimeout int
	Err           *apierror.Error
}

func (StateTFAVerifyEmail) Route() Route { return RouteTFAVerifyEmail }

// StateTFAVerifySMS awaits a texted code.
type StateTFAVerifySMS struct {
	ResendTimeout int
	Err           *apierror.Error
}

func (StateTFAVerifySMS) Route() Route { return RouteTFAVerifySMS }

// StatePasswordForgot collects the email to send reset instructions to.
type StatePasswordForgot struct {
	Err *apierror.Error
}

func (StatePasswordForgot) Route() Route { return RoutePasswordForgot }

// StatePasswordForgotTFASelect appears when reset needs a second factor and
// several channels are enrolled.
type StatePasswordForgotTFASelect struct {
	Email    string
	TFATypes []model.TFAType
	Err      *apierror.Error
}

func (StatePasswordForgotTFASelect) Route() Route { return RoutePasswordForgotTFASelect }

// StatePasswordForgotTFAApp awaits a TOTP code gating the reset email.
type StatePasswordForgotTFAApp struct {
	Email string
	Err   *apierror.Error
}

func (StatePasswordForgotTFAApp) Route() Route { return RoutePasswordForgotTFAApp }

// StatePasswordForgotTFAEmail awaits an emailed code gating the reset email.
type StatePasswordForgotTFAEmail struct {
	Email         string
	ResendTimeout int
	Err           *apierror.Error
}

func (StatePasswordForgotTFAEmail) Route() Route { return RoutePasswordForgotTFAEmail }

// StatePasswordForgotTFASMS awaits a texted code gating the reset email.
type StatePasswordForgotTFASMS struct {
	Email         string
	ResendTimeout int
	Err           *apierror.Error
}

func (StatePasswordForgotTFASMS) Route() Route { return RoutePasswordForgotTFASMS }

// StatePasswordForgotSuccess confirms the reset email went out.
type StatePasswordForgotSuccess struct{}

func (StatePasswordForgotSuccess) Route() Route { return RoutePasswordForgotSuccess }

// StatePasswordReset collects the new password; the bearer token arrived via
// the reset link and was installed by session.HandleAuthentication.
type StatePasswordReset struct {
	Err *apierror.Error
}

func (StatePasswordReset) Route() Route { return RoutePasswordReset }

// StateCallback is the completed-session state. URL is the final navigation
// target with token parameters appended, empty when no callback is
// configured.
type StateCallback struct {
	URL          string
	Result       model.LoginResponse
	AccessToken  string
	RefreshToken string
}

func (StateCallback) Route() Route { return RouteCallback }

// StateLogout confirms session termination.
type StateLogout struct {
	Err *apierror.Error
}

func (StateLogout) Route() Route { return RouteLogout }
