package cdk

// Route is the discriminant of the flow state union, one per screen or step.
type Route string

const (
	RouteLoading  Route = "loading"
	RouteLogin    Route = "login"
	RouteRegister Route = "register"
	RouteOTPLogin Route = "otp/login"

	RouteTFASetupSelect Route = "tfa/setup/select"
	RouteTFASetupApp    Route = "tfa/setup/app"
	RouteTFASetupEmail  Route = "tfa/setup/email"
	RouteTFASetupSMS    Route = "tfa/setup/sms"

	RouteTFAVerifySelect Route = "tfa/verify/select"
	RouteTFAVerifyApp    Route = "tfa/verify/app"
	RouteTFAVerifyEmail  Route = "tfa/verify/email"
	RouteTFAVerifySMS    Route = "tfa/verify/sms"

	RoutePasswordForgot          Route = "password/forgot"
	RoutePasswordForgotTFASelect Route = "password/forgot/tfa/select"
	RoutePasswordForgotTFAApp    Route = "password/forgot/tfa/app"
	RoutePasswordForgotTFAEmail  Route = "password/forgot/tfa/email"
	RoutePasswordForgotTFASMS    Route = "password/forgot/tfa/sms"
	RoutePasswordForgotSuccess   Route = "password/forgot/success"
	RoutePasswordReset           Route = "password/reset"

	RouteCallback Route = "callback"
	RouteLogout   Route = "logout"
	RouteError    Route = "error"
)
