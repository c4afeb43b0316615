package cdk

import "context"

// Dispatch executes one user action against the current state. Local
// failures (action not available on this route, programming errors) are
// returned; server and network failures are attached to the current state's
// error field and re-emitted without changing route, so no error ever
// escapes the machine in a way the UI cannot render inline.
func (c *CDK) Dispatch(ctx context.Context, a Action) error {
	op, cur := c.begin()

	switch act := a.(type) {
	case SignIn:
		return c.signIn(ctx, op, cur, act)
	case SignUp:
		return c.signUp(ctx, op, cur, act)
	case SocialLogin:
		return c.socialLogin(ctx, op, cur, act)
	case RequestPhoneCode:
		return c.requestPhoneCode(ctx, op, cur, act)
	case PhoneLogin:
		return c.phoneLogin(ctx, op, cur, act)
	case SelectTFAType:
		return c.selectTFAType(ctx, op, cur, act)
	case SetupTFA:
		return c.setupTFA(ctx, op, cur, act)
	case SetupTFANextTime:
		return c.setupTFANextTime(ctx, op, cur, act)
	case VerifyTFA:
		return c.verifyTFA(ctx, op, cur, act)
	case ResendTFA:
		return c.resendTFA(ctx, op, cur, act)
	case RestorePassword:
		return c.restorePassword(ctx, op, cur, act)
	case ResetPassword:
		return c.resetPassword(ctx, op, cur, act)
	case ShowRegister:
		return c.showRegister(op, cur, act)
	case ShowLogin:
		return c.showLogin(op, cur)
	case ShowOTPLogin:
		return c.showOTPLogin(op, cur, act)
	case ShowPasswordForgot:
		return c.showPasswordForgot(op, cur, act)
	case Logout:
		return c.logout(ctx, op, cur)
	default:
		return wrongRoute(a, cur)
	}
}
