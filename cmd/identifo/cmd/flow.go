package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/madappgang/identifo-go/apierror"
	"github.com/madappgang/identifo-go/cdk"
	"github.com/madappgang/identifo-go/model"
)

// runFlow pumps the flow machine until it reaches a terminal screen,
// prompting on stdin for whatever the current state needs. This is the
// headless equivalent of a rendering layer subscribing to state transitions.
func runFlow(ctx context.Context, machine *cdk.CDK, first cdk.Action) error {
	if err := machine.Dispatch(ctx, first); err != nil {
		return err
	}

	for {
		switch st := machine.State().(type) {
		case cdk.StateCallback:
			fmt.Println("authenticated")
			fmt.Println("access token: ", st.AccessToken)
			if st.RefreshToken != "" {
				fmt.Println("refresh token:", st.RefreshToken)
			}
			return nil

		case cdk.StateError:
			return st.Err

		case cdk.StateLogin:
			if st.Err != nil {
				return st.Err
			}
			return fmt.Errorf("flow returned to the login screen")

		case cdk.StateOTPLogin:
			if st.Err != nil {
				return st.Err
			}
			code := prompt("one-time code: ")
			if err := machine.Dispatch(ctx, cdk.PhoneLogin{Phone: st.Phone, Code: code}); err != nil {
				return err
			}

		case cdk.StateTFASetupSelect:
			if st.CanSkip && !promptYesNo("enroll a second factor now?") {
				if err := machine.Dispatch(ctx, cdk.SetupTFANextTime{}); err != nil {
					return err
				}
				continue
			}
			choice := prompt(fmt.Sprintf("second factor %v: ", st.TFATypes))
			if err := machine.Dispatch(ctx, cdk.SelectTFAType{Type: model.TFAType(choice)}); err != nil {
				return err
			}

		case cdk.StateTFASetupApp:
			if st.Err != nil {
				return st.Err
			}
			fmt.Println("provisioning URI:", st.ProvisioningURI)
			prompt("press enter once the authenticator is set up")
			if err := machine.Dispatch(ctx, cdk.SetupTFA{}); err != nil {
				return err
			}

		case cdk.StateTFASetupEmail:
			email := promptDefault("second factor email", st.Email)
			if err := machine.Dispatch(ctx, cdk.SetupTFA{Email: email}); err != nil {
				return err
			}

		case cdk.StateTFASetupSMS:
			phone := promptDefault("second factor phone", st.Phone)
			if err := machine.Dispatch(ctx, cdk.SetupTFA{Phone: phone}); err != nil {
				return err
			}

		case cdk.StateTFAVerifySelect:
			choice := prompt(fmt.Sprintf("verify with %v: ", st.TFATypes))
			if err := machine.Dispatch(ctx, cdk.SelectTFAType{Type: model.TFAType(choice)}); err != nil {
				return err
			}

		case cdk.StateTFAVerifyApp:
			if err := verifyCode(ctx, machine, st.Err); err != nil {
				return err
			}
		case cdk.StateTFAVerifyEmail:
			if err := verifyCode(ctx, machine, st.Err); err != nil {
				return err
			}
		case cdk.StateTFAVerifySMS:
			if err := verifyCode(ctx, machine, st.Err); err != nil {
				return err
			}

		default:
			return fmt.Errorf("flow stopped on route %q", st.Route())
		}
	}
}

func verifyCode(ctx context.Context, machine *cdk.CDK, prev *apierror.Error) error {
	if prev != nil {
		fmt.Fprintln(os.Stderr, "error:", prev)
	}
	code := prompt("verification code: ")
	return machine.Dispatch(ctx, cdk.VerifyTFA{Code: code})
}

var stdin = bufio.NewReader(os.Stdin)

func prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptDefault(label, def string) string {
	v := prompt(fmt.Sprintf("%s [%s]: ", label, def))
	if v == "" {
		return def
	}
	return v
}

func promptYesNo(label string) bool {
	v := strings.ToLower(prompt(label + " [y/N]: "))
	return v == "y" || v == "yes"
}
