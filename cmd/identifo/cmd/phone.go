package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madappgang/identifo-go/cdk"
)

var phoneCmd = &cobra.Command{
	Use:   "phone",
	Short: "One-time-code login over SMS",
	RunE: func(cmd *cobra.Command, _ []string) error {
		number, _ := cmd.Flags().GetString("number")

		client, cleanup, err := buildClient(browserNavigator{})
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		if err := client.CDK.Start(ctx, ""); err != nil {
			return err
		}
		if !client.CDK.Settings().LoginWith.Phone {
			return fmt.Errorf("this application does not accept phone login")
		}
		if _, ok := client.CDK.State().(cdk.StateOTPLogin); !ok {
			// Email-first apps open on the password screen; move over.
			if err := client.CDK.Dispatch(ctx, cdk.ShowOTPLogin{}); err != nil {
				return err
			}
		}
		return runFlow(ctx, client.CDK, cdk.RequestPhoneCode{Phone: number})
	},
}

func init() {
	phoneCmd.Flags().StringP("number", "n", "", "phone number in international format")
	_ = phoneCmd.MarkFlagRequired("number")
	rootCmd.AddCommand(phoneCmd)
}
