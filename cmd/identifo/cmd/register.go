package cmd

import (
	"github.com/spf13/cobra"

	"github.com/madappgang/identifo-go/cdk"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and complete the resulting session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		invite, _ := cmd.Flags().GetString("invite-token")
		if password == "" {
			password = prompt("password: ")
		}

		client, cleanup, err := buildClient(browserNavigator{})
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		if err := client.CDK.Start(ctx, ""); err != nil {
			return err
		}
		if err := client.CDK.Dispatch(ctx, cdk.ShowRegister{}); err != nil {
			return err
		}
		return runFlow(ctx, client.CDK, cdk.SignUp{Email: email, Password: password, InviteToken: invite})
	},
}

func init() {
	registerCmd.Flags().StringP("email", "e", "", "account email")
	registerCmd.Flags().StringP("password", "p", "", "account password (prompted when empty)")
	registerCmd.Flags().String("invite-token", "", "invitation token, when registration is invite-only")
	_ = registerCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(registerCmd)
}
