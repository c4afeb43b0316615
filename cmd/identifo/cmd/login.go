package cmd

import (
	"github.com/spf13/cobra"

	"github.com/madappgang/identifo-go/cdk"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Password login, walking through two-factor steps if required",
	RunE: func(cmd *cobra.Command, _ []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		remember, _ := cmd.Flags().GetBool("remember")
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
		return runFlow(ctx, client.CDK, cdk.SignIn{Email: email, Password: password, Remember: remember})
	},
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "account email")
	loginCmd.Flags().StringP("password", "p", "", "account password (prompted when empty)")
	loginCmd.Flags().Bool("remember", false, "request an offline session with a refresh token")
	_ = loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)
}
