package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect and renew stored tokens",
}

var tokenRenewCmd = &cobra.Command{
	Use:   "renew",
	Short: "Exchange the refresh token for a fresh access token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := buildClient(browserNavigator{})
		if err != nil {
			return err
		}
		defer cleanup()

		renewed, err := client.Auth.Renew(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("access token:", renewed.Token)
		if renewed.Payload.ExpiresAt != nil {
			fmt.Println("expires at:  ", renewed.Payload.ExpiresAt.Time)
		}
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenRenewCmd)
	rootCmd.AddCommand(tokenCmd)
}
