package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the server session and clear stored tokens",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := buildClient(browserNavigator{})
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.Auth.Logout(cmd.Context()); err != nil {
			// Tokens are cleared locally even when the server call failed.
			fmt.Println("local session cleared; server logout failed:", err)
			return nil
		}
		fmt.Println("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
