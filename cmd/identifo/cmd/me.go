package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Print the authenticated profile, renewing the token if stale",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := buildClient(browserNavigator{})
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		if _, err := client.Auth.Token(ctx); err != nil {
			return fmt.Errorf("no usable session, log in first: %w", err)
		}
		user, err := client.API.GetUser(ctx)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
}
