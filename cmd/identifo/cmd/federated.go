package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/madappgang/identifo-go/cdk"
	"github.com/madappgang/identifo-go/model"
)

var federatedCmd = &cobra.Command{
	Use:   "federated <provider>",
	Short: "Log in through a federated provider (apple, google, facebook)",
	Long: `Opens the provider's consent screen in the system browser and listens on
localhost for the redirect back. The received URL is fed through the same
completion path a browser host would use on page load.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")
		redirectURL := "http://" + listen + "/callback"
		if viper.GetString("redirect-url") == "" {
			viper.Set("redirect-url", redirectURL)
		}

		client, cleanup, err := buildClient(browserNavigator{})
		if err != nil {
			return err
		}
		defer cleanup()

		returned := make(chan string, 1)
		srv := callbackListener(listen, returned)
		defer srv.Shutdown(context.Background()) //nolint:errcheck

		ctx := cmd.Context()
		if err := client.CDK.Start(ctx, ""); err != nil {
			return err
		}
		err = client.CDK.Dispatch(ctx, cdk.SocialLogin{Provider: model.FederatedProvider(args[0])})
		if err != nil {
			return err
		}
		if st, ok := client.CDK.State().(cdk.StateLogin); ok && st.Err != nil {
			return st.Err
		}

		fmt.Println("waiting for the provider to redirect back...")
		var bootURL string
		select {
		case bootURL = <-returned:
		case <-time.After(5 * time.Minute):
			return fmt.Errorf("timed out waiting for the federated redirect")
		case <-ctx.Done():
			return ctx.Err()
		}

		if err := client.CDK.Start(ctx, bootURL); err != nil {
			return err
		}
		if st, ok := client.CDK.State().(cdk.StateCallback); ok {
			fmt.Println("authenticated")
			fmt.Println("access token:", st.AccessToken)
			return nil
		}
		return fmt.Errorf("flow stopped on route %q", client.CDK.State().Route())
	},
}

// callbackListener serves the one-shot localhost redirect target.
func callbackListener(addr string, returned chan<- string) *http.Server {
	r := chi.NewRouter()
	r.Get("/callback", func(w http.ResponseWriter, req *http.Request) {
		select {
		case returned <- "http://" + addr + req.URL.String():
		default:
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>Login complete, you can close this window.</body></html>")
	})
	srv := &http.Server{Addr: addr, Handler: r}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}

func init() {
	federatedCmd.Flags().String("listen", "localhost:3322", "address for the local redirect listener")
	rootCmd.AddCommand(federatedCmd)
}
