// Package cmd implements the identifo CLI, a headless driver for the
// authentication flow machine. It exists both as a debugging tool against a
// running identity server and as a reference host for the SDK.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	identifo "github.com/madappgang/identifo-go"
	"github.com/madappgang/identifo-go/api"
	"github.com/madappgang/identifo-go/internal/platform/logger"
	"github.com/madappgang/identifo-go/storage"

	goredis "github.com/redis/go-redis/v9"
)

var rootCmd = &cobra.Command{
	Use:           "identifo",
	Short:         "identifo drives authentication flows against an Identifo server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("server", "", "identity server origin, e.g. https://auth.example.com")
	flags.String("app-id", "", "application id")
	flags.String("scopes", "", "comma-separated scopes")
	flags.String("callback-url", "", "callback URL for completed sessions")
	flags.String("redirect-url", "", "URL federated providers redirect back to")
	flags.String("storage", "file", "token storage backend: memory, file or redis")
	flags.String("store-path", defaultStorePath(), "token file for the file backend")
	flags.String("redis-addr", "localhost:6379", "redis address for the redis backend")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")

	viper.SetEnvPrefix("identifo")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".identifo.db"
	}
	return home + "/.identifo.db"
}

// buildClient assembles the SDK from flags and environment. The returned
// cleanup closes the storage backend.
func buildClient(nav api.Navigator) (*identifo.Client, func(), error) {
	log, err := logger.New(viper.GetString("log-level"))
	if err != nil {
		return nil, nil, err
	}

	store, cleanup, err := buildStorage()
	if err != nil {
		return nil, nil, err
	}

	var scopes []string
	if s := viper.GetString("scopes"); s != "" {
		scopes = strings.Split(s, ",")
	}

	client, err := identifo.New(identifo.Config{
		URL:         viper.GetString("server"),
		AppID:       viper.GetString("app-id"),
		Scopes:      scopes,
		CallbackURL: viper.GetString("callback-url"),
		RedirectURL: viper.GetString("redirect-url"),
	}, store, nav, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return client, cleanup, nil
}

func buildStorage() (storage.TokenStorage, func(), error) {
	switch backend := viper.GetString("storage"); backend {
	case "memory":
		return storage.NewMemory(), func() {}, nil
	case "file":
		store, err := storage.OpenBolt(viper.GetString("store-path"))
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: viper.GetString("redis-addr")})
		return storage.NewRedis(client), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
