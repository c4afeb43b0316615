package storage

type config struct {
	keys Keys
}

// Option customizes a storage backend.
type Option func(*config)

// WithKeys overrides the default identifo_-prefixed storage keys.
func WithKeys(keys Keys) Option {
	return func(c *config) {
		if keys.Access != "" {
			c.keys.Access = keys.Access
		}
		if keys.Refresh != "" {
			c.keys.Refresh = keys.Refresh
		}
		if keys.OIDCProviderData != "" {
			c.keys.OIDCProviderData = keys.OIDCProviderData
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := config{keys: DefaultKeys()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
