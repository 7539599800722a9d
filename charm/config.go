// ABOUTME: Charm backend settings taken from the storage section of the app config
// ABOUTME: An auto-sync choice made with `echoes sync auto` is kept next to the slices

package charm

import "github.com/harperreed/echoes/config"

const (
	// DefaultCharmHost is the self-hosted 2389 research server.
	DefaultCharmHost = "charm.2389.dev"

	// AppName names the charm KV database.
	AppName = "echoes"

	// settingsSlice holds the sync settings under the workspace prefix.
	settingsSlice = "syncSettings"
)

// Config is what a Client needs: where to sync, which key namespace the
// workspace slices live in, and whether writes are pushed immediately.
type Config struct {
	Host     string
	Prefix   string
	AutoSync bool
}

// FromStorage maps the app's storage config onto charm settings.
func FromStorage(sc config.StorageConfig) Config {
	cfg := Config{
		Host:     sc.Charm.Host,
		Prefix:   sc.Prefix,
		AutoSync: sc.Charm.AutoSync,
	}
	if cfg.Host == "" {
		cfg.Host = DefaultCharmHost
	}
	return cfg
}

// syncSettings overrides Config.AutoSync once the user has chosen explicitly.
type syncSettings struct {
	AutoSync bool `json:"autoSync"`
}
