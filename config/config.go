// ABOUTME: Application configuration loaded with viper from defaults, config.toml, .env and env vars
// ABOUTME: Environment variables use the ECHOES_ prefix, e.g. ECHOES_STORAGE_BACKEND=sqlite
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/harperreed/echoes/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendCharm  = "charm"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	App     AppConfig
	Log     logging.Config
	Storage StorageConfig
	AI      AIConfig
	Stripe  StripeConfig
	Google  GoogleConfig
	Email   EmailConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type StorageConfig struct {
	Backend string
	Path    string // sqlite file
	Prefix  string
	Redis   RedisConfig
	Charm   CharmConfig
}

// CharmConfig is read by the charm backend. AutoSync pushes every write to
// the server as it happens.
type CharmConfig struct {
	Host     string
	AutoSync bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AIConfig configures the Gemini text collaborator. With Simulate set (or
// no API key) a canned simulated generator is used instead.
type AIConfig struct {
	APIKey   string
	Model    string
	Simulate bool
}

type StripeConfig struct {
	SecretKey     string
	Currency      string
	PaymentMethod string
	Simulate      bool
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
}

// EmailConfig controls the transport behind SendEmail. Provider credentials
// themselves live in the workspace's email settings slice.
type EmailConfig struct {
	Simulate bool
	Timeout  time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "echoes")
	v.SetDefault("app.env", "development")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("storage.backend", BackendCharm)
	v.SetDefault("storage.path", filepath.Join(xdg.DataHome, "echoes", "echoes.db"))
	v.SetDefault("storage.prefix", "echoes_")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.charm.host", "charm.2389.dev")
	v.SetDefault("storage.charm.auto_sync", true)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.simulate", true)

	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("stripe.payment_method", "")
	v.SetDefault("stripe.simulate", true)

	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")

	v.SetDefault("email.simulate", true)
	v.SetDefault("email.timeout", 30*time.Second)
}

// Load builds the configuration. Priority, highest first:
//  1. ECHOES_* environment variables (a .env file in the working directory is loaded first)
//  2. config.toml in the search paths (default: "." and the XDG config dir)
//  3. built-in defaults
func Load(searchPaths ...string) (*Config, error) {
	// A missing .env is normal; existing env vars always win.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if len(searchPaths) == 0 {
		searchPaths = []string{".", filepath.Join(xdg.ConfigHome, "echoes")}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ECHOES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: logging.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(v.GetString("storage.backend")),
			Path:    v.GetString("storage.path"),
			Prefix:  v.GetString("storage.prefix"),
			Redis: RedisConfig{
				Addr:     v.GetString("storage.redis.addr"),
				Password: v.GetString("storage.redis.password"),
				DB:       v.GetInt("storage.redis.db"),
			},
			Charm: CharmConfig{
				Host:     v.GetString("storage.charm.host"),
				AutoSync: v.GetBool("storage.charm.auto_sync"),
			},
		},
		AI: AIConfig{
			APIKey:   v.GetString("ai.api_key"),
			Model:    v.GetString("ai.model"),
			Simulate: v.GetBool("ai.simulate"),
		},
		Stripe: StripeConfig{
			SecretKey:     v.GetString("stripe.secret_key"),
			Currency:      v.GetString("stripe.currency"),
			PaymentMethod: v.GetString("stripe.payment_method"),
			Simulate:      v.GetBool("stripe.simulate"),
		},
		Google: GoogleConfig{
			ClientID:     v.GetString("google.client_id"),
			ClientSecret: v.GetString("google.client_secret"),
		},
		Email: EmailConfig{
			Simulate: v.GetBool("email.simulate"),
			Timeout:  v.GetDuration("email.timeout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendCharm, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (valid: charm, sqlite, redis, memory)", c.Storage.Backend)
	}
	if c.Storage.Prefix == "" {
		return fmt.Errorf("storage.prefix must not be empty")
	}
	if !c.AI.Simulate && c.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required when ai.simulate is false")
	}
	if !c.Stripe.Simulate && c.Stripe.SecretKey == "" {
		return fmt.Errorf("stripe.secret_key is required when stripe.simulate is false")
	}
	return nil
}
