package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// JWTSecret signs session tokens. It must never be empty: an empty
	// HMAC key would let anyone forge a login token. Default() generates
	// a fresh random secret, which the config write-back persists.
	JWTSecret   string        `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer   string        `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience string        `mapstructure:"jwt_audience" yaml:"jwt_audience"`
	TokenTTL    time.Duration `mapstructure:"token_ttl" yaml:"token_ttl"`

	// Channels is a fixed ordered channel set; it is configuration, never
	// mutated at runtime. DefaultChannel must be one of Channels.
	Channels       []string `mapstructure:"channels" yaml:"channels"`
	DefaultChannel string   `mapstructure:"default_channel" yaml:"default_channel"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		DatabasePath:      "rwci.db",
		LogLevel:          "info",
		JWTSecret:         newSecret(),
		JWTIssuer:         "rwci-server",
		JWTAudience:       "rwci-client",
		TokenTTL:          24 * time.Hour,
		Channels:          []string{"general", "test", "test2", "spam"},
		DefaultChannel:    "general",
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must not be empty")
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("channels must not be empty")
	}
	for _, ch := range c.Channels {
		if ch == c.DefaultChannel {
			return nil
		}
	}
	return fmt.Errorf("default_channel %q is not in channels", c.DefaultChannel)
}

func newSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// Validation will reject the empty secret rather than let the
		// server run with a forgeable key.
		return ""
	}
	return hex.EncodeToString(buf)
}
