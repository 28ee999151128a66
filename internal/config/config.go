// Package config loads CGI-Clinics client configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

// ErrMissingToken is returned when no v2 API token is configured and none can
// be obtained interactively.
var ErrMissingToken = errors.New("CGI_CLINICS_API_TOKEN is required")

const (
	// DefaultBaseURL is the root of the current (v2) CGI-Clinics API.
	DefaultBaseURL = "https://v2.cgiclinics.eu/api/1.0"
	// DefaultLegacyURL is the root of the legacy CGI-Clinics API.
	DefaultLegacyURL = "https://api.cgiclinics.eu"
)

// Config carries everything needed to construct API clients. Credentials are
// held here and passed to clients explicitly; library code never reads the
// environment at request time.
type Config struct {
	Env            string `mapstructure:"ENV"`
	APIToken       string `mapstructure:"CGI_CLINICS_API_TOKEN"`
	LegacyUser     string `mapstructure:"CGI_USER"`
	LegacyToken    string `mapstructure:"CGI_TOKEN"`
	BaseURL        string `mapstructure:"CGI_CLINICS_BASE_URL"`
	LegacyURL      string `mapstructure:"CGI_CLINICS_LEGACY_URL"`
	TimeoutSeconds int    `mapstructure:"CGI_CLINICS_TIMEOUT_SECONDS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "production")
	v.SetDefault("CGI_CLINICS_BASE_URL", DefaultBaseURL)
	v.SetDefault("CGI_CLINICS_LEGACY_URL", DefaultLegacyURL)
	v.SetDefault("CGI_CLINICS_TIMEOUT_SECONDS", 20)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("CGI_CLINICS_API_TOKEN")
	v.BindEnv("CGI_USER")
	v.BindEnv("CGI_TOKEN")
	v.BindEnv("CGI_CLINICS_BASE_URL")
	v.BindEnv("CGI_CLINICS_LEGACY_URL")
	v.BindEnv("CGI_CLINICS_TIMEOUT_SECONDS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// IsDev returns true when running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Timeout returns the configured HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolveAPIToken returns the v2 API token, prompting on the terminal when it
// is unset and stdin is a TTY. A token obtained interactively is kept in the
// process environment so subsequent Load calls in the same run see it.
func (c *Config) ResolveAPIToken() (string, error) {
	if c.APIToken != "" {
		return c.APIToken, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", ErrMissingToken
	}
	fmt.Fprint(os.Stderr, "CGI-Clinics API token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrMissingToken
	}
	c.APIToken = token
	os.Setenv("CGI_CLINICS_API_TOKEN", token)
	return token, nil
}

// LegacyCredential returns the combined user/token credential the legacy API
// expects in its access_token header.
func (c *Config) LegacyCredential() (string, error) {
	if c.LegacyUser == "" || c.LegacyToken == "" {
		return "", fmt.Errorf("CGI_USER and CGI_TOKEN are required for the legacy API")
	}
	return c.LegacyUser + " " + c.LegacyToken, nil
}
