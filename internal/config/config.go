// Package config handles TOML-based configuration with dotenv/environment
// overrides. Precedence: defaults < config file < environment < CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Cookies           string `toml:"cookies"`
	WriteSubtitles    bool   `toml:"write_subtitles"`
	WriteAutoCaptions bool   `toml:"write_auto_captions"`
	UserAgent         string `toml:"user_agent"`
	Debug             bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "streamgrab"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "streamgrab"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, then applies environment overrides. A missing
// config file is not an error.
func Load() (*Config, error) {
	// Pick up a local .env if one exists; a missing file is fine.
	_ = godotenv.Load()

	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		cfg.applyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are safe to use.
func (c *Config) Validate() error {
	// A user agent ends up in a request header verbatim.
	if strings.ContainsAny(c.UserAgent, "\r\n") {
		return fmt.Errorf("user_agent must not contain line breaks")
	}
	return nil
}

// applyEnv overrides file values with STREAMGRAB_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("STREAMGRAB_COOKIES"); v != "" {
		c.Cookies = v
	}
	if v := os.Getenv("STREAMGRAB_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Debug = debug
		}
	}
}

// ExpandCookiesPath resolves ~ in the cookies file path.
func (c *Config) ExpandCookiesPath() (string, error) {
	path := c.Cookies
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
