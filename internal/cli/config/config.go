package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/calumari/jinline"
	"github.com/calumari/jinline/fetch"
	"github.com/calumari/jinline/rewrite"
)

// Config represents the jinline configuration
type Config struct {
	TargetKey  string        `mapstructure:"target_key"`
	Output     string        `mapstructure:"output"`
	ExcerptLen int           `mapstructure:"excerpt_len"`
	Verbose    bool          `mapstructure:"verbose"`
	NoColor    bool          `mapstructure:"no_color"`
	Browser    BrowserConfig `mapstructure:"browser"`
	Rewrite    RewriteConfig `mapstructure:"rewrite"`
}

// BrowserConfig represents fetcher configuration
type BrowserConfig struct {
	Driver      string        `mapstructure:"driver"`
	Headless    bool          `mapstructure:"headless"`
	Install     bool          `mapstructure:"install"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Attempts    int           `mapstructure:"attempts"`
	ReloadDelay time.Duration `mapstructure:"reload_delay"`
	Selector    string        `mapstructure:"selector"`
	BlockMarker string        `mapstructure:"block_marker"`
	MouseMoves  bool          `mapstructure:"mouse_moves"`
}

// RewriteConfig represents URL rewriting configuration
type RewriteConfig struct {
	Prefix      string   `mapstructure:"prefix"`
	Replacement []string `mapstructure:"replacement"`
}

// EnvPrefix prefixes every environment override, e.g. JINLINE_BROWSER_DRIVER.
const EnvPrefix = "JINLINE"

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	fc := fetch.DefaultConfig()
	v.SetDefault("target_key", jinline.DefaultKey)
	v.SetDefault("output", "")
	v.SetDefault("excerpt_len", jinline.DefaultExcerptLen)
	v.SetDefault("verbose", false)
	v.SetDefault("no_color", false)
	v.SetDefault("browser.driver", fc.Driver)
	v.SetDefault("browser.headless", fc.Headless)
	v.SetDefault("browser.install", fc.Install)
	v.SetDefault("browser.timeout", fc.Timeout)
	v.SetDefault("browser.attempts", fc.Attempts)
	v.SetDefault("browser.reload_delay", fc.ReloadDelay)
	v.SetDefault("browser.selector", fc.Selector)
	v.SetDefault("browser.block_marker", fc.BlockMarker)
	v.SetDefault("browser.mouse_moves", fc.MouseMoves)
	v.SetDefault("rewrite.prefix", rewrite.Default.Prefix)
	v.SetDefault("rewrite.replacement", rewrite.Default.Replacement)
}

// Load loads the configuration from v. When no config file was set
// explicitly, jinline.yml or jinline.yaml in the working directory is read if
// present. Environment variables override file values.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("jinline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Fetch returns the fetcher settings.
func (c *Config) Fetch() fetch.Config {
	return fetch.Config{
		Driver:      c.Browser.Driver,
		Headless:    c.Browser.Headless,
		Install:     c.Browser.Install,
		Timeout:     c.Browser.Timeout,
		Attempts:    c.Browser.Attempts,
		ReloadDelay: c.Browser.ReloadDelay,
		Selector:    c.Browser.Selector,
		BlockMarker: c.Browser.BlockMarker,
		MouseMoves:  c.Browser.MouseMoves,
	}
}

// Rewriter returns the URL rewriter.
func (c *Config) Rewriter() rewrite.Rewriter {
	return rewrite.Rewriter{Prefix: c.Rewrite.Prefix, Replacement: c.Rewrite.Replacement}
}

// InlineOptions returns the Inliner options implied by the configuration.
func (c *Config) InlineOptions() jinline.Option {
	return jinline.Group(jinline.WithKey(c.TargetKey), jinline.WithExcerptLen(c.ExcerptLen))
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.TargetKey == "" {
		return errors.New("target_key must not be empty")
	}
	if cfg.ExcerptLen < 0 {
		return fmt.Errorf("excerpt_len must not be negative, got: %d", cfg.ExcerptLen)
	}
	if cfg.Rewrite.Prefix == "" {
		return errors.New("rewrite.prefix must not be empty")
	}
	if len(cfg.Rewrite.Replacement) == 0 {
		return errors.New("rewrite.replacement must not be empty")
	}
	if err := cfg.Fetch().Validate(); err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}
