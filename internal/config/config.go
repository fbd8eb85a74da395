// Package config loads the shopcheck configuration from an optional YAML file
// and SHOPCHECK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding configuration keys,
// e.g. SHOPCHECK_FO_URL for fo.url.
const EnvPrefix = "SHOPCHECK"

// FileName is the configuration file name without extension.
const FileName = "shopcheck"

// Config holds all settings of a test run.
type Config struct {
	FO struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"fo"`

	BO struct {
		URL      string `mapstructure:"url"`
		Email    string `mapstructure:"email"`
		Password string `mapstructure:"password"`
	} `mapstructure:"bo"`

	Browser struct {
		// Name is one of chromium, firefox or webkit.
		Name     string        `mapstructure:"name"`
		Headless bool          `mapstructure:"headless"`
		SlowMo   time.Duration `mapstructure:"slow_mo"`
		// Install downloads the playwright driver and browser before launching.
		Install bool   `mapstructure:"install"`
		Locale  string `mapstructure:"locale"`
	} `mapstructure:"browser"`

	// Timeout is the default timeout of a single browser action.
	Timeout time.Duration `mapstructure:"timeout"`
	// StepTimeout bounds a whole step.
	StepTimeout time.Duration `mapstructure:"step_timeout"`

	Shop struct {
		// RootPath is the installation directory of the shop, used to check module directories.
		RootPath string `mapstructure:"root_path"`
	} `mapstructure:"shop"`

	Artifacts struct {
		Screenshots      string `mapstructure:"screenshots"`
		Downloads        string `mapstructure:"downloads"`
		CaptureOnFailure bool   `mapstructure:"capture_on_failure"`
	} `mapstructure:"artifacts"`

	Runner struct {
		Parallelism int `mapstructure:"parallelism"`
	} `mapstructure:"runner"`

	Journal struct {
		Capacity uint64 `mapstructure:"capacity"`
	} `mapstructure:"journal"`
}

// Browsers lists the supported browser names.
var Browsers = []string{"chromium", "firefox", "webkit"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fo.url", "http://localhost:8001/")
	v.SetDefault("bo.url", "http://localhost:8001/admin-dev/")
	v.SetDefault("bo.email", "demo@prestashop.com")
	v.SetDefault("bo.password", "Correct Horse Battery Staple")
	v.SetDefault("browser.name", "chromium")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.slow_mo", 0)
	v.SetDefault("browser.install", false)
	v.SetDefault("browser.locale", "en-GB")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("step_timeout", 60*time.Second)
	v.SetDefault("shop.root_path", ".")
	v.SetDefault("artifacts.screenshots", "./test-results/screenshots")
	v.SetDefault("artifacts.downloads", ".")
	v.SetDefault("artifacts.capture_on_failure", true)
	v.SetDefault("runner.parallelism", 1)
	v.SetDefault("journal.capacity", 1000)
}

// Load reads the configuration. If path is not empty, shopcheck.yaml is read
// from that directory when present. Environment variables take precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)
		v.AddConfigPath(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	var errs []error
	for name, raw := range map[string]string{"fo.url": c.FO.URL, "bo.url": c.BO.URL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: invalid URL %q", name, raw))
		}
	}
	if !slices.Contains(Browsers, c.Browser.Name) {
		errs = append(errs, fmt.Errorf("browser.name: unsupported browser %q", c.Browser.Name))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout: must be positive"))
	}
	if c.StepTimeout < c.Timeout {
		errs = append(errs, errors.New("step_timeout: must not be shorter than timeout"))
	}
	if c.Journal.Capacity == 0 {
		errs = append(errs, errors.New("journal.capacity: must be greater than 0"))
	}
	return errors.Join(errs...)
}

// RootPath returns the absolute shop installation path.
func (c *Config) RootPath() string {
	abs, err := filepath.Abs(c.Shop.RootPath)
	if err != nil {
		return c.Shop.RootPath
	}
	return abs
}

// ModulePath returns the directory of an installed module.
func (c *Config) ModulePath(tag string) string {
	return filepath.Join(c.RootPath(), "modules", tag)
}

// DownloadPath returns the path of a downloaded artifact.
func (c *Config) DownloadPath(name string) string {
	return filepath.Join(c.Artifacts.Downloads, name)
}
