package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/webview2/errors"
	"github.com/wippyai/webview2/webview2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WEBVIEW2_"

// Runtime names.
const (
	RuntimeHeadless = "headless"
	RuntimeNative   = "native"
)

// Config selects and configures the browser runtime.
type Config struct {
	Runtime                    string        `yaml:"runtime" env:"RUNTIME"`
	LoaderPath                 string        `yaml:"loader_path" env:"LOADER_PATH"`
	BrowserFolder              string        `yaml:"browser_folder" env:"BROWSER_FOLDER"`
	UserDataFolder             string        `yaml:"user_data_folder" env:"USER_DATA_FOLDER"`
	AdditionalBrowserArguments string        `yaml:"additional_browser_arguments" env:"ADDITIONAL_BROWSER_ARGUMENTS"`
	Language                   string        `yaml:"language" env:"LANGUAGE"`
	TargetCompatibleVersion    string        `yaml:"target_compatible_version" env:"TARGET_COMPATIBLE_VERSION"`
	AllowSSO                   bool          `yaml:"allow_sso" env:"ALLOW_SSO"`
	Timeout                    time.Duration `yaml:"timeout" env:"TIMEOUT"`
	LogLevel                   string        `yaml:"log_level" env:"LOG_LEVEL"`
	Debug                      bool          `yaml:"debug" env:"DEBUG"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Runtime:  RuntimeHeadless,
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
}

// Load reads the YAML file at path, if path is not empty, over the
// defaults, then applies WEBVIEW2_* environment overrides and validates the
// result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read config file")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config file")
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the runtime name, language tag, log level and timeout.
func (c *Config) Validate() error {
	switch c.Runtime {
	case RuntimeHeadless, RuntimeNative:
	default:
		return errors.InvalidInput(errors.PhaseConfig, "unknown runtime "+c.Runtime)
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "language "+c.Language)
		}
	}
	if _, err := c.Level(); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level "+c.LogLevel)
	}
	if c.Timeout <= 0 {
		return errors.InvalidInput(errors.PhaseConfig, "timeout must be positive")
	}
	return nil
}

// Level returns the log level; Debug forces debug.
func (c *Config) Level() (zapcore.Level, error) {
	if c.Debug {
		return zapcore.DebugLevel, nil
	}
	return zapcore.ParseLevel(c.LogLevel)
}

// LanguageTag returns the configured language, or und when unset.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

// EnvironmentOptions returns the options passed on environment creation, or
// nil when none differ from the runtime defaults.
func (c *Config) EnvironmentOptions() *webview2.EnvironmentOptions {
	opts := webview2.EnvironmentOptions{
		AdditionalBrowserArguments:             c.AdditionalBrowserArguments,
		Language:                               c.Language,
		TargetCompatibleBrowserVersion:         c.TargetCompatibleVersion,
		AllowSingleSignOnUsingOSPrimaryAccount: c.AllowSSO,
	}
	if opts == (webview2.EnvironmentOptions{}) {
		return nil
	}
	return &opts
}
