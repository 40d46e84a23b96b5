// Package config loads beplus settings from config.toml, BEPLUS_* environment
// variables and built-in defaults, in increasing order of precedence:
// defaults < file < environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	appName    = "beplus"
	configName = "config"
	configType = "toml"
	envPrefix  = "BEPLUS"
)

// Credential backends.
const (
	BackendChain = "chain"
	BackendFile  = "file"
	BackendPass  = "pass"
)

// Config is the effective application configuration.
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Credential CredentialConfig `mapstructure:"credential"`
	Store      StoreConfig      `mapstructure:"store"`
	Rockie     RockieConfig     `mapstructure:"rockie"`
	Log        LogConfig        `mapstructure:"log"`
}

// APIConfig holds the remote endpoints.
type APIConfig struct {
	ActivitiesURL string `mapstructure:"activities_url"`
	RockieURL     string `mapstructure:"rockie_url"`
	PageSize      int    `mapstructure:"page_size"`
}

// HTTPConfig configures the outbound HTTP client.
type HTTPConfig struct {
	// Timeout bounds a single request. Zero means no client-side timeout.
	Timeout time.Duration `mapstructure:"timeout"`
}

// CredentialConfig selects where the bearer token is read from.
type CredentialConfig struct {
	Key     string `mapstructure:"key"`
	Backend string `mapstructure:"backend"` // chain, file or pass
	Dir     string `mapstructure:"dir"`     // root for the file backend
}

// StoreConfig locates the diagnostic call log database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// RockieConfig holds defaults for the Rockie profile.
type RockieConfig struct {
	DefaultName string `mapstructure:"default_name"`
}

// LogConfig configures process logging.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	File  string `mapstructure:"file"`
}

// SlogLevel parses Level, falling back to info.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// DefaultConfig returns the built-in defaults. Path settings are left empty
// and resolved against the XDG directories by Load.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			ActivitiesURL: "https://m423uvy6wj.execute-api.us-east-1.amazonaws.com/dev/activities",
			RockieURL:     "https://jmkaqyjkuk.execute-api.us-east-1.amazonaws.com/dev/rockie",
			PageSize:      10,
		},
		Credential: CredentialConfig{
			Key:     "authToken",
			Backend: BackendChain,
		},
		Rockie: RockieConfig{
			DefaultName: "FireRockie2",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error
	for key, raw := range map[string]string{
		"api.activities_url": c.API.ActivitiesURL,
		"api.rockie_url":     c.API.RockieURL,
	} {
		if err := validateURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	if c.API.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("api.page_size must be positive, got %d", c.API.PageSize))
	}
	if c.HTTP.Timeout < 0 {
		errs = append(errs, fmt.Errorf("http.timeout must not be negative, got %s", c.HTTP.Timeout))
	}
	if strings.TrimSpace(c.Credential.Key) == "" {
		errs = append(errs, errors.New("credential.key is required"))
	}
	switch c.Credential.Backend {
	case BackendChain, BackendFile, BackendPass:
	default:
		errs = append(errs, fmt.Errorf("credential.backend: unknown backend %q", c.Credential.Backend))
	}
	if strings.TrimSpace(c.Rockie.DefaultName) == "" {
		errs = append(errs, errors.New("rockie.default_name is required"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// Load reads the configuration. An empty path searches the default config
// directory and tolerates a missing file; an explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType(configType)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(configName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.resolvePaths(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("api.activities_url", d.API.ActivitiesURL)
	v.SetDefault("api.rockie_url", d.API.RockieURL)
	v.SetDefault("api.page_size", d.API.PageSize)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("credential.key", d.Credential.Key)
	v.SetDefault("credential.backend", d.Credential.Backend)
	v.SetDefault("credential.dir", d.Credential.Dir)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("rockie.default_name", d.Rockie.DefaultName)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

func (c *Config) resolvePaths() error {
	if c.Credential.Dir != "" && c.Store.Path != "" && c.Log.File != "" {
		return nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return err
	}
	if c.Credential.Dir == "" {
		c.Credential.Dir = filepath.Join(dataDir, "secrets")
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(dataDir, appName+".db")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(dataDir, appName+".log")
	}
	return nil
}

// Dir returns $XDG_CONFIG_HOME/beplus, defaulting to ~/.config/beplus.
func Dir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns $XDG_DATA_HOME/beplus, defaulting to ~/.local/share/beplus.
func DataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, appName), nil
}

// DefaultPath is the config file Load reads when no path is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}
