package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/dexsearch/internal/catalog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. DEXSEARCH_API_URL
const EnvPrefix = "DEXSEARCH"

// Config holds the runtime settings shared by all commands
type Config struct {
	APIURL         string
	ListLimit      int
	Timeout        time.Duration
	MaxConcurrency int
	Lang           string
	LogLevel       string
	SessionTTL     time.Duration
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api-url", catalog.DefaultBaseURL)
	v.SetDefault("list-limit", catalog.DefaultListLimit)
	v.SetDefault("timeout", "30s")
	v.SetDefault("max-concurrency", 0)
	v.SetDefault("lang", "en")
	v.SetDefault("log-level", "info")
	v.SetDefault("session-ttl", "30m")
}

// AddFlags defines the persistent flags backing the config keys
func AddFlags(fs *pflag.FlagSet) {
	fs.String("api-url", catalog.DefaultBaseURL, "Base URL of the pokemon resource")
	fs.Int("list-limit", catalog.DefaultListLimit, "Number of names requested from the listing endpoint")
	fs.Duration("timeout", 30*time.Second, "Timeout of a single API request")
	fs.Int("max-concurrency", 0, "Maximum concurrent detail fetches per search (0 for unbounded)")
	fs.String("lang", "en", "Interface language (en, pl)")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.Duration("session-ttl", 30*time.Minute, "Idle time after which a browser session is discarded")
	fs.String("config", "", "Path to a YAML config file (default ./dexsearch.yaml if present)")
}

// Load resolves flags, DEXSEARCH_* environment variables, the config file and
// defaults, in that order of precedence.
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		// No config type: viper then only tries dexsearch.<ext>, never the
		// bare dexsearch binary built into the same directory.
		v.SetConfigName("dexsearch")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		APIURL:         v.GetString("api-url"),
		ListLimit:      v.GetInt("list-limit"),
		Timeout:        v.GetDuration("timeout"),
		MaxConcurrency: v.GetInt("max-concurrency"),
		Lang:           v.GetString("lang"),
		LogLevel:       v.GetString("log-level"),
		SessionTTL:     v.GetDuration("session-ttl"),
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout: %s", v.GetString("timeout"))
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("invalid session-ttl: %s", v.GetString("session-ttl"))
	}
	if cfg.MaxConcurrency < 0 {
		return nil, fmt.Errorf("invalid max-concurrency: %d", cfg.MaxConcurrency)
	}

	return cfg, nil
}

// ParseLevel maps a level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(level)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

// NewLogger creates the text logger used by every command
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// NewClient builds the catalog client described by the config
func (c *Config) NewClient() *catalog.Client {
	return catalog.NewClient(c.APIURL, c.ListLimit, c.Timeout)
}
