package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alexanderramin/archivio/internal/domain"
)

// EnvPrefix namespaces environment overrides, e.g. ARCHIVIO_DB_PATH.
const EnvPrefix = "ARCHIVIO"

// Config holds application configuration.
type Config struct {
	DBPath        string        `mapstructure:"db_path"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
	ScanOnStart   bool          `mapstructure:"scan_on_start"`
	SearchLimit   int           `mapstructure:"search_limit"`
	WatchInterval time.Duration `mapstructure:"watch_interval"`
	Defaults      Defaults      `mapstructure:"defaults"`
	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// Defaults are the literal thresholds applied when no deadline config row
// matches a document.
type Defaults struct {
	GeneralDays int `mapstructure:"general_days"`
	InvoiceDays int `mapstructure:"invoice_days"`
}

func (d Defaults) Thresholds() domain.ThresholdDefaults {
	return domain.ThresholdDefaults{General: d.GeneralDays, Invoice: d.InvoiceDays}
}

// HomeDir returns ~/.archivio.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".archivio"), nil
}

// Load reads configuration from, in increasing priority: built-in
// defaults, the YAML config file, a .env file in the working directory,
// and ARCHIVIO_* environment variables. An explicit configFile must exist;
// the default location is optional.
func Load(configFile string) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	base, err := HomeDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, base)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(base)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, base string) {
	v.SetDefault("db_path", filepath.Join(base, "archivio.db"))
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("scan_on_start", true)
	v.SetDefault("search_limit", 50)
	v.SetDefault("watch_interval", "1h")
	v.SetDefault("defaults.general_days", domain.DefaultGeneralDays)
	v.SetDefault("defaults.invoice_days", domain.DefaultInvoiceDays)
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return domain.Invalidf("config db_path must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return domain.Invalidf("config log_format must be text or json, got %q", c.LogFormat)
	}
	if c.SearchLimit <= 0 {
		return domain.Invalidf("config search_limit must be positive, got %d", c.SearchLimit)
	}
	if c.WatchInterval <= 0 {
		return domain.Invalidf("config watch_interval must be positive, got %s", c.WatchInterval)
	}
	if c.Defaults.GeneralDays < 0 || c.Defaults.InvoiceDays < 0 {
		return domain.Invalidf("config defaults must be >= 0")
	}
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, domain.Invalidf("config log_level %q: expected debug, info, warn or error", s)
	}
}

// NewLogger builds the process logger from the configured level and format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
