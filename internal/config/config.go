package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyBaseURL       = "api.base_url"
	KeyTimeout       = "api.timeout"
	KeySessionPath   = "session.path"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyLogFile       = "logging.file"
	DefaultTimeout   = 30 * time.Second
	DefaultSessionDB = "~/.local/share/purse/session.db"
)

// Config is the resolved client configuration.
type Config struct {
	Logging Logging
	Session Session
	API     API
}

// API configures the remote REST endpoint.
type API struct {
	BaseURL string
	Timeout time.Duration
}

// Session configures where the credential is persisted.
type Session struct {
	Path string
}

// Logging configures the slog handler.
type Logging struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeySessionPath, DefaultSessionDB)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load reads and validates configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		API: API{
			BaseURL: v.GetString(KeyBaseURL),
			Timeout: v.GetDuration(KeyTimeout),
		},
		Session: Session{
			Path: ExpandPath(v.GetString(KeySessionPath)),
		},
		Logging: Logging{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
			File:   ExpandPath(v.GetString(KeyLogFile)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields Load cannot default.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: %s is required", common.ErrMissingConfig, KeyBaseURL)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyTimeout)
	}
	if c.Session.Path == "" {
		return fmt.Errorf("%w: %s is required", common.ErrMissingConfig, KeySessionPath)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
