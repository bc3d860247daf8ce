package tui

import (
	"context"
	"time"

	"github.com/Veraticus/coinpurse/internal/coordinator"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/recovery"
	"github.com/Veraticus/coinpurse/internal/tui/themes"
)

// Authenticator performs the login call.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (model.AuthResult, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Auth        Authenticator
	Recovery    recovery.Recoverer
	Coordinator *coordinator.Coordinator
	// OnLogin persists a successful login before the app moves on.
	OnLogin func(model.AuthResult) error
	Now     func() time.Time
	Width   int
	Height  int
	// LoggedIn starts the app on the transactions screen.
	LoggedIn bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Now:    time.Now,
		Width:  100,
		Height: 30,
	}
}

// WithCoordinator sets the data source of the list screens.
func WithCoordinator(c *coordinator.Coordinator) Option {
	return func(cfg *Config) {
		cfg.Coordinator = c
	}
}

// WithAuth sets the login and recovery endpoints.
func WithAuth(auth Authenticator, rec recovery.Recoverer) Option {
	return func(cfg *Config) {
		cfg.Auth = auth
		cfg.Recovery = rec
	}
}

// WithLoginHook sets the callback run after a successful login.
func WithLoginHook(fn func(model.AuthResult) error) Option {
	return func(cfg *Config) {
		cfg.OnLogin = fn
	}
}

// WithLoggedIn skips the login screen.
func WithLoggedIn(loggedIn bool) Option {
	return func(cfg *Config) {
		cfg.LoggedIn = loggedIn
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(cfg *Config) {
		cfg.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(cfg *Config) {
		cfg.Width = width
		cfg.Height = height
	}
}

// WithClock overrides the time source used by the time window filter.
func WithClock(now func() time.Time) Option {
	return func(cfg *Config) {
		cfg.Now = now
	}
}
