package main

import (
	"context"
	"errors"
	"time"

	"github.com/Veraticus/coinpurse/internal/api"
	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/Veraticus/coinpurse/internal/config"
	"github.com/Veraticus/coinpurse/internal/coordinator"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/session"
	"github.com/Veraticus/coinpurse/internal/store"
	"github.com/spf13/viper"
)

// app bundles what every command needs.
type app struct {
	sessions *session.SQLiteStore
	holder   *session.Holder
	client   *api.Client
	coord    *coordinator.Coordinator
	cfg      *config.Config
}

// initApp loads config, restores the saved session, and wires the API client.
func initApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	sessions, err := session.OpenSQLite(ctx, cfg.Session.Path)
	if err != nil {
		return nil, err
	}

	saved, err := sessions.Load(ctx)
	if err != nil && !errors.Is(err, common.ErrNoSession) {
		_ = sessions.Close()
		return nil, err
	}
	holder := session.NewHolder(saved)

	client, err := api.NewClient(api.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, holder)
	if err != nil {
		_ = sessions.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		sessions: sessions,
		holder:   holder,
		client:   client,
		coord:    coordinator.New(client, store.New()),
	}, nil
}

func (a *app) Close() error {
	return a.sessions.Close()
}

// saveLogin persists and activates the credential the API returned.
func (a *app) saveLogin(ctx context.Context, res model.AuthResult) error {
	s := session.Session{Token: res.Token, User: res.User, SavedAt: time.Now()}
	if err := a.sessions.Save(ctx, s); err != nil {
		return err
	}
	a.holder.Set(s)
	return nil
}

func (a *app) loggedIn() bool {
	_, ok := a.holder.BearerToken()
	return ok
}

func (a *app) requireLogin() error {
	if !a.loggedIn() {
		return common.NewUserError("Not logged in. Run 'purse login' first.", common.ErrNoSession)
	}
	return nil
}

// withApp runs fn with an initialized app and closes it afterwards.
func withApp(ctx context.Context, needLogin bool, fn func(*app) error) error {
	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if needLogin {
		if err := a.requireLogin(); err != nil {
			return err
		}
	}
	return fn(a)
}
