package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/revisahub/revisahub/internal/api/rest"
	"github.com/revisahub/revisahub/internal/bootstrap"
	"github.com/revisahub/revisahub/internal/cli"
	"github.com/revisahub/revisahub/internal/config"
	"github.com/revisahub/revisahub/internal/profile"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// environment holds what every command talks to: the backend and the profile store.
type environment struct {
	cfg     *config.Config
	client  *rest.Client
	store   profile.Store
	closers []func() error
}

func newEnvironment() (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loadConfig() > %w", err)
	}

	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), uint(cfg.API.RetryAttempts))
	env := &environment{
		cfg:     cfg,
		client:  client,
		closers: []func() error{client.Close},
	}

	switch cfg.Storage.Driver {
	case "sqlite":
		store, err := profile.NewSQLiteStore(cfg.Storage.SQLitePath(), cfg.Storage.ProfileNamespace)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("profile.NewSQLiteStore() > %w", err)
		}
		env.store = store
		env.closers = append(env.closers, store.Close)
	default:
		env.store = profile.NewFileStore(cfg.Storage.StateDirectory, cfg.Storage.ProfileNamespace)
	}
	return env, nil
}

func (env *environment) close() error {
	var errs []error
	for i := len(env.closers) - 1; i >= 0; i-- {
		errs = append(errs, env.closers[i]())
	}
	return errors.Join(errs...)
}

func (env *environment) renderer() (cli.Renderer, error) {
	return cli.NewRenderer(env.cfg.Display.Markdown, env.cfg.Display.WordWrap)
}

// run executes fn and releases the backend client and the store afterwards, also on interrupt.
func (env *environment) run(ctx context.Context, fn func(ctx context.Context) error) error {
	app := bootstrap.New()
	app.AddShutdownHook(func(context.Context) error {
		return env.close()
	})
	return app.Run(ctx, fn)
}
