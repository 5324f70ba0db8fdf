// Package server wires configuration, storage and the HTTP router into a
// runnable application.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"revhistory/internal/app/server/api"
	"revhistory/internal/app/server/config"
	"revhistory/internal/domain/access"
	"revhistory/internal/domain/account"
	"revhistory/internal/domain/entity"
	"revhistory/internal/infrastructure/storage"

	"golang.org/x/exp/slog"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg      *config.Config
	log      *slog.Logger
	store    *storage.Storage
	registry *entity.Registry
}

// LoadRegistry reads the configured entity types file.
func LoadRegistry(cfg *config.Config) (*entity.Registry, error) {
	entries, err := config.LoadEntityTypes(cfg.EntityTypes.File)
	if err != nil {
		return nil, err
	}
	registry, err := registryFromConfig(entries)
	if err != nil {
		return nil, fmt.Errorf("entity types %s: %w", cfg.EntityTypes.File, err)
	}
	return registry, nil
}

func registryFromConfig(entries []config.EntityType) (*entity.Registry, error) {
	types := make([]entity.Type, 0, len(entries))
	for _, e := range entries {
		types = append(types, entity.Type{
			ID:      e.ID,
			Label:   e.Label,
			Bundles: e.Bundles,
			Capabilities: entity.Capabilities{
				Ownership:   e.Ownership,
				RevisionLog: e.RevisionLog,
				Bundles:     len(e.Bundles) > 0,
			},
			Links: e.Links,
		})
	}
	return entity.NewRegistry(types...)
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	registry, err := LoadRegistry(cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg.DB.DatabaseURI, log)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		log:      log,
		store:    store,
		registry: registry,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	router, err := api.New(a.cfg, a.store, a.registry, a.log)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", "address", srv.Addr, "env", a.cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) Accounts() *account.Service {
	return account.NewService(a.store.Accounts, account.NewPasswordValidator(account.StrictPasswordPolicy), a.log)
}

func (a *App) Access() *access.Service {
	return access.NewService(a.store.Permissions, a.cfg.Access.Superusers, a.log)
}

func (a *App) Close() error {
	return a.store.Close()
}
