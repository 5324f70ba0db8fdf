// GET  /api/v1/health              liveness (public)
// POST /api/v1/accounts/register   register (public)
// POST /api/v1/accounts/login      login (public)
// POST /api/v1/accounts/logout     logout (auth)
// GET  /api/v1/routes              derived revision routes (auth)
// GET  <revision template>         single revision view (derived)
// GET  <version-history template>  revision overview (derived)

package api

import (
	"fmt"

	accountAPI "revhistory/internal/app/server/api/http/account"
	healthAPI "revhistory/internal/app/server/api/http/health"
	"revhistory/internal/app/server/api/http/middleware"
	"revhistory/internal/app/server/api/http/middleware/auth"
	"revhistory/internal/app/server/api/http/middleware/logger"
	revisionAPI "revhistory/internal/app/server/api/http/revision"
	routesAPI "revhistory/internal/app/server/api/http/routes"
	"revhistory/internal/app/server/config"
	"revhistory/internal/datefmt"
	"revhistory/internal/domain/access"
	"revhistory/internal/domain/account"
	"revhistory/internal/domain/entity"
	"revhistory/internal/domain/revision"
	"revhistory/internal/domain/session"
	"revhistory/internal/infrastructure/storage"
	"revhistory/internal/link"
	"revhistory/internal/routing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health   *healthAPI.Handler
	Account  *accountAPI.Handler
	Routes   *routesAPI.Handler
	Revision *revisionAPI.Handler
}

// New builds the router: the static API through huma and the derived revision
// routes directly on chi, since their path parameters come from configuration.
func New(cfg *config.Config, store *storage.Storage, registry *entity.Registry, log *slog.Logger) (*chi.Mux, error) {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("Revision History API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	routes := routing.NewDeriver(log).DeriveAll(registry)

	h, mw, err := handlers(cfg, store, registry, routes, log)
	if err != nil {
		return nil, err
	}
	h.Health.SetupRoutes(API)
	h.Account.SetupRoutes(API)
	h.Routes.SetupRoutes(API)

	mux.Group(func(r chi.Router) {
		r.Use(mw.logger.Handler, mw.auth.Viewer)
		h.Revision.Mount(r, routes)
	})

	log.Info("router built", "revision_routes", len(routes))
	return mux, nil
}

type sharedMiddleware struct {
	auth   *auth.Auth
	logger *logger.Logger
}

func handlers(
	cfg *config.Config,
	store *storage.Storage,
	registry *entity.Registry,
	routes []routing.Route,
	log *slog.Logger,
) (*Handlers, sharedMiddleware, error) {
	dates, err := datefmt.New(cfg.Date.ShortFormat, cfg.Date.Timezone)
	if err != nil {
		return nil, sharedMiddleware{}, fmt.Errorf("date formatter: %w", err)
	}

	sessionService := session.NewService(store.Sessions, session.DefaultTTL, log)
	accountService := account.NewService(store.Accounts, account.NewPasswordValidator(account.StrictPasswordPolicy), log)
	accessService := access.NewService(store.Permissions, cfg.Access.Superusers, log)

	authMW := auth.New(sessionService, accountService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(store, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	accountHandler := accountAPI.NewHandler(accountService, sessionService, log, public, middlewares.GetAllAndClear())

	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	routesHandler := routesAPI.NewHandler(routes, log, middlewares.GetAllAndClear())

	lister := revision.NewService(
		store.Records,
		registry,
		accessService,
		dates,
		link.NewResolver(cfg.Server.BaseURL),
		log,
	)
	revisionHandler := revisionAPI.NewHandler(lister, registry, store.Records, accessService, log)

	return &Handlers{
			Health:   healthHandler,
			Account:  accountHandler,
			Routes:   routesHandler,
			Revision: revisionHandler,
		}, sharedMiddleware{
			auth:   authMW,
			logger: loggerMW,
		}, nil
}
