// Package app wires the gateway's components and builds its HTTP router.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"compliance-mcp/internal/api"
	"compliance-mcp/internal/config"
	"compliance-mcp/internal/mapping"
	"compliance-mcp/internal/middleware"
	"compliance-mcp/internal/store"
	"compliance-mcp/internal/tools"
)

// Deps holds the external dependencies that main() must provide: the config,
// an open database handle for the mapped data store, and the logger.
type Deps struct {
	Cfg    *config.Config
	DB     *sql.DB
	Logger *slog.Logger
}

// App holds the fully-wired application.
type App struct {
	Mappings *mapping.Store
	Registry *tools.Registry
	deps     Deps
}

// New loads the entity mapping and wires accessor, tool service, and
// registry. A missing mapping file yields a running gateway with zero
// configured entities.
func New(deps Deps) (*App, error) {
	mappings, err := mapping.Load(deps.Cfg.MappingPath)
	if err != nil {
		return nil, fmt.Errorf("load mapping: %w", err)
	}
	if configured := mappings.ListConfigured(); len(configured) > 0 {
		deps.Logger.Info("entity mapping loaded",
			"path", deps.Cfg.MappingPath, "entities", configured)
	} else {
		deps.Logger.Warn("no entities configured", "path", deps.Cfg.MappingPath)
	}

	accessor := store.NewAccessor(deps.DB, mappings, deps.Logger.With("component", "accessor"))
	svc := tools.NewService(mappings, accessor, deps.Logger.With("component", "tools"))
	registry := tools.NewRegistry(svc)

	return &App{Mappings: mappings, Registry: registry, deps: deps}, nil
}

// Router builds the HTTP router: public health endpoint, authenticated MCP
// endpoints, CORS, request IDs, rate limiting, panic recovery.
func (a *App) Router() http.Handler {
	cfg := a.deps.Cfg
	handler := api.NewHandler(a.Registry, a.deps.Logger.With("component", "api"))

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	r.Get("/health", handler.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.APIKey, []byte(cfg.JWTSecret)))
		r.Get("/mcp/tools", handler.ListTools)
		r.Post("/mcp/tools/call", handler.CallTool)
	})

	return r
}
