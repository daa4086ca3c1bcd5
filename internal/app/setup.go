// Package app contains the application setup for the warehouse service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/gowarehouse/internal/config"
	"github.com/abgdnv/gowarehouse/internal/service"
	"github.com/abgdnv/gowarehouse/internal/store"
	"github.com/abgdnv/gowarehouse/internal/transport/rest"
	"github.com/abgdnv/gowarehouse/pkg/messaging"
	"github.com/abgdnv/gowarehouse/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	WarehouseService service.WarehouseService
	Logger           *slog.Logger
}

// SetupDependencies wires the store, optional event publisher and service.
// The publisher may be nil when messaging is disabled.
func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	wService := service.NewService(store.NewPgStore(dbPool), publisher)

	return &Dependencies{
		WarehouseService: wService,
		Logger:           logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the warehouse service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the warehouse service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	warehouseHandler := rest.NewHandler(deps.WarehouseService, deps.Logger)
	warehouseHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the warehouse service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
