// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	donorsfeature "github.com/dalemusser/orphanagecare/internal/app/features/donors"
	errorsfeature "github.com/dalemusser/orphanagecare/internal/app/features/errors"
	healthfeature "github.com/dalemusser/orphanagecare/internal/app/features/health"
	homefeature "github.com/dalemusser/orphanagecare/internal/app/features/home"
	orphanagesfeature "github.com/dalemusser/orphanagecare/internal/app/features/orphanages"
	profilesfeature "github.com/dalemusser/orphanagecare/internal/app/features/profiles"
	"github.com/dalemusser/orphanagecare/internal/app/system/httpmw"
	"github.com/dalemusser/orphanagecare/internal/app/system/metrics"
	"github.com/dalemusser/orphanagecare/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router).
//
// It is called after configuration, DB connection, schema setup and
// Startup have completed. Every route is flat (no shared prefix), so
// feature routers are registered with r.Group instead of r.Mount.
func BuildHandler(appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	errLog := errorsfeature.NewErrorLogger(logger)
	m := metrics.New()

	r := chi.NewRouter()

	r.Use(httpmw.RequestID())
	// RealIP takes X-Forwarded-For / X-Real-IP as sent. The service is meant
	// to run behind a proxy that overwrites them; exposed directly, a client
	// can pick its own address and dodge the per-IP login limit (the
	// per-account limit still applies).
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(logging.Recoverer(logger))
	r.Use(m.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.CORSAllowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", httpmw.RequestIDHeader},
		ExposedHeaders:   []string{httpmw.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Liveness, readiness and metrics for load balancers and scrapers
	r.Group(healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Group(homefeature.Routes(homefeature.NewHandler(logger)))

	// Login identities share one limiter; its account keys include the kind.
	loginLimiter := ratelimit.NewLoginLimiter(appCfg.LoginIPLimit, appCfg.LoginAccountLimit)

	donorsHandler := donorsfeature.NewHandler(deps.MongoDatabase, errLog, m, logger)
	donorsHandler.Limiter = loginLimiter
	r.Group(donorsfeature.Routes(donorsHandler))

	orphanagesHandler := orphanagesfeature.NewHandler(deps.MongoDatabase, errLog, m, logger)
	orphanagesHandler.Limiter = loginLimiter
	r.Group(orphanagesfeature.Routes(orphanagesHandler))

	// Orphanage profiles
	r.Group(profilesfeature.Routes(profilesfeature.NewHandler(deps.MongoDatabase, errLog, m, logger)))

	return r, nil
}
