package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applicationhandler "agrigate/internal/application/handler"
	applicationmetrics "agrigate/internal/application/metrics"
	applicationservice "agrigate/internal/application/service"
	applicationstore "agrigate/internal/application/store"
	farmerhandler "agrigate/internal/farmer/handler"
	farmermetrics "agrigate/internal/farmer/metrics"
	farmerservice "agrigate/internal/farmer/service"
	farmerstore "agrigate/internal/farmer/store"
	"agrigate/internal/jwttoken"
	"agrigate/internal/platform/config"
	"agrigate/internal/platform/httpserver"
	"agrigate/internal/platform/logger"
	"agrigate/internal/platform/postgres"
	schemehandler "agrigate/internal/scheme/handler"
	schememetrics "agrigate/internal/scheme/metrics"
	schemeservice "agrigate/internal/scheme/service"
	schemestore "agrigate/internal/scheme/store"
	"agrigate/pkg/platform/httputil"
	"agrigate/pkg/platform/middleware/auth"
	"agrigate/pkg/platform/middleware/requestid"
	"agrigate/pkg/platform/middleware/requesttime"
)

const (
	tokenIssuer   = "agrigate"
	tokenAudience = "agrigate-api"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store selection: PostgreSQL when DATABASE_URL is set, in-memory
	// otherwise so local development works without a database.
	var (
		db           *sql.DB
		farmers      farmerservice.FarmerStore
		schemes      schemeCatalog
		applications applicationservice.ApplicationStore
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Error("failed to apply schema", "error", err)
			os.Exit(1)
		}

		farmers = farmerstore.NewPostgres(db)
		schemes = schemestore.NewPostgres(db)
		applications = applicationstore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		farmers = farmerstore.NewInMemory()
		schemes = schemestore.NewInMemory()
		applications = applicationstore.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	seeded, err := schemestore.SeedCatalog(ctx, schemes, time.Now())
	if err != nil {
		log.Error("failed to seed scheme catalog", "error", err)
		os.Exit(1)
	}
	if seeded > 0 {
		log.Info("seeded scheme catalog", "schemes", seeded)
	}

	tokens := jwttoken.NewService(cfg.JWTSigningKey, tokenIssuer, tokenAudience)

	farmerSvc := farmerservice.NewService(farmers, tokens, cfg.TokenTTL,
		farmerservice.WithMetrics(farmermetrics.New()),
		farmerservice.WithBcryptCost(cfg.BcryptCost),
	)
	schemeSvc := schemeservice.NewService(schemes, farmers,
		schemeservice.WithMetrics(schememetrics.New()),
	)
	applicationSvc := applicationservice.NewService(applications, farmers, schemes,
		applicationservice.WithMetrics(applicationmetrics.New()),
	)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(requestid.Middleware)
	router.Use(requesttime.Middleware)
	router.Use(chimiddleware.Recoverer)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Farmer Schemes API is running"))
	})
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	farmerhandler.New(farmerSvc, log).Register(router)
	schemeH := schemehandler.New(schemeSvc, log)
	schemeH.Register(router)

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(&tokenValidatorAdapter{tokens: tokens}, log))
		schemeH.RegisterProtected(r)
		applicationhandler.New(applicationSvc, log).RegisterProtected(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting agrigate server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// schemeCatalog is the union of what the scheme service, the application
// service, and the seeder need from a scheme store.
type schemeCatalog interface {
	schemeservice.SchemeStore
	applicationservice.SchemeLookup
	schemestore.Catalog
}
