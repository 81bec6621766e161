package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"pieceledger/internal/domain/branch"
	"pieceledger/internal/domain/salary"
	"pieceledger/internal/platform/config"
	"pieceledger/internal/platform/db"
	"pieceledger/internal/platform/jobs"
	"pieceledger/internal/platform/metrics"
	"pieceledger/internal/transport/http/api"
	branchhandler "pieceledger/internal/transport/http/handlers/branch"
	employeehandler "pieceledger/internal/transport/http/handlers/employee"
	expenditurehandler "pieceledger/internal/transport/http/handlers/expenditure"
	metahandler "pieceledger/internal/transport/http/handlers/meta"
	reportshandler "pieceledger/internal/transport/http/handlers/reports"
	salaryhandler "pieceledger/internal/transport/http/handlers/salary"
	workhandler "pieceledger/internal/transport/http/handlers/work"
	"pieceledger/internal/transport/http/middleware"
)

type App struct {
	Config   config.Config
	DB       *pgxpool.Pool
	Router   http.Handler
	Branches *branch.Store
	Jobs     *jobs.Service
	Metrics  *metrics.Collector
}

// New connects, migrates, seeds and wires the router. The caller owns
// the pool lifetime via Close.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	branchStore := branch.NewStore(pool)
	calc := salary.NewCalculator(cfg.BonusRatePercent)
	collector := metrics.New()

	jobRunner := jobs.New()
	jobRunner.Start(ctx)
	jobRunner.Schedule(ctx, jobs.JobBranchRefresh, cfg.BranchRefreshInterval, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return branchStore.Refresh(ctx)
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	router.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level: slog.LevelInfo,
	}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Metrics(collector))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot())
		})
	}

	employeehandler.NewHandler(pool).RegisterRoutes(router)
	workhandler.NewHandler(pool).RegisterRoutes(router)
	salaryhandler.NewHandler(pool, calc).RegisterRoutes(router)
	expenditurehandler.NewHandler(pool).RegisterRoutes(router)
	branchhandler.NewHandler(branchStore).RegisterRoutes(router)
	reportshandler.NewHandler(pool, branchStore, calc).RegisterRoutes(router)
	metahandler.NewHandler().RegisterRoutes(router)

	return &App{
		Config:   cfg,
		DB:       pool,
		Router:   router,
		Branches: branchStore,
		Jobs:     jobRunner,
		Metrics:  collector,
	}, nil
}

func (a *App) Close() {
	a.DB.Close()
}
