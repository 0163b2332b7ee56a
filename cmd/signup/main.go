// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/olegiv/signupform/internal/config"
	"github.com/olegiv/signupform/internal/handler"
	"github.com/olegiv/signupform/internal/logging"
	"github.com/olegiv/signupform/internal/metrics"
	"github.com/olegiv/signupform/internal/middleware"
	"github.com/olegiv/signupform/internal/render"
	"github.com/olegiv/signupform/internal/service"
	"github.com/olegiv/signupform/internal/session"
	"github.com/olegiv/signupform/internal/store"
	"github.com/olegiv/signupform/internal/store/postgres"
	"github.com/olegiv/signupform/internal/version"
	"github.com/olegiv/signupform/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 30 * time.Second

// backend is a record store that also persists events.
type backend interface {
	service.RecordStore
	store.RecordInserter
	logging.EventWriter
}

// storage bundles the selected record store with its lifecycle hooks.
type storage struct {
	records  backend
	ping     func(context.Context) error
	sessions scs.Store
	close    func()
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "signup - signup form with admin dashboard\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_ADMIN_USERNAME        Admin username (default: admin)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_ADMIN_PASSWORD        Admin password (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_DB_DRIVER             sqlite|postgres (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_DB_PATH               SQLite database path (default: ./data/formdata.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_DATABASE_URL          Postgres URL (required for postgres)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_REDIS_URL             Redis URL for session storage (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_SERVER_HOST/PORT      Listen address (default: localhost:8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_ENV                   development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_EXPORT_REQUIRES_AUTH  Gate /export behind admin login (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SIGNUP_METRICS_ENABLED       Expose /metrics (default: true)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("signup %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx := context.Background()

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logging.NewEventLogHandler(textHandler, st.records))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	if err := store.Seed(ctx, st.records, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	sessionManager := session.New(st.sessions, cfg.SessionLifetime, cfg.IsDevelopment())

	renderer, err := render.New(web.TemplatesFS())
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	// Metrics stay nil interfaces when disabled.
	var (
		recorder       service.Recorder
		loginRecorder  session.LoginRecorder
		httpRecorder   middleware.HTTPRecorder
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		collector := metrics.NewCollector(reg)
		recorder, loginRecorder, httpRecorder = collector, collector, collector
		metricsHandler = metrics.Handler(reg)
		slog.Info("metrics enabled", "path", handler.RouteMetrics)
	}

	events := service.NewEventService(st.records)
	gate := session.NewGate(sessionManager, session.Credentials{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}, events, loginRecorder)

	exportService := service.NewExportService(st.records, gate, cfg.ExportRequiresAuth, events, recorder)
	if !exportService.RequiresAuth() {
		slog.Warn("CSV export is public; set SIGNUP_EXPORT_REQUIRES_AUTH=true to require admin login",
			"path", handler.RouteExport, "category", "export")
	}

	security := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	router := handler.NewRouter(handler.Deps{
		Logger:          logger,
		Renderer:        renderer,
		Sessions:        sessionManager,
		Gate:            gate,
		Forms:           service.NewFormService(st.records, events, recorder),
		Admin:           service.NewAdminService(st.records, gate, events, recorder),
		Export:          exportService,
		Ready:           st.ping,
		CSRF:            middleware.CSRF(middleware.DefaultCSRFConfig(cfg.IsDevelopment(), cfg.ServerAddr())),
		LoginProtection: middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
		FormLimiter:     middleware.NewGlobalRateLimiter(1, 10),
		Security:        &security,
		HTTPMetrics:     httpRecorder,
		MetricsHandler:  metricsHandler,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr, "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// openStorage opens and migrates the configured record store and picks a
// session store: Redis when configured, otherwise the SQLite database or,
// for Postgres, process memory.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	var st *storage
	var err error
	if cfg.UsePostgres() {
		st, err = openPostgres(ctx, cfg)
	} else {
		st, err = openSQLite(cfg)
	}
	if err != nil {
		return nil, err
	}

	if cfg.UseRedisSessions() {
		rs, err := session.NewRedisStoreFromURL(cfg.RedisURL)
		if err != nil {
			st.close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		closeStore := st.close
		pingDB := st.ping
		st.sessions = rs
		st.ping = func(ctx context.Context) error {
			if err := pingDB(ctx); err != nil {
				return err
			}
			return rs.Ping(ctx)
		}
		st.close = func() {
			if err := rs.Close(); err != nil {
				slog.Error("error closing redis connection", "error", err)
			}
			closeStore()
		}
		slog.Info("session store: redis")
	}

	return st, nil
}

func openSQLite(cfg *config.Config) (*storage, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "driver", config.DriverSQLite, "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	return &storage{
		records:  store.New(db),
		ping:     db.PingContext,
		sessions: session.NewSQLiteStore(db),
		close: func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing database connection", "error", err)
			}
		},
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*storage, error) {
	slog.Info("initializing database", "driver", config.DriverPostgres)
	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	repo := postgres.NewRepository(pool)
	if !cfg.UseRedisSessions() {
		slog.Warn("postgres without SIGNUP_REDIS_URL keeps sessions in memory; admins are logged out on restart")
	}

	return &storage{
		records:  repo,
		ping:     repo.Ping,
		sessions: session.NewMemoryStore(),
		close:    pool.Close,
	}, nil
}
