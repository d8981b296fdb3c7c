package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"a11ypack/config"
	"a11ypack/internal/content"
	"a11ypack/internal/handlers"
	"a11ypack/internal/i18n"
	"a11ypack/internal/logger"
	"a11ypack/internal/metrics"
	"a11ypack/internal/page"
	"a11ypack/internal/version"
	"a11ypack/middleware"
)

const shutdownTimeout = 10 * time.Second

type app struct {
	router  *chi.Mux
	content *content.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)
	log := logger.Get()
	log.Info().
		Str("version", version.Version).
		Str("commit", version.Commit).
		Msg("A11yPack starting")
	log.Info().
		Str("env", string(cfg.Env)).
		Str("log_level", cfg.LogLevel).
		Str("default_language", string(cfg.DefaultLanguage)).
		Str("settings_path", cfg.SettingsPath).
		Msg("Configuration loaded")

	webFS, err := fs.Sub(embeddedWeb, "web")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize embedded web filesystem")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, webFS)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, cfg config.Config, webFS fs.FS) error {
	log := logger.Get()
	registry := metrics.NewRegistry()
	a, err := newApp(cfg, registry, webFS)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	srv := &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", listener.Addr().String()).Msg("Server starting")
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.ContentCacheTTL > 0 {
		g.Go(func() error {
			return a.content.Cache().RunJanitor(gctx, cfg.ContentCacheTTL)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newApp(cfg config.Config, registry *prometheus.Registry, webFS fs.FS) (*app, error) {
	assetsFS, err := fs.Sub(webFS, "assets")
	if err != nil {
		return nil, fmt.Errorf("assets filesystem: %w", err)
	}

	store := content.NewEmbeddedStore(cfg.ContentCacheTTL)
	builder := page.NewBuilder(store)
	formMetrics := metrics.NewFormMetrics(registry)
	registry.MustRegister(metrics.NewSiteCollector(store.Cache(), len(i18n.Supported())))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Locale(cfg.DefaultLanguage))

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))
	r.Get("/api/health", handlers.HealthCheck)
	r.Get("/api/ready", handlers.ReadinessCheck(store))
	r.Get("/api/version", handlers.GetVersion)
	r.Get("/api/config", handlers.GetConfig(cfg))
	r.Get("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP)
	handlers.RegisterI18nRoutes(r)

	var uiErr error
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRFProtection)
		r.Use(middleware.BodyLimit(cfg.BodyLimitBytes))
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			MaxRequests: cfg.RateLimit.MaxRequests,
			Window:      cfg.RateLimit.Window,
			MaxEntries:  middleware.DefaultRateLimitConfig().MaxEntries,
			TrustProxy:  cfg.TrustProxy,
			Methods:     []string{http.MethodPost},
		}))
		uiErr = handlers.RegisterUIRoutes(r, webFS, handlers.UIDependencies{
			Pages:     builder,
			Navigator: page.NewNavigator(page.LayoutAnchors(builder)),
			Metrics:   formMetrics,
		})
	})
	if uiErr != nil {
		return nil, uiErr
	}
	return &app{router: r, content: store}, nil
}
