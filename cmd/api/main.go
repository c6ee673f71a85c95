package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedrank/internal/config"
	"feedrank/internal/featureflag"
	"feedrank/internal/infra/adapter/persistence/memory"
	"feedrank/internal/infra/worker"
	"feedrank/internal/observability/logging"
	"feedrank/internal/observability/tracing"
	"feedrank/internal/resilience/circuitbreaker"
	feedUC "feedrank/internal/usecase/feed"

	hhttp "feedrank/internal/handler/http"
	hfeed "feedrank/internal/handler/http/feed"
	"feedrank/internal/handler/http/requestid"
)

// @title           Feedrank API
// @version         1.0
// @description     Personalized video feed ranking service. Serves ranked
// @description     candidate feeds per tenant and user, degrading to a
// @description     trending fallback when personalization is unavailable.

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	stores, err := initStores(logger, cfg)
	if err != nil {
		logger.Error("failed to seed stores", slog.Any("error", err))
		os.Exit(1)
	}

	svc, breaker, flags := setupService(cfg, stores)
	janitor := startJanitor(logger, cfg, svc, stores.candidates)
	defer janitor.Stop()

	handler := setupRoutes(logger, cfg, svc, breaker, flags)
	runServer(logger, cfg, applyMiddleware(logger, cfg, handler))
}

// stores bundles the in-memory persistence adapters.
type stores struct {
	candidates *memory.CandidateRepo
	signals    *memory.SignalRepo
	tenants    *memory.TenantConfigRepo
}

// initStores creates the in-memory stores and loads the seed dataset, either
// from SEED_FILE or the built-in demo data.
func initStores(logger *slog.Logger, cfg *config.Config) (*stores, error) {
	s := &stores{
		candidates: memory.NewCandidateRepo(),
		signals:    memory.NewSignalRepo(),
		tenants:    memory.NewTenantConfigRepo(),
	}

	seed := memory.DefaultSeed()
	source := "builtin"
	if cfg.SeedFile != "" {
		loaded, err := memory.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = loaded
		source = cfg.SeedFile
	}

	if err := seed.Apply(time.Now(), s.candidates, s.signals, s.tenants); err != nil {
		return nil, err
	}
	logger.Info("stores seeded",
		slog.String("source", source),
		slog.Int("tenants", len(seed.Tenants)),
		slog.Int("users", len(seed.Users)),
	)
	return s, nil
}

// setupService wires the feed assembler with its breaker and flag gate.
func setupService(cfg *config.Config, s *stores) (*feedUC.Service, *circuitbreaker.CircuitBreaker, *featureflag.Gate) {
	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:             "ranking",
		FailureThreshold: uint32(cfg.Breaker.FailureThreshold),
		RecoveryTimeout:  cfg.Breaker.RecoveryTimeout,
	})

	flags := featureflag.New(featureflag.Config{
		KillSwitch: cfg.Flags.KillSwitch,
		Defaults: map[string]bool{
			featureflag.FlagPersonalization: cfg.Flags.PersonalizationEnabled,
		},
		RolloutPercent: cfg.Flags.RolloutPercentage,
	})

	svc := feedUC.NewService(feedUC.Deps{
		Candidates: s.candidates,
		Signals:    s.signals,
		Tenants:    s.tenants,
		Breaker:    breaker,
		Flags:      flags,
	}, feedUC.Config{
		RankingTimeout:  cfg.Feed.RankingTimeout,
		CacheTimeout:    cfg.Feed.CacheTimeout,
		MaxLimit:        cfg.Feed.MaxLimit,
		SignalTTL:       cfg.Feed.SignalTTL,
		TenantConfigTTL: cfg.Feed.TenantConfigTTL,
	})
	return svc, breaker, flags
}

// startJanitor schedules cache sweeps and trending refreshes.
func startJanitor(logger *slog.Logger, cfg *config.Config, svc *feedUC.Service, candidates *memory.CandidateRepo) *worker.Janitor {
	sweepers := make(map[string]worker.Sweeper)
	for name, c := range svc.Caches() {
		sweepers[name] = c
	}

	janitor := worker.New(sweepers, candidates, cfg.JanitorInterval, logger)
	if err := janitor.Start(); err != nil {
		logger.Error("failed to start janitor", slog.Any("error", err))
		os.Exit(1)
	}
	return janitor
}

// setupRoutes registers the API routes.
func setupRoutes(logger *slog.Logger, cfg *config.Config, svc *feedUC.Service, breaker *circuitbreaker.CircuitBreaker, flags *featureflag.Gate) http.Handler {
	caches := make(map[string]hhttp.Sweeper)
	for name, c := range svc.Caches() {
		caches[name] = c
	}

	mux := http.NewServeMux()
	hfeed.Register(mux, svc, cfg.Feed.DefaultLimit)
	mux.Handle("GET /healthz", &hhttp.HealthHandler{
		Breaker: breaker,
		Flags:   flags,
		Caches:  caches,
		Version: version(),
	})
	mux.Handle("GET /readyz", &hhttp.ReadyHandler{Ready: func() bool { return true }})
	mux.Handle("GET /livez", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	return mux
}

// applyMiddleware wraps the router. Order, outermost first: Recover, Request
// ID, Tracing, Logging, Metrics, Rate Limit.
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler) http.Handler {
	limiter := hhttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	chain := handler
	chain = limiter.Limit(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.Recover(logger)(chain)
	return chain
}

// runServer starts the HTTP server and blocks until shutdown.
func runServer(logger *slog.Logger, cfg *config.Config, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", version()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

func version() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	return "dev"
}
