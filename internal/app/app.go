package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/event-scoring/internal/auth"
	"github.com/riskibarqy/event-scoring/internal/config"
	"github.com/riskibarqy/event-scoring/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/event-scoring/internal/interfaces/httpapi"
	"github.com/riskibarqy/event-scoring/internal/observability"
	basecache "github.com/riskibarqy/event-scoring/internal/platform/cache"
	"github.com/riskibarqy/event-scoring/internal/platform/logging"
	"github.com/riskibarqy/event-scoring/internal/platform/resilience"
	"github.com/riskibarqy/event-scoring/internal/usecase"
	"github.com/sourcegraph/conc"
)

// App owns the HTTP server and every resource it depends on.
type App struct {
	Server *http.Server

	logger  *logging.Logger
	cancel  context.CancelFunc
	workers conc.WaitGroup
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	bgCtx, cancel := context.WithCancel(context.Background())
	a := &App{logger: logger.Named("app"), cancel: cancel}

	repos, datastore, closeStorage, err := openStorage(ctx, cfg, a.logger)
	if err != nil {
		cancel()
		return nil, err
	}
	a.closers = append(a.closers, closeStorage)

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.users = cache.NewUserRepository(repos.users, store)
		a.workers.Go(func() { sweepCache(bgCtx, store, cfg.CacheTTL, a.logger) })
	}

	codec, err := auth.NewCodec(cfg.TokenSecret, cfg.SessionTTL, repos.users)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("build token codec: %w", err)
	}

	pool, err := ants.NewPool(cfg.RankingWorkers, ants.WithPanicHandler(func(p any) {
		a.logger.Error("ranking worker panic", "panic", p)
	}))
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create ranking worker pool: %w", err)
	}
	a.closers = append(a.closers, func() error {
		pool.Release()
		return nil
	})

	policy := usecase.NewAccessPolicy(repos.events, repos.activities, repos.leaders)
	handler := httpapi.NewHandler(httpapi.Services{
		Users:      usecase.NewUserService(repos.users, codec, cfg.SearchLimit),
		Events:     usecase.NewEventService(repos.events, repos.activities, repos.leaders, policy),
		Activities: usecase.NewActivityService(repos.activities, repos.leaders, policy),
		Leaders:    usecase.NewLeaderService(repos.leaders, repos.users, policy),
		Teams:      usecase.NewTeamService(repos.teams, policy),
		Scores:     usecase.NewScoreService(repos.activities, repos.teams, repos.scores, policy),
		Rankings:   usecase.NewRankingService(repos.events, repos.activities, repos.teams, repos.scores, repos.leaders, pool),
	}, guardedPinger{next: datastore, breaker: resilience.NewBreaker(resilience.DefaultBreakerConfig())}, logger.Named("httpapi"))

	routerCfg := httpapi.RouterConfig{
		Endpoints:          handler.Endpoints(),
		Authenticator:      usecase.NewAuthenticator(codec, logger.Named("auth")),
		Logger:             logger.Named("http"),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		LegacyPHPPaths:     cfg.LegacyPHPPaths,
	}
	if cfg.MetricsEnabled {
		metrics := observability.NewHTTPMetrics()
		routerCfg.Observer = metrics
		routerCfg.Metrics = metrics.Handler()
	}

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	a.logger.Info("app initialized",
		"storage_driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
		"legacy_php_paths", cfg.LegacyPHPPaths,
		"ranking_workers", cfg.RankingWorkers,
	)
	return a, nil
}

// Close stops background work and releases resources in reverse order of acquisition.
func (a *App) Close() error {
	a.cancel()
	a.workers.Wait()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func sweepCache(ctx context.Context, store *basecache.Store, every time.Duration, logger *logging.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := store.Sweep(); removed > 0 {
				logger.Debug("cache swept", "removed", removed)
			}
		}
	}
}
