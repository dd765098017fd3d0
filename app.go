package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"policy-illustrator/catalog"
	"policy-illustrator/config"
	"policy-illustrator/domain"
	"policy-illustrator/logger"
	"policy-illustrator/repository"
	"policy-illustrator/service"
)

// app holds everything built from configuration at process start.
type app struct {
	cfg           config.Config
	log           *zap.Logger
	catalog       *domain.Catalog
	history       *repository.IllustrationRepositoryMemory
	illustrations *service.IllustrationService
	comparison    *service.PayTermComparisonService
	finder        *service.ProductFinder
	closers       []func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath, envOnly)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	log.Info("catalog loaded", zap.Int("products", cat.Len()), zap.String("path", cfg.Catalog.Path))

	a := &app{cfg: cfg, log: log, catalog: cat}

	cache, err := a.openCache(ctx)
	if err != nil {
		return nil, err
	}

	a.history = repository.NewIllustrationRepositoryMemory(cfg.Projection.HistorySize)
	a.illustrations = service.NewIllustrationService(cat, a.history, cache, log, service.IllustrationOptions{
		Solver: service.SolverConfig{
			Guess:               cfg.Solver.Guess,
			Tolerance:           cfg.Solver.Tolerance,
			MaxIterations:       cfg.Solver.MaxIterations,
			DerivativeThreshold: service.DefaultSolverConfig.DerivativeThreshold,
		},
		CacheTTL:       cfg.Cache.TTL,
		DefaultHorizon: cfg.Projection.DefaultHorizon,
		MaxHorizon:     cfg.Projection.MaxHorizon,
	})
	a.comparison = service.NewPayTermComparisonService(a.illustrations, log)
	a.finder = service.NewProductFinder(cat)
	return a, nil
}

// openCache returns nil when caching is disabled. A Redis server that does
// not answer falls back to the in-memory cache.
func (a *app) openCache(ctx context.Context) (repository.CacheRepository, error) {
	switch a.cfg.Cache.Driver {
	case "", "memory":
		return repository.NewMemoryCache(a.cfg.Cache.MaxEntries), nil
	case "none":
		return nil, nil
	case "redis":
		rc := repository.NewRedisCache(a.cfg.Cache.RedisAddr)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			a.log.Warn("redis unavailable, using in-memory cache",
				zap.String("addr", a.cfg.Cache.RedisAddr), zap.Error(err))
			rc.Close()
			return repository.NewMemoryCache(a.cfg.Cache.MaxEntries), nil
		}
		a.closers = append(a.closers, rc.Close)
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", a.cfg.Cache.Driver)
	}
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
