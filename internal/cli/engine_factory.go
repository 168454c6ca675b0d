package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/antoine"
	"github.com/aretw0/antoine/internal/config"
	"github.com/aretw0/antoine/pkg/adapters/memory"
	"github.com/aretw0/antoine/pkg/adapters/redis"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/observability"
	"github.com/aretw0/antoine/pkg/ports"
)

// Options are the global command-line settings. Non-zero fields override
// the resolved configuration.
type Options struct {
	ConfigFile string
	Table      string
	Debug      bool
	JSON       bool
}

// Runtime bundles everything a command needs.
type Runtime struct {
	Config  config.Config
	Engine  *antoine.Engine
	Logger  *slog.Logger
	Metrics *observability.Metrics
	// Redis is set when the redis cache backend is active.
	Redis *redis.Cache
}

// Close releases the cache connection.
func (r *Runtime) Close() error {
	if r.Redis != nil {
		return r.Redis.Close()
	}
	return nil
}

// LoadConfig resolves the configuration and applies command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(config.Options{File: opts.ConfigFile})
	if err != nil {
		return cfg, err
	}
	if opts.Table != "" {
		cfg.Table = opts.Table
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// NewRuntime builds the engine with CLI conventions: configured logger,
// cache backend, debug hooks and, when withMetrics is set, Prometheus hooks.
func NewRuntime(ctx context.Context, opts Options, withMetrics bool) (*Runtime, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := createLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Config: cfg, Logger: logger}

	cache, err := createCache(ctx, cfg.Cache, rt)
	if err != nil {
		return nil, err
	}

	var hooks domain.Hooks
	if opts.Debug {
		hooks = observability.LogHooks(logger)
	}
	if withMetrics {
		rt.Metrics = observability.NewMetrics("antoine")
		hooks = hooks.Merge(rt.Metrics.Hooks())
	}

	engineOpts := []antoine.Option{
		antoine.WithLogger(logger),
		antoine.WithHooks(hooks),
		antoine.WithGrid(cfg.Grid),
		antoine.WithStrategy(cfg.Strategy()),
		antoine.WithCurvePoints(cfg.Dashboard.CurvePoints),
	}
	if cache != nil {
		engineOpts = append(engineOpts, antoine.WithCache(cache))
	}

	rt.Engine, err = antoine.Load(ctx, cfg.Table, engineOpts...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return rt, nil
}

// createCache returns nil for the "none" backend. A Redis backend must answer
// a ping before the engine starts.
func createCache(ctx context.Context, cfg config.CacheConfig, rt *Runtime) (ports.ResultCache, error) {
	switch cfg.Backend {
	case config.CacheMemory:
		return memory.NewCache(memory.WithTTL(cfg.TTL)), nil
	case config.CacheRedis:
		c := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := c.Ping(pingCtx); err != nil {
			c.Close()
			return nil, fmt.Errorf("redis cache at %s unavailable: %w", cfg.Redis.Addr, err)
		}
		rt.Redis = c
		rt.Logger.Debug("redis cache connected", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return c, nil
	case config.CacheNone, "":
		return nil, nil
	default:
		return nil, errors.New("unknown cache backend " + cfg.Backend)
	}
}
