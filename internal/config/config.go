// Package config resolves runtime settings from defaults, an optional YAML
// file, a .env file and ANTOINE_* environment variables, in that order.
// Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/antoine/internal/logging"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/thermo"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "antoine.yaml"

// DefaultEnvFile is loaded when present.
const DefaultEnvFile = ".env"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Table     string          `yaml:"table"`
	Server    ServerConfig    `yaml:"server"`
	Grid      thermo.Grid     `yaml:"grid"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DashboardConfig struct {
	CurvePoints int    `yaml:"curve_points"`
	Strategy    string `yaml:"strategy"`
}

type CacheConfig struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	Redis   RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Table:  "data/parametros_antoine.txt",
		Server: ServerConfig{Host: "", Port: 8050},
		Grid:   thermo.DefaultGrid,
		Dashboard: DashboardConfig{
			CurvePoints: domain.DefaultCurvePts,
			Strategy:    thermo.StrategyGrid.String(),
		},
		Cache: CacheConfig{
			Backend: CacheNone,
			TTL:     10 * time.Minute,
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "antoine:result:"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Options select the sources of Load.
type Options struct {
	// File is a YAML config file. Empty means DefaultFile, ignored when missing.
	File string
	// EnvFile is a dotenv file. Empty means DefaultEnvFile, ignored when missing.
	EnvFile string
}

// Load resolves the configuration.
func Load(opts Options) (Config, error) {
	cfg := Default()

	file, explicit := opts.File, opts.File != ""
	if !explicit {
		file = DefaultFile
	}
	if err := cfg.mergeFile(file); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return cfg, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := loadDotEnv(envFile); err != nil {
		return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
// Variables already set in the process win.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) mergeEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok && v != "" {
			f, err := domain.ParseDecimal(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = f
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("ANTOINE_TABLE", &c.Table)
	str("ANTOINE_HOST", &c.Server.Host)
	integer("ANTOINE_PORT", &c.Server.Port)
	float("ANTOINE_GRID_MIN", &c.Grid.Min)
	float("ANTOINE_GRID_MAX", &c.Grid.Max)
	integer("ANTOINE_GRID_SIZE", &c.Grid.Size)
	integer("ANTOINE_CURVE_POINTS", &c.Dashboard.CurvePoints)
	str("ANTOINE_STRATEGY", &c.Dashboard.Strategy)
	str("ANTOINE_CACHE", &c.Cache.Backend)
	duration("ANTOINE_CACHE_TTL", &c.Cache.TTL)
	str("ANTOINE_REDIS_ADDR", &c.Cache.Redis.Addr)
	str("ANTOINE_REDIS_PASSWORD", &c.Cache.Redis.Password)
	integer("ANTOINE_REDIS_DB", &c.Cache.Redis.DB)
	str("ANTOINE_REDIS_PREFIX", &c.Cache.Redis.Prefix)
	str("ANTOINE_LOG_LEVEL", &c.Log.Level)
	str("ANTOINE_LOG_FORMAT", &c.Log.Format)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %w", errors.Join(errs...))
	}
	return nil
}

// Validate checks values that would otherwise fail deep inside the engine.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if _, err := thermo.ParseStrategy(c.Dashboard.Strategy); err != nil {
		return err
	}
	if c.Dashboard.CurvePoints < 2 {
		return fmt.Errorf("dashboard.curve_points must be at least 2, got %d", c.Dashboard.CurvePoints)
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache backend %q (want none, memory or redis)", c.Cache.Backend)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Strategy returns the parsed boiling strategy. Call after Validate.
func (c Config) Strategy() thermo.Strategy {
	s, _ := thermo.ParseStrategy(c.Dashboard.Strategy)
	return s
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
