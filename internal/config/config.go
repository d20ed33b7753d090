// Package config loads server configuration from a TOML file with sane
// defaults, so `runorder serve` works with no config at all.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/pipeline"
)

// Supported cache backends.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Supported store backends.
const (
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Solver SolverConfig `toml:"solver"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     duration `toml:"read_timeout"`
	WriteTimeout    duration `toml:"write_timeout"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// SolverConfig caps solver resource usage per request.
type SolverConfig struct {
	Limit     int      `toml:"limit"`      // exhaustive size limit for auto
	MaxStates int      `toml:"max_states"` // state cap for the exhaustive search
	Timeout   duration `toml:"timeout"`    // per-solve wall clock budget
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // file, redis, or none
	Dir     string `toml:"dir"`     // file backend: cache directory

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the show store backend.
type StoreConfig struct {
	Backend  string `toml:"backend"` // memory or mongo
	URI      string `toml:"uri"`     // mongo backend: connection URI
	Database string `toml:"database"`
}

// duration makes time.Duration parseable from TOML strings like "30s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     duration(10 * time.Second),
			WriteTimeout:    duration(60 * time.Second),
			ShutdownTimeout: duration(10 * time.Second),
		},
		Solver: SolverConfig{
			Limit:     pipeline.DefaultExhaustiveLimit,
			MaxStates: pipeline.DefaultMaxStates,
			Timeout:   duration(pipeline.DefaultTimeout),
		},
		Cache: CacheConfig{
			Backend: CacheBackendFile,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Store: StoreConfig{
			Backend:  StoreBackendMemory,
			Database: "runorder",
		},
	}
}

// Load reads a TOML config file, layering it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backend names and numeric ranges.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreBackendMemory, StoreBackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid store backend: %q (must be one of: memory, mongo)", c.Store.Backend)
	}
	if c.Store.Backend == StoreBackendMongo && c.Store.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "store.uri is required for the mongo backend")
	}
	if c.Solver.Limit < 0 || c.Solver.MaxStates < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "solver limits must be non-negative")
	}
	return nil
}
