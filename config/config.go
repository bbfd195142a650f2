// Package config loads proximity configuration from YAML files with
// environment-variable overrides and turns it into indexes, finder options,
// loggers and metrics collectors.
package config

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/proximity/engine"
	"github.com/viant/proximity/finder"
	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/index/bruteforce"
	"github.com/viant/proximity/index/cover"
	"github.com/viant/proximity/index/rtree"
	"github.com/viant/proximity/logging"
	"github.com/viant/proximity/metrics"
	"github.com/viant/proximity/store"
	"gopkg.in/yaml.v3"
)

// Index kinds accepted by IndexConfig.Kind.
const (
	KindRTree      = "rtree"
	KindCover      = "cover"
	KindBruteForce = "bruteforce"
)

// Config is the top-level configuration.
type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// IndexConfig selects and sizes the spatial index.
type IndexConfig struct {
	Kind       string  `yaml:"kind"`
	MaxEntries int     `yaml:"maxEntries"`
	MinEntries int     `yaml:"minEntries"`
	Base       float64 `yaml:"base"`
}

// SearchConfig controls query execution.
type SearchConfig struct {
	Epsilon float64 `yaml:"epsilon"`
	Workers int     `yaml:"workers"`
}

// StoreConfig holds the SQLite data source name.
type StoreConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Kind:       KindRTree,
			MaxEntries: 8,
			MinEntries: 3,
			Base:       cover.DefaultBase,
		},
		Search: SearchConfig{
			Epsilon: finder.DefaultEpsilon,
		},
		Store: StoreConfig{
			DSN: ":memory:",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Namespace: "proximity",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Index.Kind {
	case KindRTree, KindCover, KindBruteForce:
	default:
		return fmt.Errorf("config: unknown index kind %q", c.Index.Kind)
	}
	if c.Index.Kind == KindCover && c.Index.Base <= 1 {
		return fmt.Errorf("config: cover base must exceed 1, got %v", c.Index.Base)
	}
	if c.Search.Epsilon < 0 {
		return fmt.Errorf("config: negative epsilon %v", c.Search.Epsilon)
	}
	return nil
}

// New returns an empty index of the configured kind.
func (c IndexConfig) New() (index.SpatialIndex, error) {
	switch c.Kind {
	case KindRTree, "":
		return rtree.New(c.treeOptions()...), nil
	case KindCover:
		return cover.New(cover.WithBase(c.Base)), nil
	case KindBruteForce:
		return bruteforce.New(), nil
	}
	return nil, fmt.Errorf("config: unknown index kind %q", c.Kind)
}

// Build returns an index of the configured kind holding points, point i
// stored with id i.
func (c IndexConfig) Build(points []geometry.Point) (index.SpatialIndex, error) {
	var (
		idx index.SpatialIndex
		err error
	)
	switch c.Kind {
	case KindRTree, "":
		idx, err = rtree.NewFromPoints(points, c.treeOptions()...)
	case KindCover:
		idx, err = cover.NewFromPoints(points, cover.WithBase(c.Base))
	case KindBruteForce:
		idx, err = bruteforce.NewFromPoints(points)
	default:
		return nil, fmt.Errorf("config: unknown index kind %q", c.Kind)
	}
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func (c IndexConfig) treeOptions() []rtree.Option {
	var opts []rtree.Option
	if c.MaxEntries > 0 {
		opts = append(opts, rtree.WithMaxEntries(c.MaxEntries))
	}
	if c.MinEntries > 0 {
		opts = append(opts, rtree.WithMinEntries(c.MinEntries))
	}
	return opts
}

// Open opens the configured database and a point store on it. The caller
// closes the returned database.
func (c StoreConfig) Open(opts ...store.Option) (*sql.DB, *store.SQLiteStore, error) {
	db, err := engine.Open(c.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("config: open store %s: %w", c.DSN, err)
	}
	s, err := store.NewSQLiteStore(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, s, nil
}

// StoreOptions returns the store options implied by c, building dataset
// indexes of the configured kind.
func (c *Config) StoreOptions(opts ...finder.Option) []store.Option {
	return []store.Option{
		store.WithIndexBuilder(c.Index.Build),
		store.WithFinderOptions(opts...),
	}
}

// Logger builds the configured logger writing to w.
func (c LoggingConfig) Logger(w io.Writer) *slog.Logger {
	return logging.New(c.Level, c.Format, w)
}

// Collector returns a Prometheus collector registered with reg, or a no-op
// collector when metrics are disabled.
func (c MetricsConfig) Collector(reg prometheus.Registerer) (metrics.Collector, error) {
	if !c.Enabled {
		return metrics.Noop{}, nil
	}
	return metrics.NewPrometheusCollector(reg, c.Namespace)
}

// FinderOptions returns the finder options implied by c. A nil logger or
// collector keeps the finder default.
func (c *Config) FinderOptions(logger *slog.Logger, collector metrics.Collector) []finder.Option {
	return []finder.Option{
		finder.WithEpsilon(c.Search.Epsilon),
		finder.WithLogger(logger),
		finder.WithMetrics(collector),
		finder.WithTreeOptions(c.Index.treeOptions()...),
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PROXIMITY_INDEX_KIND"); v != "" {
		cfg.Index.Kind = v
	}
	if v := os.Getenv("PROXIMITY_INDEX_MAX_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Index.MaxEntries = n
		}
	}
	if v := os.Getenv("PROXIMITY_INDEX_MIN_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Index.MinEntries = n
		}
	}
	if v := os.Getenv("PROXIMITY_INDEX_BASE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Index.Base = f
		}
	}
	if v := os.Getenv("PROXIMITY_SEARCH_EPSILON"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.Epsilon = f
		}
	}
	if v := os.Getenv("PROXIMITY_SEARCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.Workers = n
		}
	}
	if v := os.Getenv("PROXIMITY_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("PROXIMITY_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PROXIMITY_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("PROXIMITY_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("PROXIMITY_METRICS_NAMESPACE"); v != "" {
		cfg.Metrics.Namespace = v
	}
}
