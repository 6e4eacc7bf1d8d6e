// Package config loads and validates application configuration from YAML
// files with environment-variable overrides. It provides typed structs for
// every subsystem (Paths, Search, Stats, Postgres, Logging, Metrics).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Search   SearchConfig   `yaml:"search"`
	Stats    StatsConfig    `yaml:"stats"`
	Postgres PostgresConfig `yaml:"postgres"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// PathsConfig fixes the on-disk layout of the corpus, token stream, and
// index files. The builder and searcher take no path arguments; they agree
// on file locations through this section.
type PathsConfig struct {
	DataDir   string `yaml:"dataDir"`
	Corpus    string `yaml:"corpus"`
	TokensDir string `yaml:"tokensDir"`
}

// TokensFile returns the path of the raw token stream.
func (p PathsConfig) TokensFile() string {
	return filepath.Join(p.TokensDir, "tokens.tsv")
}

// StemTokensFile returns the path of the stemmed token stream.
func (p PathsConfig) StemTokensFile() string {
	return filepath.Join(p.TokensDir, "tokens_stem.tsv")
}

// DocOffsetsFile returns the path of the per-document offset index.
func (p PathsConfig) DocOffsetsFile() string {
	return filepath.Join(p.TokensDir, "docs.idx")
}

// DirectIndexFile returns the path of the persisted direct index.
func (p PathsConfig) DirectIndexFile() string {
	return filepath.Join(p.DataDir, "direct_index.bin")
}

// InvertedIndexFile returns the path of the persisted inverted index.
func (p PathsConfig) InvertedIndexFile() string {
	return filepath.Join(p.DataDir, "inverted_index.bin")
}

// SearchConfig controls query-file evaluation.
type SearchConfig struct {
	// Parallelism bounds how many query lines are evaluated concurrently.
	// Each individual query is always evaluated sequentially.
	Parallelism int `yaml:"parallelism"`
}

// StatsConfig controls where build statistics are recorded beyond the log.
type StatsConfig struct {
	PersistToPostgres bool `yaml:"persistToPostgres"`
}

// PostgresConfig holds PostgreSQL connection parameters for the stats sink.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:   "data",
			Corpus:    "data/corpus.jsonl",
			TokensDir: "data/tokens",
		},
		Search: SearchConfig{
			Parallelism: 4,
		},
		Stats: StatsConfig{
			PersistToPostgres: false,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "wikisearch",
			User:            "wikisearch",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads WS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WS_DATA_DIR"); v != "" {
		cfg.Paths.DataDir = v
	}
	if v := os.Getenv("WS_CORPUS"); v != "" {
		cfg.Paths.Corpus = v
	}
	if v := os.Getenv("WS_TOKENS_DIR"); v != "" {
		cfg.Paths.TokensDir = v
	}
	if v := os.Getenv("WS_SEARCH_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Search.Parallelism = n
		}
	}
	if v := os.Getenv("WS_STATS_POSTGRES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Stats.PersistToPostgres = b
		}
	}
	if v := os.Getenv("WS_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("WS_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("WS_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("WS_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("WS_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("WS_POSTGRES_SSLMODE"); v != "" {
		cfg.Postgres.SSLMode = v
	}
	if v := os.Getenv("WS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("WS_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("WS_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
