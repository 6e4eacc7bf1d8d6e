package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "data/corpus.jsonl", cfg.Paths.Corpus)
	assert.Equal(t, 4, cfg.Search.Parallelism)
	assert.False(t, cfg.Stats.PersistToPostgres)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, 5*time.Minute, cfg.Postgres.ConnMaxLifetime)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
paths:
  dataDir: /var/lib/wikisearch
  corpus: /srv/corpus.jsonl
search:
  parallelism: 8
logging:
  level: debug
  format: json
metrics:
  enabled: true
  port: 9191
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/wikisearch", cfg.Paths.DataDir)
	assert.Equal(t, "/srv/corpus.jsonl", cfg.Paths.Corpus)
	assert.Equal(t, 8, cfg.Search.Parallelism)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9191, cfg.Metrics.Port)

	// sections absent from the file keep their defaults
	assert.Equal(t, "data/tokens", cfg.Paths.TokensDir)
	assert.Equal(t, 5432, cfg.Postgres.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WS_DATA_DIR", "/tmp/ws")
	t.Setenv("WS_SEARCH_PARALLELISM", "16")
	t.Setenv("WS_STATS_POSTGRES", "true")
	t.Setenv("WS_POSTGRES_HOST", "db.internal")
	t.Setenv("WS_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ws", cfg.Paths.DataDir)
	assert.Equal(t, 16, cfg.Search.Parallelism)
	assert.True(t, cfg.Stats.PersistToPostgres)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestEnvOverridesIgnoreInvalidNumbers(t *testing.T) {
	t.Setenv("WS_SEARCH_PARALLELISM", "zero")
	t.Setenv("WS_METRICS_PORT", "-")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Search.Parallelism)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestDerivedPaths(t *testing.T) {
	p := PathsConfig{DataDir: "d", TokensDir: "t"}
	assert.Equal(t, filepath.Join("t", "tokens.tsv"), p.TokensFile())
	assert.Equal(t, filepath.Join("t", "tokens_stem.tsv"), p.StemTokensFile())
	assert.Equal(t, filepath.Join("t", "docs.idx"), p.DocOffsetsFile())
	assert.Equal(t, filepath.Join("d", "direct_index.bin"), p.DirectIndexFile())
	assert.Equal(t, filepath.Join("d", "inverted_index.bin"), p.InvertedIndexFile())
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{
		Host: "h", Port: 5433, Database: "db",
		User: "u", Password: "pw", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=h port=5433 user=u password=pw dbname=db sslmode=disable",
		p.DSN(),
	)
}
