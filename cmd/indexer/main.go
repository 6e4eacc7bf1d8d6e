package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/searchlab/wikisearch/internal/corpus"
	"github.com/searchlab/wikisearch/internal/index"
	"github.com/searchlab/wikisearch/internal/index/codec"
	"github.com/searchlab/wikisearch/internal/stats"
	"github.com/searchlab/wikisearch/internal/tokenizer"
	"github.com/searchlab/wikisearch/pkg/config"
	apperrors "github.com/searchlab/wikisearch/pkg/errors"
	"github.com/searchlab/wikisearch/pkg/logger"
	"github.com/searchlab/wikisearch/pkg/metrics"
	"github.com/searchlab/wikisearch/pkg/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil {
		slog.Error("index build failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(shutdownCtx)
		}()
	}

	corpusFile, err := os.Open(cfg.Paths.Corpus)
	if err != nil {
		return apperrors.Newf(apperrors.ErrCorpusUnreadable, 1, "%s: %v", cfg.Paths.Corpus, err)
	}
	defer corpusFile.Close()

	// the stemmed stream supersedes the raw one when both exist
	tokensPath := cfg.Paths.StemTokensFile()
	if _, err := os.Stat(tokensPath); err != nil {
		tokensPath = cfg.Paths.TokensFile()
	}
	tokensFile, err := os.Open(tokensPath)
	if err != nil {
		return apperrors.Newf(apperrors.ErrTokenStreamUnreadable, 1, "%s: %v", tokensPath, err)
	}
	defer tokensFile.Close()

	slog.Info("starting index build",
		"corpus", cfg.Paths.Corpus,
		"tokens", tokensPath,
	)

	direct, inv, buildStats, err := index.Build(ctx,
		corpus.NewReader(corpusFile),
		tokenizer.NewStreamReader(tokensFile),
	)
	if err != nil {
		return err
	}

	// both tables are complete in memory; only now touch the output files
	if err := codec.WriteDirect(cfg.Paths.DirectIndexFile(), direct); err != nil {
		return apperrors.Newf(apperrors.ErrIndexWrite, 1, "direct index: %v", err)
	}
	if err := codec.WriteInverted(cfg.Paths.InvertedIndexFile(), inv); err != nil {
		return apperrors.Newf(apperrors.ErrIndexWrite, 1, "inverted index: %v", err)
	}
	slog.Info("index files written",
		"direct", cfg.Paths.DirectIndexFile(),
		"inverted", cfg.Paths.InvertedIndexFile(),
	)

	if m != nil {
		m.DocsIndexedTotal.Add(float64(buildStats.Documents))
		m.TokensConsumedTotal.Add(float64(buildStats.Tokens))
		m.DuplicateDocsTotal.Add(float64(buildStats.DuplicateDocIDs))
		m.VocabularySize.Set(float64(buildStats.Vocabulary))
		m.BuildSeconds.Set(buildStats.Elapsed.Seconds())
	}

	sinks := stats.MultiSink{stats.NewLogSink()}
	if cfg.Stats.PersistToPostgres {
		client, err := postgres.New(cfg.Postgres)
		if err != nil {
			slog.Warn("postgres unavailable, build stats not persisted", "error", err)
		} else {
			defer client.Close()
			sinks = append(sinks, stats.NewPostgresSink(client))
		}
	}
	// stats are observational: a sink failure never fails the build
	if err := sinks.Record(ctx, buildStats); err != nil {
		slog.Warn("recording build stats failed", "error", err)
	}
	return nil
}
