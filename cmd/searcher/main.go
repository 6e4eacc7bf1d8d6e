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

	"github.com/searchlab/wikisearch/internal/index/codec"
	"github.com/searchlab/wikisearch/internal/searcher"
	"github.com/searchlab/wikisearch/pkg/config"
	apperrors "github.com/searchlab/wikisearch/pkg/errors"
	"github.com/searchlab/wikisearch/pkg/logger"
	"github.com/searchlab/wikisearch/pkg/metrics"
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

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: searcher [-config file] <query-file>")
		os.Exit(apperrors.ExitCode(apperrors.ErrUsage))
	}

	if err := run(cfg, flag.Arg(0)); err != nil {
		slog.Error("search failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(cfg *config.Config, queryPath string) error {
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

	queryFile, err := os.Open(queryPath)
	if err != nil {
		return apperrors.Newf(apperrors.ErrQueryFileUnreadable, 1, "%s: %v", queryPath, err)
	}
	defer queryFile.Close()

	direct, err := codec.ReadDirect(cfg.Paths.DirectIndexFile())
	if err != nil {
		return err
	}
	inv, err := codec.ReadInverted(cfg.Paths.InvertedIndexFile())
	if err != nil {
		return err
	}
	slog.Info("index loaded",
		"documents", len(direct),
		"vocabulary", len(inv),
	)

	session := searcher.New(direct, inv, m, cfg.Search.Parallelism)
	return session.Run(ctx, queryFile, os.Stdout)
}
