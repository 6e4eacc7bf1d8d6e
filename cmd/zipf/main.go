package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/searchlab/wikisearch/internal/tokenizer"
	"github.com/searchlab/wikisearch/internal/zipf"
	"github.com/searchlab/wikisearch/pkg/config"
	apperrors "github.com/searchlab/wikisearch/pkg/errors"
	"github.com/searchlab/wikisearch/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	topN := flag.Int("top", 50, "number of terms in the top-terms table")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg, *topN); err != nil {
		slog.Error("zipf analysis failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(cfg *config.Config, topN int) error {
	// prefer the stemmed stream, mirroring the index build
	tokensPath := cfg.Paths.StemTokensFile()
	outDir := filepath.Join(cfg.Paths.DataDir, "zipf_stem")
	if _, err := os.Stat(tokensPath); err != nil {
		tokensPath = cfg.Paths.TokensFile()
		outDir = filepath.Join(cfg.Paths.DataDir, "zipf")
	}

	tokensFile, err := os.Open(tokensPath)
	if err != nil {
		return apperrors.Newf(apperrors.ErrTokenStreamUnreadable, 1, "%s: %v", tokensPath, err)
	}
	defer tokensFile.Close()

	freqs, err := zipf.Count(tokenizer.NewStreamReader(tokensFile))
	if err != nil {
		return err
	}
	if len(freqs) == 0 {
		return fmt.Errorf("no terms found in %s", tokensPath)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	rankPath := filepath.Join(outDir, "zipf_rank_freq.tsv")
	topPath := filepath.Join(outDir, "zipf_terms_top.tsv")
	if err := zipf.WriteRankFreq(rankPath, freqs); err != nil {
		return err
	}
	if err := zipf.WriteTop(topPath, freqs, topN); err != nil {
		return err
	}

	slog.Info("zipf analysis complete",
		"tokens_file", tokensPath,
		"vocabulary", len(freqs),
		"rank1_freq", freqs[0].Freq,
		"rank_table", rankPath,
		"top_table", topPath,
	)
	return nil
}
