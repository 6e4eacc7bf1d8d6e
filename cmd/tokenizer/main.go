package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/searchlab/wikisearch/internal/corpus"
	"github.com/searchlab/wikisearch/internal/stemmer"
	"github.com/searchlab/wikisearch/internal/tokenizer"
	"github.com/searchlab/wikisearch/pkg/config"
	apperrors "github.com/searchlab/wikisearch/pkg/errors"
	"github.com/searchlab/wikisearch/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	stem := flag.Bool("stem", false, "apply the stemmer and emit tokens_stem.tsv")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg, *stem); err != nil {
		slog.Error("tokenization failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(cfg *config.Config, stem bool) error {
	start := time.Now()

	corpusFile, err := os.Open(cfg.Paths.Corpus)
	if err != nil {
		return apperrors.Newf(apperrors.ErrCorpusUnreadable, 1, "%s: %v", cfg.Paths.Corpus, err)
	}
	defer corpusFile.Close()

	if err := os.MkdirAll(cfg.Paths.TokensDir, 0755); err != nil {
		return fmt.Errorf("creating tokens directory: %w", err)
	}
	tokensPath := cfg.Paths.TokensFile()
	if stem {
		tokensPath = cfg.Paths.StemTokensFile()
	}
	tokensFile, err := os.Create(tokensPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tokensPath, err)
	}
	defer tokensFile.Close()
	offsetsFile, err := os.Create(cfg.Paths.DocOffsetsFile())
	if err != nil {
		return fmt.Errorf("creating %s: %w", cfg.Paths.DocOffsetsFile(), err)
	}
	defer offsetsFile.Close()

	w := tokenizer.NewStreamWriter(tokensFile, offsetsFile)
	reader := corpus.NewReader(corpusFile)

	var docs, tokens, tokenRunes int
	var textBytes int64
	scripts := make(map[tokenizer.Script]int)

	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		toks := tokenizer.Tokenize(rec.CleanText)
		if stem {
			for i := range toks {
				toks[i].Term = stemmer.Stem(toks[i].Term)
			}
		}
		if err := w.WriteDocument(rec.DocID.String(), toks); err != nil {
			return err
		}
		docs++
		tokens += len(toks)
		textBytes += int64(len(rec.CleanText))
		for _, tok := range toks {
			scripts[tok.Script]++
			tokenRunes += len([]rune(tok.Term))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	avgLen := 0.0
	if tokens > 0 {
		avgLen = float64(tokenRunes) / float64(tokens)
	}
	slog.Info("tokenization complete",
		"documents", docs,
		"tokens", tokens,
		"avg_token_length", avgLen,
		"text_kb", textBytes/1024,
		"cyrillic_tokens", scripts[tokenizer.ScriptCyrillic],
		"latin_tokens", scripts[tokenizer.ScriptLatin],
		"digit_tokens", scripts[tokenizer.ScriptDigit],
		"stemmed", stem,
		"elapsed", elapsed,
		"tokens_per_second", float64(tokens)/elapsed.Seconds(),
		"output", tokensPath,
	)
	return nil
}
