// Package stats collects index-build statistics and forwards them to
// configured sinks. Stats are observational: they never affect the index
// contents and a sink failure never fails a build.
package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/searchlab/wikisearch/pkg/logger"
)

// BuildStats summarises one full index build.
type BuildStats struct {
	Documents       int
	Tokens          int
	Vocabulary      int
	AvgTermLength   float64
	DuplicateDocIDs int
	SkippedRecords  int
	Elapsed         time.Duration
}

// TokensPerSecond reports build throughput; zero if the build took no
// measurable time.
func (s BuildStats) TokensPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Tokens) / s.Elapsed.Seconds()
}

// Sink records a finished build's statistics somewhere.
type Sink interface {
	Record(ctx context.Context, s BuildStats) error
}

// LogSink writes build statistics to the structured log.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{logger: logger.WithComponent("build-stats")}
}

func (l *LogSink) Record(ctx context.Context, s BuildStats) error {
	l.logger.Info("index build complete",
		"documents", s.Documents,
		"tokens", s.Tokens,
		"vocabulary", s.Vocabulary,
		"avg_term_length", s.AvgTermLength,
		"duplicate_doc_ids", s.DuplicateDocIDs,
		"skipped_records", s.SkippedRecords,
		"elapsed", s.Elapsed,
		"tokens_per_second", s.TokensPerSecond(),
	)
	return nil
}

// MultiSink fans a record out to several sinks; the first error wins but
// all sinks are attempted.
type MultiSink []Sink

func (m MultiSink) Record(ctx context.Context, s BuildStats) error {
	var firstErr error
	for _, sink := range m {
		if err := sink.Record(ctx, s); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
