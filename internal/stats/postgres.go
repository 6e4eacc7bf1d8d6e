package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/searchlab/wikisearch/pkg/logger"
	"github.com/searchlab/wikisearch/pkg/postgres"
	"github.com/searchlab/wikisearch/pkg/resilience"
)

// PostgresSink persists per-build statistics in PostgreSQL so that build
// throughput can be tracked across corpus refreshes.
//
// It requires a `build_stats` table:
//
//	CREATE TABLE build_stats (
//	    id                SERIAL PRIMARY KEY,
//	    recorded_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    documents         BIGINT NOT NULL,
//	    tokens            BIGINT NOT NULL,
//	    vocabulary        BIGINT NOT NULL,
//	    avg_term_length   DOUBLE PRECISION NOT NULL,
//	    duplicate_doc_ids BIGINT NOT NULL,
//	    skipped_records   BIGINT NOT NULL,
//	    elapsed_ms        BIGINT NOT NULL
//	);
type PostgresSink struct {
	client *postgres.Client
	logger *slog.Logger
}

func NewPostgresSink(client *postgres.Client) *PostgresSink {
	return &PostgresSink{
		client: client,
		logger: logger.WithComponent("stats-postgres"),
	}
}

func (p *PostgresSink) Record(ctx context.Context, s BuildStats) error {
	const q = `
		INSERT INTO build_stats
			(documents, tokens, vocabulary, avg_term_length,
			 duplicate_doc_ids, skipped_records, elapsed_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	err := resilience.Retry(ctx, "persist-build-stats", func() error {
		insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_, err := p.client.DB.ExecContext(insertCtx, q,
			s.Documents,
			s.Tokens,
			s.Vocabulary,
			s.AvgTermLength,
			s.DuplicateDocIDs,
			s.SkippedRecords,
			s.Elapsed.Milliseconds(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("persisting build stats: %w", err)
	}
	p.logger.Debug("build stats persisted")
	return nil
}
