// Package searcher evaluates a query file against loaded index tables and
// writes the result report.
package searcher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/searchlab/wikisearch/internal/index"
	"github.com/searchlab/wikisearch/internal/searcher/executor"
	"github.com/searchlab/wikisearch/internal/searcher/resolver"
	"github.com/searchlab/wikisearch/pkg/logger"
	"github.com/searchlab/wikisearch/pkg/metrics"
)

// Session holds the read-only tables for one run of the searcher. The
// tables are never mutated after load, so queries may evaluate concurrently
// without locking.
type Session struct {
	eval        *executor.Evaluator
	res         *resolver.Resolver
	metrics     *metrics.Metrics
	logger      *slog.Logger
	parallelism int
}

// New creates a Session. m may be nil when metrics are disabled;
// parallelism bounds concurrent query evaluation and defaults to 1.
func New(direct index.DirectIndex, inv index.InvertedIndex, m *metrics.Metrics, parallelism int) *Session {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Session{
		eval:        executor.New(inv),
		res:         resolver.New(direct),
		metrics:     m,
		logger:      logger.WithComponent("searcher"),
		parallelism: parallelism,
	}
}

// Run evaluates every non-blank line of r as one boolean query and writes
// the per-query reports to w in input order. Queries are independent, so
// they are evaluated concurrently; each individual query is a strictly
// sequential stack evaluation.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	var queries []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4<<10), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		queries = append(queries, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading query file: %w", err)
	}

	reports := make([]string, len(queries))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			reports[i] = s.answer(query)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, report := range reports {
		if _, err := bw.WriteString(report); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	s.logger.Info("query file evaluated", "queries", len(queries))
	return nil
}

// answer evaluates one query and renders its report block.
func (s *Session) answer(query string) string {
	start := time.Now()
	ids := s.eval.Evaluate(query)
	records := s.res.Resolve(ids)

	if s.metrics != nil {
		s.metrics.QueryLatency.Observe(time.Since(start).Seconds())
		s.metrics.QueryResultsCount.Observe(float64(len(records)))
		if len(records) == 0 {
			s.metrics.QueriesTotal.WithLabelValues("zero_result").Inc()
		} else {
			s.metrics.QueriesTotal.WithLabelValues("hit").Inc()
		}
	}

	var b strings.Builder
	if len(records) == 0 {
		fmt.Fprintf(&b, "no results for query %q\n", query)
	} else {
		for _, rec := range records {
			fmt.Fprintf(&b, "doc_id: %s | title: %s | url: %s\n", rec.DocID, rec.Title, rec.URL)
		}
	}
	b.WriteString("\n")
	return b.String()
}
