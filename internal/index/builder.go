// Package index builds the direct and inverted indexes from a corpus
// metadata stream and a token stream. A build is a single full pass;
// nothing is persisted until both in-memory tables are complete.
//
// The two streams are consumed concurrently, but the output is the same as
// a sequential pass: the direct index mirrors corpus order because all
// metadata goes through one goroutine, and Snapshot sorts every posting
// list, so token arrival order cannot show through.
package index

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/searchlab/wikisearch/internal/corpus"
	"github.com/searchlab/wikisearch/internal/stats"
	"github.com/searchlab/wikisearch/internal/tokenizer"
	"github.com/searchlab/wikisearch/pkg/logger"
)

// Builder accumulates the two index tables during a corpus pass.
//
// Document metadata and token occurrences land in disjoint fields, so the
// two input streams may be consumed by one goroutine each without locking;
// Build relies on that.
type Builder struct {
	logger *slog.Logger

	direct     DirectIndex
	seen       map[string]struct{}
	duplicates int

	terms  map[string]map[string]struct{}
	tokens int
}

func NewBuilder() *Builder {
	return &Builder{
		logger: logger.WithComponent("index-builder"),
		seen:   make(map[string]struct{}),
		terms:  make(map[string]map[string]struct{}),
	}
}

// AddDocument appends a record to the direct index. A duplicate doc_id is a
// data-quality anomaly: it is counted and logged, but the record is still
// appended.
func (b *Builder) AddDocument(docID, title, url string) {
	if _, dup := b.seen[docID]; dup {
		b.duplicates++
		b.logger.Warn("duplicate doc_id in corpus", "doc_id", docID)
	} else {
		b.seen[docID] = struct{}{}
	}
	b.direct = append(b.direct, DocumentRecord{DocID: docID, Title: title, URL: url})
}

// AddToken records one token occurrence. Terms are kept in a keyed map so
// insertion stays amortised O(1) regardless of vocabulary size.
func (b *Builder) AddToken(docID, term string) {
	docs, ok := b.terms[term]
	if !ok {
		docs = make(map[string]struct{})
		b.terms[term] = docs
	}
	docs[docID] = struct{}{}
	b.tokens++
}

// Snapshot produces the final tables. Every posting list comes out
// ascending and duplicate-free, which the query set operations require.
func (b *Builder) Snapshot() (DirectIndex, InvertedIndex) {
	inv := make(InvertedIndex, len(b.terms))
	for term, docs := range b.terms {
		postings := make(PostingList, 0, len(docs))
		for docID := range docs {
			postings = append(postings, docID)
		}
		sort.Strings(postings)
		inv[term] = postings
	}
	return b.direct, inv
}

// Build runs one full pass over both input streams and returns the finished
// tables with their statistics. An unreadable stream fails the whole build;
// malformed individual lines are skipped inside the readers.
func Build(ctx context.Context, meta *corpus.Reader, tokens *tokenizer.StreamReader) (DirectIndex, InvertedIndex, stats.BuildStats, error) {
	start := time.Now()
	b := NewBuilder()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			rec, err := meta.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			b.AddDocument(rec.DocID.String(), rec.Title, rec.URL)
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	})
	g.Go(func() error {
		for {
			entry, err := tokens.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			b.AddToken(entry.DocID, entry.Term)
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	})
	if err := g.Wait(); err != nil {
		return nil, nil, stats.BuildStats{}, err
	}

	direct, inv := b.Snapshot()

	var termRunes int
	for term := range inv {
		termRunes += utf8.RuneCountInString(term)
	}
	avgTermLen := 0.0
	if len(inv) > 0 {
		avgTermLen = float64(termRunes) / float64(len(inv))
	}

	return direct, inv, stats.BuildStats{
		Documents:       len(direct),
		Tokens:          b.tokens,
		Vocabulary:      len(inv),
		AvgTermLength:   avgTermLen,
		DuplicateDocIDs: b.duplicates,
		SkippedRecords:  meta.Skipped() + tokens.Skipped(),
		Elapsed:         time.Since(start),
	}, nil
}
