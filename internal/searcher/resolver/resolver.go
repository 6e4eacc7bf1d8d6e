// Package resolver maps winning doc_ids back to their display metadata.
package resolver

import (
	"log/slog"

	"github.com/searchlab/wikisearch/internal/index"
	"github.com/searchlab/wikisearch/pkg/logger"
)

type Resolver struct {
	byID   map[string]index.DocumentRecord
	logger *slog.Logger
}

// New builds the doc_id lookup table once, so resolving each result is an
// amortised O(1) map hit rather than a scan of the direct index.
func New(direct index.DirectIndex) *Resolver {
	byID := make(map[string]index.DocumentRecord, len(direct))
	for _, rec := range direct {
		// on duplicate doc_ids the first record wins, matching corpus order
		if _, ok := byID[rec.DocID]; !ok {
			byID[rec.DocID] = rec
		}
	}
	return &Resolver{
		byID:   byID,
		logger: logger.WithComponent("result-resolver"),
	}
}

// Resolve returns the records for ids, preserving their order. An id with
// no direct-index entry is dropped; if the build invariants hold this never
// happens, so it is logged.
func (r *Resolver) Resolve(ids index.PostingList) []index.DocumentRecord {
	out := make([]index.DocumentRecord, 0, len(ids))
	for _, id := range ids {
		rec, ok := r.byID[id]
		if !ok {
			r.logger.Warn("doc_id missing from direct index", "doc_id", id)
			continue
		}
		out = append(out, rec)
	}
	return out
}
