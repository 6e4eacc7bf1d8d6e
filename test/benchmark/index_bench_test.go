// Package benchmark contains Go benchmarks for the index builder, boolean
// query evaluator, tokenizer, and stemmer, measuring throughput and
// allocation behaviour.
package benchmark

import (
	"fmt"
	"testing"

	"github.com/searchlab/wikisearch/internal/index"
	"github.com/searchlab/wikisearch/internal/searcher/executor"
)

// BenchmarkBuilderAddToken measures per-token insert throughput into the
// in-memory inverted index.
func BenchmarkBuilderAddToken(b *testing.B) {
	builder := index.NewBuilder()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		docID := fmt.Sprintf("doc-%d", i%1000)
		builder.AddToken(docID, fmt.Sprintf("term-%d", i%5000))
	}
}

// BenchmarkBuilderSnapshot measures the cost of materialising sorted posting
// lists from the builder state.
func BenchmarkBuilderSnapshot(b *testing.B) {
	builder := index.NewBuilder()
	for doc := 0; doc < 1000; doc++ {
		docID := fmt.Sprintf("doc-%d", doc)
		builder.AddDocument(docID, "benchmark title", "https://example.org/doc")
		for term := 0; term < 50; term++ {
			builder.AddToken(docID, fmt.Sprintf("term-%d", (doc+term)%500))
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, inv := builder.Snapshot()
		_ = inv
	}
}

func benchIndex(docs, termsPerDoc int) index.InvertedIndex {
	builder := index.NewBuilder()
	for doc := 0; doc < docs; doc++ {
		docID := fmt.Sprintf("doc-%06d", doc)
		for term := 0; term < termsPerDoc; term++ {
			builder.AddToken(docID, fmt.Sprintf("term-%d", (doc+term)%500))
		}
	}
	_, inv := builder.Snapshot()
	return inv
}

// BenchmarkEvaluateIntersection measures two-term AND query latency over
// 10 000 documents.
func BenchmarkEvaluateIntersection(b *testing.B) {
	eval := executor.New(benchIndex(10000, 20))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		results := eval.Evaluate("term-1 term-2 &&")
		_ = results
	}
}

// BenchmarkEvaluateCompound measures a mixed AND/OR/NOT query.
func BenchmarkEvaluateCompound(b *testing.B) {
	eval := executor.New(benchIndex(10000, 20))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		results := eval.Evaluate("term-1 term-2 && term-3 || term-4 !")
		_ = results
	}
}

// BenchmarkEvaluateParallel measures concurrent query throughput; the
// evaluator never mutates the index, so queries share it without locking.
func BenchmarkEvaluateParallel(b *testing.B) {
	eval := executor.New(benchIndex(10000, 20))
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			results := eval.Evaluate("term-1 term-2 &&")
			_ = results
		}
	})
}
