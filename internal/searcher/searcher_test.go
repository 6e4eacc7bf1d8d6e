package searcher

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchlab/wikisearch/internal/index"
	"github.com/searchlab/wikisearch/pkg/metrics"
)

func testTables() (index.DirectIndex, index.InvertedIndex) {
	direct := index.DirectIndex{
		{DocID: "d1", Title: "Cats and Dogs", URL: "http://example.org/1"},
		{DocID: "d2", Title: "Birds and Dogs", URL: "http://example.org/2"},
	}
	inv := index.InvertedIndex{
		"cat":  {"d1"},
		"dog":  {"d1", "d2"},
		"bird": {"d2"},
	}
	return direct, inv
}

func TestRunReportsInInputOrder(t *testing.T) {
	direct, inv := testTables()
	s := New(direct, inv, nil, 4)

	queries := "dog cat &&\ncat bird ||\n"
	var out strings.Builder
	require.NoError(t, s.Run(context.Background(), strings.NewReader(queries), &out))

	want := "doc_id: d1 | title: Cats and Dogs | url: http://example.org/1\n" +
		"\n" +
		"doc_id: d1 | title: Cats and Dogs | url: http://example.org/1\n" +
		"doc_id: d2 | title: Birds and Dogs | url: http://example.org/2\n" +
		"\n"
	assert.Equal(t, want, out.String())
}

func TestRunNoResultsLine(t *testing.T) {
	direct, inv := testTables()
	s := New(direct, inv, nil, 1)

	var out strings.Builder
	require.NoError(t, s.Run(context.Background(), strings.NewReader("walrus\n"), &out))
	assert.Equal(t, "no results for query \"walrus\"\n\n", out.String())
}

func TestRunSkipsBlankLines(t *testing.T) {
	direct, inv := testTables()
	s := New(direct, inv, nil, 2)

	queries := "\n\ncat\n   \n"
	var out strings.Builder
	require.NoError(t, s.Run(context.Background(), strings.NewReader(queries), &out))
	assert.Equal(t, "doc_id: d1 | title: Cats and Dogs | url: http://example.org/1\n\n", out.String())
}

func TestRunBinaryDifference(t *testing.T) {
	direct, inv := testTables()
	s := New(direct, inv, nil, 1)

	var out strings.Builder
	require.NoError(t, s.Run(context.Background(), strings.NewReader("dog cat !\n"), &out))
	assert.Equal(t, "doc_id: d2 | title: Birds and Dogs | url: http://example.org/2\n\n", out.String())
}

func TestRunObservesMetrics(t *testing.T) {
	direct, inv := testTables()
	m := metrics.New()
	s := New(direct, inv, m, 2)

	queries := "dog cat &&\nwalrus\n"
	var out strings.Builder
	require.NoError(t, s.Run(context.Background(), strings.NewReader(queries), &out))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues("zero_result")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.QueryLatency))
	assert.Equal(t, 1, testutil.CollectAndCount(m.QueryResultsCount))
}

func TestRunEmptyFile(t *testing.T) {
	direct, inv := testTables()
	s := New(direct, inv, nil, 1)

	var out strings.Builder
	require.NoError(t, s.Run(context.Background(), strings.NewReader(""), &out))
	assert.Empty(t, out.String())
}
