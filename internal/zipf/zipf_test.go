package zipf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchlab/wikisearch/internal/tokenizer"
)

func TestCountOrdersByFrequency(t *testing.T) {
	stream := "d1\t0\tdog\n" +
		"d1\t1\tcat\n" +
		"d2\t0\tdog\n" +
		"d2\t1\tdog\n" +
		"d2\t2\tbird\n" +
		"d3\t0\tcat\n"
	freqs, err := Count(tokenizer.NewStreamReader(strings.NewReader(stream)))
	require.NoError(t, err)

	assert.Equal(t, []TermFreq{
		{Term: "dog", Freq: 3},
		{Term: "cat", Freq: 2},
		{Term: "bird", Freq: 1},
	}, freqs)
}

func TestCountTiesBreakByTerm(t *testing.T) {
	stream := "d1\t0\tzebra\nd1\t1\tapple\n"
	freqs, err := Count(tokenizer.NewStreamReader(strings.NewReader(stream)))
	require.NoError(t, err)
	assert.Equal(t, "apple", freqs[0].Term)
	assert.Equal(t, "zebra", freqs[1].Term)
}

func TestWriteRankFreq(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zipf_rank_freq.tsv")
	freqs := []TermFreq{
		{Term: "dog", Freq: 10},
		{Term: "cat", Freq: 5},
	}
	require.NoError(t, WriteRankFreq(path, freqs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank\tfreq\tlog10_rank\tlog10_freq\tzipf_freq", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1\t10\t"))
	// rank 2 expectation is C/rank = 10/2
	assert.True(t, strings.HasSuffix(lines[2], "\t5"))
}

func TestWriteTopLimitsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zipf_terms_top.tsv")
	freqs := []TermFreq{
		{Term: "a", Freq: 3},
		{Term: "b", Freq: 2},
		{Term: "c", Freq: 1},
	}
	require.NoError(t, WriteTop(path, freqs, 2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1\ta\t3", lines[1])
	assert.Equal(t, "2\tb\t2", lines[2])
}

func TestWriteRankFreqEmpty(t *testing.T) {
	err := WriteRankFreq(filepath.Join(t.TempDir(), "out.tsv"), nil)
	assert.Error(t, err)
}
