// Package zipf derives term-frequency rank tables from the token stream,
// for checking how closely the corpus follows Zipf's law.
package zipf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/searchlab/wikisearch/internal/tokenizer"
)

// TermFreq is one vocabulary entry with its total occurrence count.
type TermFreq struct {
	Term string
	Freq uint64
}

// Count aggregates term frequencies from a token stream and returns them
// ordered by descending frequency, ties broken by ascending term.
func Count(r *tokenizer.StreamReader) ([]TermFreq, error) {
	counts := make(map[string]uint64)
	for {
		entry, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		counts[entry.Term]++
	}

	freqs := make([]TermFreq, 0, len(counts))
	for term, freq := range counts {
		freqs = append(freqs, TermFreq{Term: term, Freq: freq})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Freq != freqs[j].Freq {
			return freqs[i].Freq > freqs[j].Freq
		}
		return freqs[i].Term < freqs[j].Term
	})
	return freqs, nil
}

// WriteRankFreq writes the full rank/frequency table. The zipf_freq column
// is the expected frequency C/rank where C is the rank-1 frequency.
func WriteRankFreq(path string, freqs []TermFreq) error {
	if len(freqs) == 0 {
		return fmt.Errorf("no terms to report")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 256<<10)
	fmt.Fprintln(w, "rank\tfreq\tlog10_rank\tlog10_freq\tzipf_freq")
	c := float64(freqs[0].Freq)
	for i, tf := range freqs {
		rank := i + 1
		fmt.Fprintf(w, "%d\t%d\t%g\t%g\t%g\n",
			rank,
			tf.Freq,
			math.Log10(float64(rank)),
			math.Log10(float64(tf.Freq)),
			c/float64(rank),
		)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// WriteTop writes the top-n terms table.
func WriteTop(path string, freqs []TermFreq, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "rank\tterm\tfreq")
	for i, tf := range freqs {
		if i >= n {
			break
		}
		fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, tf.Term, tf.Freq)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
