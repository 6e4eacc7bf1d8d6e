// Package corpus reads the line-delimited JSON corpus produced by the
// crawler export. Each line describes one document.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/searchlab/wikisearch/pkg/logger"
)

// maxLineBytes bounds a single corpus line; clean_text of large articles
// can run to several megabytes.
const maxLineBytes = 16 << 20

// Record is one corpus document.
type Record struct {
	DocID     DocID  `json:"doc_id"`
	Title     string `json:"title"`
	URL       string `json:"normalized_url"`
	CleanText string `json:"clean_text"`
}

// DocID tolerates both string and numeric doc_id values in the corpus.
type DocID string

func (d *DocID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DocID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("doc_id is neither string nor number: %w", err)
	}
	*d = DocID(n.String())
	return nil
}

func (d DocID) String() string { return string(d) }

// Reader iterates corpus records. Malformed lines are logged and skipped;
// only an underlying read failure is reported as an error.
type Reader struct {
	sc      *bufio.Scanner
	logger  *slog.Logger
	line    int
	skipped int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	return &Reader{
		sc:     sc,
		logger: logger.WithComponent("corpus"),
	}
}

// Next returns the next well-formed record. It returns io.EOF when the
// stream is exhausted.
func (r *Reader) Next() (Record, error) {
	for r.sc.Scan() {
		r.line++
		raw := r.sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			r.skipped++
			r.logger.Warn("skipping malformed corpus line",
				"line", r.line,
				"error", err,
			)
			continue
		}
		if rec.DocID == "" {
			r.skipped++
			r.logger.Warn("skipping corpus line without doc_id", "line", r.line)
			continue
		}
		return rec, nil
	}
	if err := r.sc.Err(); err != nil {
		return Record{}, fmt.Errorf("reading corpus at line %d: %w", r.line+1, err)
	}
	return Record{}, io.EOF
}

// Skipped reports how many malformed lines were dropped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}
