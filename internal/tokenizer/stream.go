package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/searchlab/wikisearch/pkg/logger"
)

// Entry is one line of the token stream: a single token occurrence in a
// document.
type Entry struct {
	DocID    string
	Position int
	Term     string
}

// StreamWriter emits the tab-separated token stream and the per-document
// offset index consumed by the index builder and the zipf tool.
type StreamWriter struct {
	tokens  *bufio.Writer
	offsets *bufio.Writer
	written int64
}

func NewStreamWriter(tokens io.Writer, offsets io.Writer) *StreamWriter {
	return &StreamWriter{
		tokens:  bufio.NewWriterSize(tokens, 256<<10),
		offsets: bufio.NewWriterSize(offsets, 32<<10),
	}
}

// WriteDocument appends one document's tokens to the stream and records the
// document's byte offset and token count in the offset index.
func (w *StreamWriter) WriteDocument(docID string, tokens []Token) error {
	start := w.written
	for _, tok := range tokens {
		line := docID + "\t" + strconv.Itoa(tok.Position) + "\t" + tok.Term + "\n"
		n, err := w.tokens.WriteString(line)
		if err != nil {
			return fmt.Errorf("writing token stream: %w", err)
		}
		w.written += int64(n)
	}
	if _, err := fmt.Fprintf(w.offsets, "%s\t%d\t%d\n", docID, start, len(tokens)); err != nil {
		return fmt.Errorf("writing offset index: %w", err)
	}
	return nil
}

func (w *StreamWriter) Flush() error {
	if err := w.tokens.Flush(); err != nil {
		return fmt.Errorf("flushing token stream: %w", err)
	}
	if err := w.offsets.Flush(); err != nil {
		return fmt.Errorf("flushing offset index: %w", err)
	}
	return nil
}

// StreamReader iterates token stream entries. Malformed lines are logged
// and skipped; only an underlying read failure is an error.
type StreamReader struct {
	sc      *bufio.Scanner
	logger  *slog.Logger
	line    int
	skipped int
}

func NewStreamReader(r io.Reader) *StreamReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	return &StreamReader{
		sc:     sc,
		logger: logger.WithComponent("token-stream"),
	}
}

// Next returns the next well-formed entry, or io.EOF at end of stream.
func (r *StreamReader) Next() (Entry, error) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimSuffix(r.sc.Text(), "\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			r.skipped++
			r.logger.Warn("skipping malformed token line", "line", r.line)
			continue
		}
		pos, err := strconv.Atoi(parts[1])
		if err != nil {
			r.skipped++
			r.logger.Warn("skipping token line with bad position", "line", r.line, "error", err)
			continue
		}
		return Entry{DocID: parts[0], Position: pos, Term: parts[2]}, nil
	}
	if err := r.sc.Err(); err != nil {
		return Entry{}, fmt.Errorf("reading token stream at line %d: %w", r.line+1, err)
	}
	return Entry{}, io.EOF
}

// Skipped reports how many malformed lines were dropped so far.
func (r *StreamReader) Skipped() int {
	return r.skipped
}
