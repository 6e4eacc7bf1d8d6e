// Package codec persists the direct and inverted indexes in their binary
// on-disk layout and reads them back.
//
// Both files are a plain concatenation of records. Every integer is a
// little-endian uint64; every string is UTF-8 prefixed by its byte length.
//
//	direct record:   doc_id, title, url        (all length-prefixed)
//	inverted record: term, posting_count, posting_count × doc_id
//
// The doc_id is part of every direct record. Posting lists are written in
// ascending doc_id order, exactly as the builder canonicalised them.
package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/searchlab/wikisearch/internal/index"
)

// encoder wraps a buffered file with the length-prefix primitives.
type encoder struct {
	w   *bufio.Writer
	buf [8]byte
}

func (e *encoder) putUint(v uint64) error {
	binary.LittleEndian.PutUint64(e.buf[:], v)
	_, err := e.w.Write(e.buf[:])
	return err
}

func (e *encoder) putString(s string) error {
	if err := e.putUint(uint64(len(s))); err != nil {
		return err
	}
	_, err := e.w.WriteString(s)
	return err
}

// WriteDirect atomically replaces the direct index file at path. It writes
// to a .tmp sibling first and renames on success, so an aborted build never
// leaves a half-written index behind.
func WriteDirect(path string, direct index.DirectIndex) error {
	return writeAtomic(path, func(e *encoder) error {
		for _, rec := range direct {
			if err := e.putString(rec.DocID); err != nil {
				return err
			}
			if err := e.putString(rec.Title); err != nil {
				return err
			}
			if err := e.putString(rec.URL); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteInverted atomically replaces the inverted index file at path. Terms
// are written in sorted order so serialisation is deterministic.
func WriteInverted(path string, inv index.InvertedIndex) error {
	terms := make([]string, 0, len(inv))
	for term := range inv {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	return writeAtomic(path, func(e *encoder) error {
		for _, term := range terms {
			postings := inv[term]
			if err := e.putString(term); err != nil {
				return err
			}
			if err := e.putUint(uint64(len(postings))); err != nil {
				return err
			}
			for _, docID := range postings {
				if err := e.putString(docID); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeAtomic(path string, emit func(*encoder) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp index file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	e := &encoder{w: bufio.NewWriterSize(f, 256<<10)}
	if err := emit(e); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", filepath.Base(path), err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming index file: %w", err)
	}
	return nil
}
