package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/searchlab/wikisearch/internal/index"
	apperrors "github.com/searchlab/wikisearch/pkg/errors"
)

// maxFieldBytes bounds any single length prefix. A corrupt file must fail
// decoding instead of driving a multi-gigabyte allocation.
const maxFieldBytes = 1 << 30

// maxPostingPrealloc bounds the capacity hint taken from an on-disk posting
// count. The count itself may legitimately be large, but it is untrusted
// until that many postings have actually been decoded, so bigger lists grow
// by appending instead.
const maxPostingPrealloc = 64 << 10

// decoder reads the length-prefix primitives. atRecordStart distinguishes a
// clean end-of-file between records from truncation inside one.
type decoder struct {
	r    *bufio.Reader
	name string
	buf  [8]byte
}

func (d *decoder) readUint(atRecordStart bool) (uint64, bool, error) {
	_, err := io.ReadFull(d.r, d.buf[:])
	if err != nil {
		if atRecordStart && errors.Is(err, io.EOF) {
			return 0, true, nil
		}
		return 0, false, d.truncated(err)
	}
	return binary.LittleEndian.Uint64(d.buf[:]), false, nil
}

func (d *decoder) readString(atRecordStart bool) (string, bool, error) {
	n, eof, err := d.readUint(atRecordStart)
	if err != nil || eof {
		return "", eof, err
	}
	if n > maxFieldBytes {
		return "", false, apperrors.Newf(apperrors.ErrIndexCorrupt, 1,
			"%s: implausible field length %d", d.name, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", false, d.truncated(err)
	}
	return string(buf), false, nil
}

func (d *decoder) truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperrors.Newf(apperrors.ErrIndexCorrupt, 1, "%s: truncated record", d.name)
	}
	return fmt.Errorf("reading %s: %w", d.name, err)
}

// ReadDirect loads the direct index from path, reproducing the exact
// sequence the builder persisted.
func ReadDirect(path string) (index.DirectIndex, error) {
	f, d, err := openDecoder(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var direct index.DirectIndex
	for {
		docID, eof, err := d.readString(true)
		if err != nil {
			return nil, err
		}
		if eof {
			return direct, nil
		}
		title, _, err := d.readString(false)
		if err != nil {
			return nil, err
		}
		url, _, err := d.readString(false)
		if err != nil {
			return nil, err
		}
		direct = append(direct, index.DocumentRecord{DocID: docID, Title: title, URL: url})
	}
}

// ReadInverted loads the inverted index from path.
func ReadInverted(path string) (index.InvertedIndex, error) {
	f, d, err := openDecoder(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inv := make(index.InvertedIndex)
	for {
		term, eof, err := d.readString(true)
		if err != nil {
			return nil, err
		}
		if eof {
			return inv, nil
		}
		count, _, err := d.readUint(false)
		if err != nil {
			return nil, err
		}
		if count > maxFieldBytes {
			return nil, apperrors.Newf(apperrors.ErrIndexCorrupt, 1,
				"%s: implausible posting count %d for term %q", d.name, count, term)
		}
		prealloc := count
		if prealloc > maxPostingPrealloc {
			prealloc = maxPostingPrealloc
		}
		postings := make(index.PostingList, 0, prealloc)
		for i := uint64(0); i < count; i++ {
			docID, _, err := d.readString(false)
			if err != nil {
				return nil, err
			}
			postings = append(postings, docID)
		}
		inv[term] = postings
	}
}

func openDecoder(path string) (*os.File, *decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperrors.Newf(apperrors.ErrIndexNotFound, 1, "%s", path)
		}
		return nil, nil, fmt.Errorf("opening index file %s: %w", path, err)
	}
	return f, &decoder{
		r:    bufio.NewReaderSize(f, 256<<10),
		name: filepath.Base(path),
	}, nil
}
