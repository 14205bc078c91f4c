// Package t42 reads and writes the ".t42" container: a flat concatenation
// of 42-byte teletext packet records with no framing of its own, valid iff
// its length is a multiple of 42 (base spec §6).
package t42

import (
	"errors"
	"io"

	pkgerrors "github.com/pkg/errors"

	"github.com/ZXByteman/vhs-teletext/rawline"
)

// RecordSize is the fixed size of one .t42 record: the 42 data bytes of a
// teletext line, with no confidence or frame-index metadata (those are
// internal to this pipeline and do not survive the .t42 interchange
// format).
const RecordSize = rawline.Size

// ErrInvalidLength is returned when a .t42 stream's length is not a
// multiple of RecordSize.
var ErrInvalidLength = errors.New("t42: length is not a multiple of 42 bytes")

// Reader reads consecutive 42-byte records from a .t42 stream.
type Reader struct {
	r    io.Reader
	next uint64
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// Read returns the next record's 42 bytes and a synthesized frame index
// (the record's ordinal position), or io.EOF once the stream is exhausted.
// It returns ErrInvalidLength if the stream ends partway through a record.
func (r *Reader) Read() ([RecordSize]byte, uint64, error) {
	var buf [RecordSize]byte
	n, err := io.ReadFull(r.r, buf[:])
	switch {
	case err == io.EOF && n == 0:
		return buf, 0, io.EOF
	case err == io.ErrUnexpectedEOF:
		return buf, 0, pkgerrors.Wrapf(ErrInvalidLength, "short read of %d bytes", n)
	case err != nil:
		return buf, 0, pkgerrors.Wrap(err, "t42: read record")
	}
	idx := r.next
	r.next++
	return buf, idx, nil
}

// ReadAll validates and reads every record in r, returning ErrInvalidLength
// if the total length read is not a multiple of RecordSize.
func ReadAll(r io.Reader) ([][RecordSize]byte, error) {
	var out [][RecordSize]byte
	rr := NewReader(r)
	for {
		rec, _, err := rr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Writer appends 42-byte records to a .t42 stream.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Write appends one record.
func (w *Writer) Write(record [RecordSize]byte) error {
	n, err := w.w.Write(record[:])
	if err != nil {
		return pkgerrors.Wrap(err, "t42: write record")
	}
	if n != RecordSize {
		return pkgerrors.Errorf("t42: short write (%d of %d bytes)", n, RecordSize)
	}
	return nil
}
