package sample

import (
	"bytes"
	"io"
	"testing"
)

func TestVBISourceFramesByLength(t *testing.T) {
	const n = 4
	data := make([]byte, n*3)
	for i := range data {
		data[i] = byte(i)
	}
	src := NewVBISource(bytes.NewReader(data), n)

	for want := 0; want < 3; want++ {
		f, err := src.Next()
		if err != nil {
			t.Fatalf("Next() frame %d: %v", want, err)
		}
		if f.Index != uint64(want) {
			t.Errorf("frame %d: Index = %d, want %d", want, f.Index, want)
		}
		if len(f.Samples) != n {
			t.Errorf("frame %d: len(Samples) = %d, want %d", want, len(f.Samples), n)
		}
	}
	if _, err := src.Next(); err != io.EOF {
		t.Fatalf("Next() after last frame: %v, want io.EOF", err)
	}
}

func TestVBISourceEmptyStreamIsEOF(t *testing.T) {
	src := NewVBISource(bytes.NewReader(nil), 16)
	if _, err := src.Next(); err != io.EOF {
		t.Fatalf("Next() on empty stream: %v, want io.EOF", err)
	}
}

func TestVBISourceTruncatedTrailingFrame(t *testing.T) {
	src := NewVBISource(bytes.NewReader(make([]byte, 5)), 16)
	if _, err := src.Next(); err != ErrShortFrame {
		t.Fatalf("Next() on truncated frame: %v, want ErrShortFrame", err)
	}
}

func TestVBISourceCloseClosesUnderlyingCloser(t *testing.T) {
	c := &closeTrackingReader{Reader: bytes.NewReader(nil)}
	src := NewVBISource(c, 4)
	if err := src.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !c.closed {
		t.Error("underlying io.Closer was not closed")
	}
}

type closeTrackingReader struct {
	io.Reader
	closed bool
}

func (c *closeTrackingReader) Close() error {
	c.closed = true
	return nil
}
