package pipeline

import (
	"fmt"
	"io"

	"github.com/ausocean/utils/ioext"

	"github.com/ZXByteman/vhs-teletext/packet"
	"github.com/ZXByteman/vhs-teletext/page"
	"github.com/ZXByteman/vhs-teletext/t42"
)

// Sink is where the pipeline's output goes: either individual packets
// (pass-through mode) or completed pages (squash mode).
type Sink interface {
	WritePacket(packet.Packet) error
	WritePage(*page.Page) error
	Close() error
}

// MultiSink fans output out to every sink, mirroring the teacher's
// ioext.MultiWriteCloser pattern for sending one encoded stream to
// multiple destinations at once.
func MultiSink(sinks ...io.WriteCloser) io.WriteCloser {
	return ioext.MultiWriteCloser(sinks...)
}

// T42Sink writes .t42 records: one per packet in pass-through mode, or one
// header record plus one per present display row in squash mode, all
// re-encoded to remain valid teletext packets (base spec §6).
type T42Sink struct {
	w *t42.Writer
	c io.Closer
}

// NewT42Sink returns a Sink writing to w. If w also implements io.Closer,
// Close closes it too.
func NewT42Sink(w io.Writer) *T42Sink {
	s := &T42Sink{w: t42.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		s.c = c
	}
	return s
}

func (s *T42Sink) WritePacket(pkt packet.Packet) error {
	if pkt.Raw == nil {
		return nil
	}
	return s.w.Write(pkt.Raw.Bytes)
}

// WritePage emits one synthesized set of packets for pg: a header record
// followed by every present display row, each re-encoded with Hamming(8,4)
// addressing and odd parity so the resulting .t42 stream is valid teletext
// data that a second decode pass (base spec §4.3 step 3, Testable
// Property #3) can read back.
func (s *T42Sink) WritePage(pg *page.Page) error {
	if pg.Header != nil {
		if err := s.w.Write(packet.EncodeHeader(pg.Magazine, pg.Header)); err != nil {
			return fmt.Errorf("pipeline: write page header: %w", err)
		}
	}
	for row := 1; row <= 24; row++ {
		r := pg.Rows[row]
		if !r.Present {
			continue
		}
		text := &packet.DisplayText{Chars: r.Text, Reliable: r.Reliable, Confidence: r.Confidence}
		if err := s.w.Write(packet.EncodeDisplayRow(pg.Magazine, row, text)); err != nil {
			return fmt.Errorf("pipeline: write page row: %w", err)
		}
	}
	return nil
}

func (s *T42Sink) Close() error {
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}
