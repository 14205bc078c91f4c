package main

import (
	"fmt"
	"os"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/packet"
	"github.com/ZXByteman/vhs-teletext/page"
	"github.com/ZXByteman/vhs-teletext/pipeline"
)

// headerPrintingSink wraps another Sink and, when cfg.PrintHeaders is set,
// echoes every Nth header packet's text to stderr as a human-readable
// progress trace (base spec §6 -H/-S).
type headerPrintingSink struct {
	pipeline.Sink
	lc   config.LineConfig
	cfg  config.Config
	seen uint64
}

func (s *headerPrintingSink) WritePacket(pkt packet.Packet) error {
	if s.cfg.PrintHeaders && pkt.Kind == packet.KindHeader && pkt.Header != nil {
		if s.seen%(s.cfg.SkipFrames+1) == 0 {
			fmt.Fprintf(os.Stderr, "frame %d mag %d page %03x: %s\n",
				pkt.FrameIndex, pkt.Magazine, pkt.Header.Page, string(pkt.Header.Text[:]))
		}
		s.seen++
	}
	return s.Sink.WritePacket(pkt)
}

func (s *headerPrintingSink) WritePage(pg *page.Page) error {
	return s.Sink.WritePage(pg)
}
