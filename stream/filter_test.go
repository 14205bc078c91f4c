package stream

import (
	"testing"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/packet"
)

func TestFilterPassThroughSelectsOpenPage(t *testing.T) {
	cfg := config.Config{Mode: config.ModePassThrough, Page: 0x100}
	f := New(cfg)

	hdr := packet.Packet{Kind: packet.KindHeader, Magazine: 1, Header: &packet.Header{Page: 0x00}}
	if _, _, emit, _ := f.Observe(hdr); !emit {
		t.Fatal("a header for the wanted page should be emitted")
	}

	other := packet.Packet{Kind: packet.KindDisplayRow, Magazine: 1, Row: 1}
	if _, _, emit, _ := f.Observe(other); !emit {
		t.Fatal("display rows for the now-open wanted page should be emitted")
	}

	switchAway := packet.Packet{Kind: packet.KindHeader, Magazine: 1, Header: &packet.Header{Page: 0x01}}
	f.Observe(switchAway)
	if _, _, emit, _ := f.Observe(other); emit {
		t.Fatal("display rows should stop being emitted once the magazine's open page changes")
	}
}

func TestFilterSquashFlushesThroughObserve(t *testing.T) {
	cfg := config.Config{Mode: config.ModeSquash, MaxObservations: 1, QuietFrames: 100}
	f := New(cfg)

	f.Observe(packet.Packet{Kind: packet.KindHeader, Magazine: 2, Header: &packet.Header{Page: 0x300}, FrameIndex: 0})
	_, pg, _, flushed := f.Observe(packet.Packet{
		Kind: packet.KindDisplayRow, Magazine: 2, Row: 1,
		Text: displayText("a", true), Confidence: 1, FrameIndex: 1,
	})
	if !flushed {
		t.Fatal("expected a flush at MaxObservations=1")
	}
	if pg.Number != 0x300 {
		t.Errorf("pg.Number = 0x%x, want 0x300", pg.Number)
	}
}

func TestFilterFlushAtEndOfStream(t *testing.T) {
	cfg := config.Config{Mode: config.ModeSquash, MaxObservations: 100, QuietFrames: 1000}
	f := New(cfg)
	f.Observe(packet.Packet{Kind: packet.KindHeader, Magazine: 4, Header: &packet.Header{Page: 0x400}})
	f.Observe(packet.Packet{Kind: packet.KindDisplayRow, Magazine: 4, Row: 1, Text: displayText("a", true), Confidence: 1})

	pages := f.Flush()
	if len(pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1", len(pages))
	}
	if pages[0].Number != 0x400 {
		t.Errorf("pages[0].Number = 0x%x, want 0x400", pages[0].Number)
	}
}
