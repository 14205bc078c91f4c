// Package page assembles Packet Decoder output into complete teletext
// pages: one Header plus up to 24 display Rows, each carrying its own
// freshness and confidence (base spec §4.3, §4.4).
package page

import "github.com/ZXByteman/vhs-teletext/packet"

// Row is one display row (1-24) of a Page.
type Row struct {
	Text       [40]byte
	Reliable   [40]bool
	Confidence [40]float64
	FrameIndex uint64
	Present    bool
}

// Page is the accumulated state of one magazine/page/subpage combination.
type Page struct {
	Magazine int
	Number   int
	Subpage  uint16

	Header *packet.Header
	Rows   [25]Row // index 0 unused; rows 1-24 hold display text.

	LastUpdate uint64
}

// New starts a Page from a decoded header packet.
func New(magazine int, h *packet.Header) *Page {
	return &Page{Magazine: magazine, Number: h.Page, Subpage: h.Subpage, Header: h}
}

// Apply merges pkt into the page. Display-row packets for rows outside
// 1-24 (addressing errors notwithstanding) are ignored.
func (pg *Page) Apply(pkt packet.Packet) {
	pg.LastUpdate = pkt.FrameIndex
	switch pkt.Kind {
	case packet.KindHeader:
		pg.Header = pkt.Header
		pg.Number = pkt.Header.Page
		pg.Subpage = pkt.Header.Subpage
	case packet.KindDisplayRow:
		if pkt.Row < 1 || pkt.Row > 24 {
			return
		}
		pg.Rows[pkt.Row] = Row{
			Text:       pkt.Text.Chars,
			Reliable:   pkt.Text.Reliable,
			Confidence: pkt.Text.Confidence,
			FrameIndex: pkt.FrameIndex,
			Present:    true,
		}
	}
}
