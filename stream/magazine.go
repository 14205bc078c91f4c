package stream

import (
	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/packet"
	"github.com/ZXByteman/vhs-teletext/page"
)

// subpageBag is the accumulated vote state for one (magazine, subpage)
// combination (Data Model §3 "SubpageSet": a map from subpage number to
// accumulated Page votes that collapses to one Page on flush).
type subpageBag struct {
	header       *packet.Header
	rows         [25]*rowVote
	observations int
	lastFrame    uint64
}

// magazine tracks one of the eight teletext magazines' (1-8) squash state.
// Broadcast teletext rotates a page's subpages (1, 2, 1, 2, ...); each
// subpage accumulates independently in its own bag so a rotation away and
// back continues the earlier vote rather than starting over.
type magazine struct {
	owner    int // magazine number, 1-8.
	subpages map[uint16]*subpageBag
	current  uint16 // subpage named by the most recently seen header.

	lastFrame uint64
	pending   []*page.Page // flushed pages awaiting delivery via observe/flush.

	maxObservations int
	quietFrames     uint64
}

func newMagazine(owner int, cfg config.Config) *magazine {
	return &magazine{
		owner:           owner,
		subpages:        make(map[uint16]*subpageBag),
		maxObservations: cfg.MaxObservations,
		quietFrames:     uint64(cfg.QuietFrames),
	}
}

// observe folds pkt into the magazine's accumulation and returns a flushed
// Page whenever the flush policy fires: a subpage's observation cap is
// reached, a header for a different page arrives (every subpage held for
// the previous page is flushed), or a quiet period (base spec §4.3 T_quiet)
// has elapsed since the last packet this magazine saw, in which case every
// subpage currently accumulated is flushed. Pages flushed in excess of what a single call can
// return are queued and drained by subsequent calls (or by flush at EOF).
func (m *magazine) observe(pkt packet.Packet) (flushed *page.Page, didFlush bool) {
	if len(m.subpages) > 0 && pkt.FrameIndex > m.lastFrame && pkt.FrameIndex-m.lastFrame > m.quietFrames {
		m.flushAll()
	}

	switch pkt.Kind {
	case packet.KindHeader:
		sp := pkt.Header.Subpage
		// A header for a different page closes every bag held for the
		// previous page on this magazine.
		for held, b := range m.subpages {
			if b.header != nil && b.header.Page != pkt.Header.Page {
				if pg, ok := m.flushSubpage(held); ok {
					m.pending = append(m.pending, pg)
				}
			}
		}
		bag := m.subpages[sp]
		if bag == nil {
			bag = &subpageBag{}
			m.subpages[sp] = bag
		}
		bag.header = pkt.Header
		bag.lastFrame = pkt.FrameIndex
		m.current = sp
		m.lastFrame = pkt.FrameIndex

	case packet.KindDisplayRow:
		bag := m.subpages[m.current]
		if bag == nil || pkt.Row < 1 || pkt.Row > 24 {
			break
		}
		if bag.rows[pkt.Row] == nil {
			bag.rows[pkt.Row] = newRowVote()
		}
		bag.rows[pkt.Row].add(pkt.Text)
		bag.observations++
		bag.lastFrame = pkt.FrameIndex
		m.lastFrame = pkt.FrameIndex
		if bag.observations >= m.maxObservations {
			if pg, ok := m.flushSubpage(m.current); ok {
				m.pending = append(m.pending, pg)
			}
		}
	}

	return m.popPending()
}

// flush forces everything still accumulated out, for use at stream end
// (base spec §4.3: a partial accumulation at EOF is still delivered, not
// discarded). Callers must keep calling it until didFlush is false to
// drain every subpage, not just one.
func (m *magazine) flush() (*page.Page, bool) {
	if pg, ok := m.popPending(); ok {
		return pg, ok
	}
	m.flushAll()
	return m.popPending()
}

// flushSubpage packages sp's accumulated votes into a Page and removes its
// bag. It returns false if nothing was accumulated for sp.
func (m *magazine) flushSubpage(sp uint16) (*page.Page, bool) {
	bag := m.subpages[sp]
	if bag == nil || bag.header == nil {
		delete(m.subpages, sp)
		return nil, false
	}

	pg := page.New(m.owner, bag.header)
	pg.LastUpdate = bag.lastFrame
	for row, rv := range bag.rows {
		if rv == nil {
			continue
		}
		text := rv.result()
		pg.Apply(packet.Packet{
			Kind:       packet.KindDisplayRow,
			Row:        row,
			Text:       &text,
			FrameIndex: bag.lastFrame,
		})
	}

	delete(m.subpages, sp)
	return pg, true
}

// flushAll drains every subpage bag this magazine is holding into pending.
func (m *magazine) flushAll() {
	for sp := range m.subpages {
		if pg, ok := m.flushSubpage(sp); ok {
			m.pending = append(m.pending, pg)
		}
	}
}

func (m *magazine) popPending() (*page.Page, bool) {
	if len(m.pending) == 0 {
		return nil, false
	}
	pg := m.pending[0]
	m.pending = m.pending[1:]
	return pg, true
}
