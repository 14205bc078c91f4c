package stream

import (
	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/packet"
	"github.com/ZXByteman/vhs-teletext/page"
)

// Filter is the Stream Filter stage (base spec §4.3): it consumes decoded
// packets and, depending on Config.Mode, either passes through packets for
// one selected page or accumulates and flushes squashed pages.
type Filter struct {
	mode config.Mode

	pass      *passThrough
	magazines [9]*magazine // index 1-8.
}

// New builds a Filter for cfg.Mode.
func New(cfg config.Config) *Filter {
	f := &Filter{mode: cfg.Mode}
	switch cfg.Mode {
	case config.ModeRaw:
		// No state to build: every packet is emitted as-is.
	case config.ModePassThrough:
		f.pass = newPassThrough(int(cfg.Page))
	case config.ModeSquash:
		for m := 1; m <= 8; m++ {
			f.magazines[m] = newMagazine(m, cfg)
		}
	}
	return f
}

// Observe feeds one packet to the filter. In pass-through mode it returns
// the packet unchanged when it should be emitted. In squash mode it
// returns a completed Page whenever that magazine's flush policy fires;
// individual packets are never emitted directly.
func (f *Filter) Observe(pkt packet.Packet) (out packet.Packet, pg *page.Page, emit bool, flushed bool) {
	switch f.mode {
	case config.ModeRaw:
		return pkt, nil, true, false
	case config.ModePassThrough:
		p, ok := f.pass.apply(pkt)
		return p, nil, ok, false
	case config.ModeSquash:
		if pkt.Magazine < 1 || pkt.Magazine > 8 {
			return packet.Packet{}, nil, false, false
		}
		pg, ok := f.magazines[pkt.Magazine].observe(pkt)
		return packet.Packet{}, pg, false, ok
	default:
		return packet.Packet{}, nil, false, false
	}
}

// Flush forces every magazine's pending accumulation out, for use at
// stream end (base spec §4.3: a partial accumulation at EOF is still
// delivered, not discarded). It is a no-op in pass-through mode.
func (f *Filter) Flush() []*page.Page {
	var out []*page.Page
	if f.mode != config.ModeSquash {
		return out
	}
	for m := 1; m <= 8; m++ {
		if f.magazines[m] == nil {
			continue
		}
		for {
			pg, ok := f.magazines[m].flush()
			if !ok {
				break
			}
			out = append(out, pg)
		}
	}
	return out
}
