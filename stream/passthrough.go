package stream

import "github.com/ZXByteman/vhs-teletext/packet"

// passThrough implements ModePassThrough (base spec §4.3, CLI -p NNN):
// emit every packet belonging to whichever magazine currently has page
// want open, dropping all others. "Currently open" is tracked per
// magazine from the most recent header seen, independent of squash's
// accumulation state.
type passThrough struct {
	want        int
	currentPage [9]int // index 1-8; full page number (magazine<<8 | page) of the most recent header.
}

func newPassThrough(want int) *passThrough {
	return &passThrough{want: want}
}

// apply returns pkt, true if it should be emitted.
func (f *passThrough) apply(pkt packet.Packet) (packet.Packet, bool) {
	if pkt.Magazine < 1 || pkt.Magazine > 8 {
		return packet.Packet{}, false
	}
	if pkt.Kind == packet.KindHeader {
		f.currentPage[pkt.Magazine] = pkt.Magazine<<8 | pkt.Header.Page
	}
	if f.currentPage[pkt.Magazine] != f.want {
		return packet.Packet{}, false
	}
	return pkt, true
}
