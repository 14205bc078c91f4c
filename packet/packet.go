// Package packet implements the Packet Decoder stage: turning one
// rawline.Line into a typed teletext packet, applying Hamming(8,4)
// error correction to addressing/header fields and odd-parity checking to
// display text (base spec §4.2).
package packet

import "github.com/ZXByteman/vhs-teletext/rawline"

// Kind tags the variant a Packet holds, following the row-number ranges
// defined by ETS 300 706.
type Kind int

const (
	// KindUnknown covers rows this decoder does not interpret; the packet
	// is still addressed but carries no decoded payload (base spec §4.2
	// "Unknown pass-through").
	KindUnknown Kind = iota
	// KindHeader is row 0: page number, subcode, control bits and a
	// 32-character header text.
	KindHeader
	// KindDisplayRow is rows 1-24: 40 characters of page text.
	KindDisplayRow
	// KindPageEnhancement covers the enhancement/DRCS designation rows
	// (25, 26, 28, 29, 31 and row 30 outside magazine 8).
	KindPageEnhancement
	// KindFastext is row 27: the six fastext/link page numbers.
	KindFastext
	// KindBroadcast is row 30 of magazine 8: broadcast service data
	// (date/time, network identification).
	KindBroadcast
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindDisplayRow:
		return "display_row"
	case KindPageEnhancement:
		return "page_enhancement"
	case KindFastext:
		return "fastext"
	case KindBroadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

// Packet is a decoded teletext packet: an addressed row carrying one of
// several payload kinds, plus the provenance (frame index, confidence)
// needed by the Stream Filter stage to vote between repeated transmissions.
type Packet struct {
	Magazine int // 1-8
	Row      int // 0-31
	Kind     Kind

	FrameIndex uint64
	Confidence float64 // base spec §4.1: minimum byte confidence on the line.

	Header      *Header
	Text        *DisplayText
	Enhancement *Enhancement
	Fastext     *Fastext
	Broadcast   *Broadcast

	// HammingErrors counts uncorrectable Hamming errors encountered decoding
	// the payload. An uncorrectable address makes Decode return
	// ErrBadAddress instead of a Packet.
	HammingErrors int

	Raw *rawline.Line
}
