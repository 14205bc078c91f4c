package packet

import "github.com/ZXByteman/vhs-teletext/rawline"

// Decode turns one recovered line into an addressed, typed Packet. It
// returns ErrBadAddress if the line's two address bytes carry an
// uncorrectable Hamming error, since the packet cannot be reliably routed
// to a magazine/row in that case.
func Decode(line *rawline.Line) (Packet, error) {
	magazine, row, err := decodeAddress(line.Bytes[0], line.Bytes[1])
	if err != nil {
		return Packet{}, err
	}

	p := Packet{
		Magazine:   magazine,
		Row:        row,
		FrameIndex: line.FrameIndex,
		Confidence: line.MinConfidence(),
		Raw:        line,
	}

	switch {
	case row == 0:
		p.Kind = KindHeader
		p.Header = decodeHeader(line.Bytes, line.Confidence)
		p.HammingErrors = p.Header.HammingErrors
	case row >= 1 && row <= 24:
		p.Kind = KindDisplayRow
		p.Text = decodeDisplayRow(line.Bytes, line.Confidence)
	case row == 27:
		p.Kind = KindFastext
		p.Fastext = decodeFastext(line.Bytes)
		p.HammingErrors = p.Fastext.HammingErrors
	case row == 30 && magazine == 8:
		p.Kind = KindBroadcast
		p.Broadcast = decodeBroadcast(line.Bytes)
		p.HammingErrors = p.Broadcast.HammingErrors
	case row == 25 || row == 26 || row == 28 || row == 29 || row == 30 || row == 31:
		p.Kind = KindPageEnhancement
		p.Enhancement = decodeEnhancement(line.Bytes)
		p.HammingErrors = p.Enhancement.HammingErrors
	default:
		p.Kind = KindUnknown
	}

	return p, nil
}
