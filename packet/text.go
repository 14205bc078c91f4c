package packet

// DisplayText is 40 characters of page text protected by 7-bit odd parity,
// one per column (ETS 300 706 §12.2). Characters that fail the parity
// check are kept (as the masked 7-bit value) but flagged unreliable so a
// renderer can substitute a placeholder glyph.
type DisplayText struct {
	Chars      [40]byte
	Reliable   [40]bool
	Confidence [40]float64
}

// decodeText applies DecodeParity to each byte of raw, pairing it with the
// matching per-byte confidence from the source line. A parity failure sets
// that byte's confidence to zero but keeps the (masked) byte value, so
// callers still see the decoded character alongside the fact that it can't
// be trusted (base spec §4.2 step 3).
func decodeText(raw []byte, confidence []float64) (chars []byte, reliable []bool, conf []float64) {
	chars = make([]byte, len(raw))
	reliable = make([]bool, len(raw))
	conf = make([]float64, len(raw))
	for i, b := range raw {
		v, ok := DecodeParity(b)
		chars[i] = v
		reliable[i] = ok
		if ok && i < len(confidence) {
			conf[i] = confidence[i]
		}
	}
	return chars, reliable, conf
}

// decodeDisplayRow decodes the 40 text bytes of a rows-1-24 packet
// (bytes 2-41 of the line, following the two address bytes).
func decodeDisplayRow(bytes [42]byte, confidence [42]float64) *DisplayText {
	chars, reliable, conf := decodeText(bytes[2:42], confidence[2:42])
	dt := &DisplayText{}
	copy(dt.Chars[:], chars)
	copy(dt.Reliable[:], reliable)
	copy(dt.Confidence[:], conf)
	return dt
}

// EncodeDisplayRow builds a full 42-byte rows-1-24 record for magazine/row
// from text: two Hamming(8,4) address bytes followed by 40 odd-parity text
// bytes, the inverse of decodeAddress plus decodeDisplayRow. It is used to
// synthesize a display-row record for a squashed page (base spec §4.3
// step 3).
func EncodeDisplayRow(magazine, row int, text *DisplayText) [42]byte {
	var rec [42]byte
	rec[0], rec[1] = EncodeAddress(magazine, row)
	for i, c := range text.Chars {
		rec[2+i] = EncodeParity(c)
	}
	return rec
}
