package packet

// Enhancement is a page-enhancement packet (rows 25, 26, 28, 29, 31, and
// row 30 outside magazine 8): object/DRCS/colour-map designation data.
// Full enhancement decoding (WST Level 2.5+) is out of scope (base spec
// Non-goals); this keeps the designation code and passes the remaining
// bytes through unparsed so a caller that needs them can decode further.
type Enhancement struct {
	DesignationCode byte
	Raw             [40]byte
	HammingErrors   int
}

func decodeEnhancement(bytes [42]byte) *Enhancement {
	v, _, err := DecodeHamming84(bytes[2])
	e := &Enhancement{DesignationCode: v}
	if err != nil {
		e.HammingErrors++
	}
	copy(e.Raw[:], bytes[2:42])
	return e
}

// Fastext is the row-27, designation-0 link packet: up to six
// magazine-relative page numbers, conventionally red/green/yellow/blue/
// index/next in that order (ETS 300 706 §12.3).
type Fastext struct {
	Links         [6]uint16
	HammingErrors int
}

func decodeFastext(bytes [42]byte) *Fastext {
	f := &Fastext{}
	for i := 0; i < 6; i++ {
		off := 3 + i*6
		if off+1 >= len(bytes) {
			break
		}
		lo, _, e0 := DecodeHamming84(bytes[off])
		hi, _, e1 := DecodeHamming84(bytes[off+1])
		if e0 != nil || e1 != nil {
			f.HammingErrors++
			continue
		}
		f.Links[i] = uint16(hi)<<4 | uint16(lo)
	}
	return f
}

// Broadcast is a row-30, magazine-8 broadcast service data packet: network
// identification, date/time and similar data carried outside any page
// (ETS 300 706 §9.8). The designation code selects the packet's meaning;
// the remaining bytes are kept raw since full service-data decoding is out
// of scope.
type Broadcast struct {
	DesignationCode byte
	Data            [40]byte
	HammingErrors   int
}

func decodeBroadcast(bytes [42]byte) *Broadcast {
	v, _, err := DecodeHamming84(bytes[2])
	b := &Broadcast{DesignationCode: v}
	if err != nil {
		b.HammingErrors++
	}
	copy(b.Data[:], bytes[2:42])
	return b
}
