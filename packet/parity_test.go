package packet

import "testing"

func TestDecodeParity(t *testing.T) {
	cases := []struct {
		b       byte
		want    byte
		wantOK  bool
		comment string
	}{
		{0x41, 0x41, false, "0b01000001 has 2 ones, even -> fails the odd-parity check"},
		{0xC1, 0x41, true, "0b11000001 has 3 ones, odd"},
		{0x00, 0x00, false, "all zero bits: even parity, fails the odd check"},
		{0x80, 0x00, true, "only the parity bit set: one bit, odd"},
	}
	for _, c := range cases {
		got, ok := DecodeParity(c.b)
		if got != c.want || ok != c.wantOK {
			t.Errorf("%s: DecodeParity(0x%02x) = (0x%02x, %v), want (0x%02x, %v)", c.comment, c.b, got, ok, c.want, c.wantOK)
		}
	}
}
