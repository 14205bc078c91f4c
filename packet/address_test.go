package packet

import "testing"

func TestDecodeAddressRoundTrip(t *testing.T) {
	for mag := 1; mag <= 8; mag++ {
		for row := 0; row <= 31; row++ {
			wireMag := mag % 8 // magazine 8 is encoded as 0.
			b0 := encodeHamming84(byte(wireMag | (row&1)<<3))
			b1 := encodeHamming84(byte(row >> 1))

			gotMag, gotRow, err := decodeAddress(b0, b1)
			if err != nil {
				t.Fatalf("mag=%d row=%d: unexpected error %v", mag, row, err)
			}
			if gotMag != mag || gotRow != row {
				t.Fatalf("mag=%d row=%d: got mag=%d row=%d", mag, row, gotMag, gotRow)
			}
		}
	}
}

func TestDecodeAddressBadHamming(t *testing.T) {
	// Two flipped bits in the first byte make it uncorrectable.
	good := encodeHamming84(0)
	bad := good ^ 0b11
	_, _, err := decodeAddress(bad, encodeHamming84(0))
	if err != ErrBadAddress {
		t.Fatalf("got err=%v, want ErrBadAddress", err)
	}
}
