package pipeline

import "github.com/ZXByteman/vhs-teletext/config"

// encodeHamming84ForTest is a minimal local Hamming(8,4) encoder, used only
// to build synthetic test lines independently of packet.EncodeHamming84.
func encodeHamming84ForTest(value byte) byte {
	d1 := int(value) & 1
	d2 := int(value) >> 1 & 1
	d3 := int(value) >> 2 & 1
	d4 := int(value) >> 3 & 1

	p1 := d1 ^ d2 ^ d4
	p2 := d1 ^ d3 ^ d4
	p4 := d2 ^ d3 ^ d4

	var bits [9]int
	bits[1], bits[2], bits[3], bits[4] = p1, p2, d1, p4
	bits[5], bits[6], bits[7] = d2, d3, d4
	overall := 0
	for i := 1; i <= 7; i++ {
		overall ^= bits[i]
	}
	bits[8] = overall

	var b byte
	for i := 1; i <= 8; i++ {
		b |= byte(bits[i]) << uint(i-1)
	}
	return b
}

// synthesizeLineForTest renders a 42-byte teletext line as a raw sample
// stream at lc's clock rate: CRI+FC preamble then the data bytes LSB
// first, mirroring deconv's own unexported test helper of the same shape.
func synthesizeLineForTest(lc config.LineConfig, data [42]byte) []byte {
	var criFC = []int{
		1, 0, 1, 0, 1, 0, 1, 0,
		1, 0, 1, 0, 1, 0, 1, 0,
		1, 1, 1, 0, 0, 1, 0, 0,
	}
	bitPeriod := lc.SampleRate / lc.BitRate

	bits := make([]int, 0, len(criFC)+42*8)
	bits = append(bits, criFC...)
	for _, b := range data {
		for i := 0; i < 8; i++ {
			bits = append(bits, int((b>>uint(i))&1))
		}
	}

	n := lc.SamplesPerLine
	samples := make([]byte, n)
	for i := range samples {
		samples[i] = 20
	}
	for i := 0; i < n; i++ {
		bit := int(float64(i) / bitPeriod)
		if bit >= len(bits) {
			break
		}
		if bits[bit] == 1 {
			samples[i] = 235
		}
	}
	return samples
}
