package deconv

import (
	"github.com/ZXByteman/vhs-teletext/config"
)

// synthesizeLine renders a 42-byte teletext line as a raw 8-bit sample
// stream at lc's sample clock: CRI+FC preamble followed by the data bytes,
// LSB-first, so the round trip through deconvolveOne exercises CRI
// correlation, resampling, deconvolution and slicing against known-correct
// input rather than recorded tape noise.
func synthesizeLine(lc config.LineConfig, data [42]byte) []byte {
	bitPeriod := lc.SampleRate / lc.BitRate

	bits := make([]int, 0, len(criFCBits)+42*8)
	bits = append(bits, criFCBits...)
	for _, b := range data {
		for i := 0; i < 8; i++ {
			bits = append(bits, int((b>>uint(i))&1))
		}
	}

	n := lc.SamplesPerLine
	samples := make([]byte, n)
	for i := range samples {
		samples[i] = 20 // quiescent black level
	}
	for i := 0; i < n; i++ {
		bit := int(float64(i) / bitPeriod)
		if bit >= len(bits) {
			break
		}
		if bits[bit] == 1 {
			samples[i] = 235
		} else {
			samples[i] = 20
		}
	}
	return samples
}
