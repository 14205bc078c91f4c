package deconv

import (
	"math"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/rawline"
)

// numDataBits is the number of bits in the 42 data bytes following the CRI
// and framing code.
const numDataBits = rawline.Size * 8

// resampleBits computes numDataBits soft-bit values from normalized,
// starting at bit0 (the sample index of the first data bit, immediately
// after the CRI+FC preamble), using a Gaussian window centered on each
// ideal bit-center sample (base spec §4.1 step 3).
func resampleBits(normalized []float64, bit0 int, lc config.LineConfig) []float64 {
	bitPeriod := lc.SampleRate / lc.BitRate
	sigma := lc.BitWindowSigma * bitPeriod
	if sigma <= 0 {
		sigma = 0.25 * bitPeriod
	}
	radius := int(math.Ceil(3 * sigma))

	soft := make([]float64, numDataBits)
	for bit := 0; bit < numDataBits; bit++ {
		center := float64(bit0) + (float64(bit)+0.5)*bitPeriod
		soft[bit] = gaussianIntegrate(normalized, center, sigma, radius)
	}
	return soft
}

// gaussianIntegrate forms a weighted window of samples around center with a
// Gaussian kernel of the given sigma and returns the normalized weighted
// sum, clamped to samples that actually exist in x.
func gaussianIntegrate(x []float64, center, sigma float64, radius int) float64 {
	lo := int(math.Floor(center)) - radius
	hi := int(math.Floor(center)) + radius
	var sum, weight float64
	for i := lo; i <= hi; i++ {
		if i < 0 || i >= len(x) {
			continue
		}
		d := float64(i) - center
		w := math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += w * x[i]
		weight += w
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}
