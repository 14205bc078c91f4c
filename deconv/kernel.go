package deconv

import "github.com/ZXByteman/vhs-teletext/config"

// deconvolveBits applies lc.DeconvKernel, a short symmetric FIR inverse
// filter, to the soft-bit sequence to sharpen the transitions smeared by
// the VBI channel's low-pass response (base spec §4.1 step 4). The kernel
// is applied with "same" padding (edge bits are convolved against
// replicated boundary values) so the output has the same length as the
// input.
func deconvolveBits(soft []float64, lc config.LineConfig) []float64 {
	k := lc.DeconvKernel
	if len(k) == 0 {
		return soft
	}
	half := len(k) / 2
	out := make([]float64, len(soft))
	for i := range soft {
		var acc float64
		for j, coeff := range k {
			idx := i + j - half
			acc += coeff * sample(soft, idx)
		}
		out[i] = acc
	}
	return out
}

// sample returns soft[idx], clamping idx to the valid range so the kernel
// can run off either edge without a bounds check at every call site.
func sample(soft []float64, idx int) float64 {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(soft) {
		idx = len(soft) - 1
	}
	return soft[idx]
}
