package deconv

import "github.com/ZXByteman/vhs-teletext/config"

// sliceBits converts soft-bit values to hard bits plus confidence, applying
// either a fixed 0.5 threshold or an adaptive, per-line re-centered one
// (base spec §4.1 step 5).
func sliceBits(soft []float64, lc config.LineConfig) (hard []bool, confidence []float64) {
	threshold := 0.5
	if lc.Threshold == config.ThresholdAdaptive {
		threshold = adaptiveThreshold(soft)
	}

	hard = make([]bool, len(soft))
	confidence = make([]float64, len(soft))
	for i, v := range soft {
		hard[i] = v >= threshold
		c := abs(v-threshold) * 2
		if c > 1 {
			c = 1
		}
		confidence[i] = c
	}
	return hard, confidence
}

// adaptiveThreshold re-centers the slicing level on the midpoint between
// the low and high soft-bit clusters observed in this line, which copes
// with a tape whose overall gain has drifted away from the nominal 0/1
// levels baked into normalize's black/white estimate.
func adaptiveThreshold(soft []float64) float64 {
	if len(soft) == 0 {
		return 0.5
	}
	lo, hi := soft[0], soft[0]
	for _, v := range soft {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return (lo + hi) / 2
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// assembleBytes packs hard bits least-significant-bit first into 42 bytes
// (teletext convention, base spec §4.1 step 6), with each byte's
// confidence the minimum of its 8 constituent bit confidences.
func assembleBytes(hard []bool, confidence []float64) (bytes [42]byte, byteConf [42]float64) {
	for b := 0; b < 42; b++ {
		var v byte
		min := 1.0
		for bit := 0; bit < 8; bit++ {
			idx := b*8 + bit
			if idx >= len(hard) {
				continue
			}
			if hard[idx] {
				v |= 1 << uint(bit)
			}
			if confidence[idx] < min {
				min = confidence[idx]
			}
		}
		bytes[b] = v
		byteConf[b] = min
	}
	return bytes, byteConf
}
