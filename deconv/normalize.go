package deconv

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ZXByteman/vhs-teletext/config"
)

// blackLevelPercentile is the low-percentile statistic used to estimate the
// black (logic-low) level from the pre-CRI sample region. A low percentile
// rather than a minimum makes the estimate robust to occasional spike noise
// (base spec §4.1 step 1).
const blackLevelPercentile = 0.05

// normalize subtracts an estimated black level and rescales using the
// configured gain curve so nominal logic-high approaches 1.0 and
// logic-low approaches 0.0. It returns one float64 per input sample.
func normalize(samples []byte, lc config.LineConfig) []float64 {
	black := blackLevel(preCRISamples(samples, lc))

	out := make([]float64, len(samples))
	// White level is estimated as the high-percentile of the whole line;
	// a capture with no signal at all collapses this to ~black, which
	// correctly drives every sample toward 0 rather than dividing by
	// zero.
	white := whiteLevel(samples)
	span := white - black
	if span < 1 {
		span = 1
	}
	for i, s := range samples {
		v := (float64(s) - black) / span
		out[i] = v * gain(lc, s)
	}
	return out
}

// preCRISamples returns the portion of samples that precedes the CRI
// search window, used to estimate the black level from a region that
// cannot itself contain signal transitions.
func preCRISamples(samples []byte, lc config.LineConfig) []byte {
	if lc.CRIWindowStart > 0 && lc.CRIWindowStart <= len(samples) {
		return samples[:lc.CRIWindowStart]
	}
	return samples
}

func gain(lc config.LineConfig, s byte) float64 {
	if lc.GainCurve == nil {
		return 1
	}
	return lc.GainCurve[s]
}

// blackLevel returns the blackLevelPercentile quantile of region, a
// percentile-based statistic robust to spikes (gonum/stat.Quantile expects
// a pre-sorted, copied slice).
func blackLevel(region []byte) float64 {
	if len(region) == 0 {
		return 0
	}
	vals := make([]float64, len(region))
	for i, b := range region {
		vals[i] = float64(b)
	}
	sort.Float64s(vals)
	return stat.Quantile(blackLevelPercentile, stat.Empirical, vals, nil)
}

// whiteLevel returns the (1-blackLevelPercentile) quantile of the whole
// line, symmetric with blackLevel.
func whiteLevel(line []byte) float64 {
	if len(line) == 0 {
		return 255
	}
	vals := make([]float64, len(line))
	for i, b := range line {
		vals[i] = float64(b)
	}
	sort.Float64s(vals)
	return stat.Quantile(1-blackLevelPercentile, stat.Empirical, vals, nil)
}
