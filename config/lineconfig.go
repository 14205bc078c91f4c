// Package config holds the static, per-capture-device line geometry
// (LineConfig) and the per-run pipeline configuration (Config), following
// the shape of the teacher's revid/config package: typed fields, sensible
// defaults, and a Validate step that warns and defaults rather than fails.
package config

// ThresholdMode selects how the deconvolver turns soft bits into hard bits.
type ThresholdMode int

const (
	// ThresholdFixed slices at a constant 0.5 after normalization.
	ThresholdFixed ThresholdMode = iota
	// ThresholdAdaptive re-centers the slicing level per line from the
	// observed soft-bit histogram, for tapes with drifting gain.
	ThresholdAdaptive
)

// LineConfig is the immutable, per-device description of VBI sample
// geometry. It is built once (by NewLineConfig, from the profile registry
// in profiles.go) and shared read-only by every stage downstream.
type LineConfig struct {
	// Name is the profile's registry key, e.g. "bt8x8_pal".
	Name string

	// SamplesPerLine is the length of each SampleFrame.
	SamplesPerLine int

	// SampleRate is the ADC sample rate in Hz, e.g. ~35.468MHz for PAL bt8x8.
	SampleRate float64

	// BitRate is the nominal teletext data bit rate in Hz (6.9375 MHz for
	// WST Level 1.5).
	BitRate float64

	// CRIWindowStart and CRIWindowEnd bound the sample range searched for
	// the clock-run-in/framing-code correlation peak.
	CRIWindowStart int
	CRIWindowEnd   int

	// GainCurve is a lookup table mapping a raw 8-bit sample to a
	// normalized gain multiplier. A nil curve means unity gain.
	GainCurve []float64

	// DeconvKernel is the short, symmetric inverse kernel applied to the
	// soft-bit sequence to undo VBI low-pass smearing (base spec §4.1
	// step 4). Odd length, typically 5-9 taps.
	DeconvKernel []float64

	// Threshold selects fixed or adaptive slicing.
	Threshold ThresholdMode

	// RejectionThreshold is the minimum peak-to-sidelobe ratio accepted as
	// "CRI found" (default 3.0, base spec §4.1 step 2).
	RejectionThreshold float64

	// BitWindowSigma is the standard deviation, in bit periods, of the
	// Gaussian window used for per-bit resampling (default 0.25).
	BitWindowSigma float64
}

// NumBits is the number of bits framed per line: 42 data bytes, 8 bits each.
func (lc LineConfig) NumBits() int { return Size8 * 42 }

// Size8 is bits per byte, named for readability at call sites that compute
// bit counts from byte counts.
const Size8 = 8

// gain returns the normalized gain multiplier for raw sample s.
func (lc LineConfig) gain(s byte) float64 {
	if lc.GainCurve == nil {
		return 1
	}
	return lc.GainCurve[s]
}
