package deconv

import (
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/ZXByteman/vhs-teletext/config"
)

// criFCBits is the clock-run-in (10101010, repeated twice per WST1.5) plus
// the fixed framing code byte, MSB-first as transmitted on the wire before
// the LSB-first data bytes begin (base spec GLOSSARY: CRI, Framing Code).
// 1010 1010 1010 1010 1110 0100
var criFCBits = []int{
	1, 0, 1, 0, 1, 0, 1, 0,
	1, 0, 1, 0, 1, 0, 1, 0,
	1, 1, 1, 0, 0, 1, 0, 0,
}

// idealTemplate renders criFCBits as a zero-mean ±1 waveform (1 bits as +1,
// 0 bits as -1) at the bit rate implied by lc, oversampled onto the sample
// clock, for correlation against the normalized capture.
func idealTemplate(lc config.LineConfig) []float64 {
	bitPeriod := lc.SampleRate / lc.BitRate
	n := int(float64(len(criFCBits))*bitPeriod) + 1
	tmpl := make([]float64, n)
	for i := range tmpl {
		bit := int(float64(i) / bitPeriod)
		if bit >= len(criFCBits) {
			bit = len(criFCBits) - 1
		}
		tmpl[i] = 2*float64(criFCBits[bit]) - 1
	}
	return tmpl
}

// peak describes a cross-correlation peak.
type peak struct {
	index int
	psr   float64 // Peak-to-sidelobe ratio.
}

// locateCRI cross-correlates normalized against the ideal CRI+FC template
// within lc's search window and returns the argmax position (the sample
// index of bit 0 of the CRI) plus its peak-to-sidelobe ratio. The caller
// rejects the line when psr is below lc.RejectionThreshold (base spec
// §4.1 step 2).
func locateCRI(normalized []float64, lc config.LineConfig) peak {
	tmpl := idealTemplate(lc)

	start := lc.CRIWindowStart
	end := lc.CRIWindowEnd
	if end <= start || end > len(normalized) {
		end = len(normalized)
	}
	if start < 0 {
		start = 0
	}
	window := normalized[start:end]

	corr := correlate(window, tmpl)
	if len(corr) == 0 {
		return peak{index: start, psr: 0}
	}

	best, bestVal := 0, corr[0]
	for i, v := range corr {
		if v > bestVal {
			best, bestVal = i, v
		}
	}

	// No positive correlation anywhere (e.g. a flat line) means no CRI.
	if bestVal <= 0 {
		return peak{index: start + best, psr: 0}
	}

	psr := peakToSidelobe(corr, best)
	return peak{index: start + best, psr: psr}
}

// peakToSidelobe compares the peak value against the mean+stddev of the
// correlation trace excluding a small exclusion zone around the peak,
// following the standard PSR formulation used for matched-filter framing
// detection.
func peakToSidelobe(corr []float64, peakIdx int) float64 {
	const exclusion = 4
	var sum, sumSq float64
	var n int
	for i, v := range corr {
		if i >= peakIdx-exclusion && i <= peakIdx+exclusion {
			continue
		}
		sum += v
		sumSq += v * v
		n++
	}
	if n == 0 {
		return math.Inf(1)
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return math.Inf(1)
	}
	return (corr[peakIdx] - mean) / stddev
}

// correlate returns the cross-correlation of x against template, using the
// standard correlation-as-convolution-with-reversed-kernel identity so the
// same FFT machinery the teacher uses for FIR filtering (go-dsp/fft, see
// codec/pcm/filters.go fastConvolve) can be reused here.
func correlate(x, template []float64) []float64 {
	reversed := make([]float64, len(template))
	for i, v := range template {
		reversed[len(template)-1-i] = v
	}
	full := fastConvolve(x, reversed)
	// Linear convolution of x (len n) with reversed (len m) has length
	// n+m-1; the correlation value aligned with x[i] as the template's
	// start sits at offset len(template)-1.
	offset := len(template) - 1
	if offset >= len(full) {
		return nil
	}
	end := len(full) - offset
	if end > len(x) {
		end = len(x)
	}
	return full[offset : offset+end]
}

// fastConvolve computes the linear convolution of x and h via zero-padded
// FFT multiplication, mirroring github.com/ausocean/av/codec/pcm's
// fastConvolve helper.
func fastConvolve(x, h []float64) []float64 {
	if len(x) == 0 || len(h) == 0 {
		return nil
	}
	convLen := len(x) + len(h) - 1
	padLen := nextPow2(convLen)

	xp := make([]float64, padLen)
	copy(xp, x)
	hp := make([]float64, padLen)
	copy(hp, h)

	xFFT := fft.FFTReal(xp)
	hFFT := fft.FFTReal(hp)

	yFFT := make([]complex128, padLen)
	for i := range xFFT {
		yFFT[i] = xFFT[i] * hFFT[i]
	}

	iy := fft.IFFT(yFFT)
	y := make([]float64, convLen)
	for i := range y {
		y[i] = real(iy[i])
	}
	return y
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
