// Package deconv implements the Deconvolver stage: recovering a 42-byte
// teletext line (with per-byte confidence) from one VBI sample frame, or
// deciding the line is absent. See base spec §4.1.
package deconv

import (
	"context"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/rawline"
	"github.com/ZXByteman/vhs-teletext/sample"
)

// Deconvolver is the capability interface shared by the CPU and GPU
// backends (base spec §9 "optional GPU backend" design note). The rest of
// the pipeline sees only this interface; which implementation is active is
// decided once, at pipeline construction.
type Deconvolver interface {
	// Deconvolve recovers a teletext line from frame, or returns
	// rawline.ErrNoLine if no clock-run-in/framing-code was located.
	Deconvolve(ctx context.Context, frame sample.Frame, lc config.LineConfig) (*rawline.Line, error)

	// Close releases any backend resources (worker pools, GPU contexts).
	Close() error
}

// deconvolveOne runs the full single-line pipeline described in base spec
// §4.1: normalize, locate CRI/FC, resample bits, deconvolve, slice, and
// assemble bytes. It is the shared core used by both the CPU backend
// (one line per call) and the GPU backend (one line per batch row, fed a
// normalized vector already produced by the batch's matrix operation).
func deconvolveOne(frame sample.Frame, lc config.LineConfig) (*rawline.Line, error) {
	return deconvolveNormalized(normalize(frame.Samples, lc), frame.Index, lc)
}

// deconvolveNormalized runs steps 2-6 of base spec §4.1 given an
// already-normalized sample vector, so a batched backend can compute
// normalization for a whole tile in one matrix operation and then share
// this per-line tail with the CPU backend bit-for-bit.
func deconvolveNormalized(normalized []float64, frameIndex uint64, lc config.LineConfig) (*rawline.Line, error) {
	pk := locateCRI(normalized, lc)
	if pk.psr < lc.RejectionThreshold {
		return nil, rawline.ErrNoLine
	}

	bit0 := pk.index + criPreambleSamples(lc)
	soft := resampleBits(normalized, bit0, lc)
	sharp := deconvolveBits(soft, lc)
	hard, bitConf := sliceBits(sharp, lc)
	bytes, byteConf := assembleBytes(hard, bitConf)

	return &rawline.Line{
		Bytes:      bytes,
		Confidence: byteConf,
		FrameIndex: frameIndex,
	}, nil
}

// criPreambleSamples is the number of samples occupied by the CRI+FC
// preamble at lc's bit rate, i.e. the offset from the correlation peak
// (which aligns with the start of the preamble) to the first data bit.
func criPreambleSamples(lc config.LineConfig) int {
	bitPeriod := lc.SampleRate / lc.BitRate
	return int(float64(len(criFCBits)) * bitPeriod)
}
