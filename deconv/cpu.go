package deconv

import (
	"context"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/rawline"
	"github.com/ZXByteman/vhs-teletext/sample"
)

// CPU is the scalar/SIMD-eligible backend: it processes exactly one line
// per call and holds no state between calls, so it is safe to invoke
// concurrently from multiple worker goroutines (the worker pool and
// reorder buffer that make this the hot path of a multi-threaded pipeline
// live in package pipeline, per base spec §5).
type CPU struct{}

// NewCPU returns the default, always-available deconvolver backend.
func NewCPU() *CPU { return &CPU{} }

// Deconvolve implements Deconvolver.
func (c *CPU) Deconvolve(ctx context.Context, frame sample.Frame, lc config.LineConfig) (*rawline.Line, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return deconvolveOne(frame, lc)
}

// Close is a no-op; CPU holds no resources.
func (c *CPU) Close() error { return nil }

var _ Deconvolver = (*CPU)(nil)
