//go:build !gpu
// +build !gpu

package deconv

import (
	"context"
	"errors"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/rawline"
	"github.com/ZXByteman/vhs-teletext/sample"
)

// errGPUUnavailable is returned by the GPU stub's Deconvolve when this
// binary was built without the gpu build tag (base spec §4.1: GPU support
// is optional and its absence must never change observable results beyond
// a tiny floating-point epsilon - it simply isn't offered).
var errGPUUnavailable = errors.New("deconv: built without gpu tag, GPU backend unavailable")

// GPU stands in for the batched GPU backend in builds without the gpu tag,
// mirroring the teacher's filters_circleci.go pattern of swapping in a
// no-op implementation when the real one's build dependency (there OpenCV,
// here a GPU compute binding) isn't available.
type GPU struct{}

// NewGPU returns a GPU stub; batchSize is accepted for signature
// compatibility with the real backend but unused.
func NewGPU(batchSize int) *GPU { return &GPU{} }

// Deconvolve always fails; callers should check config.Config.UseGPU
// against build capability before selecting this backend.
func (g *GPU) Deconvolve(ctx context.Context, frame sample.Frame, lc config.LineConfig) (*rawline.Line, error) {
	return nil, errGPUUnavailable
}

// Close is a no-op.
func (g *GPU) Close() error { return nil }

var _ Deconvolver = (*GPU)(nil)
