//go:build gpu
// +build gpu

package deconv

import (
	"context"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/rawline"
	"github.com/ZXByteman/vhs-teletext/sample"
)

// GPU is the optional batched backend (base spec §4.1, §5): it collects a
// power-of-two-sized batch of frames into a 2-D tile and performs the
// embarrassingly-parallel normalization step as a single matrix operation
// over the whole batch via gonum/mat, before running the same per-line
// correlation/resample/slice math the CPU backend uses on each row. Reusing
// identical scalar math for everything past normalization keeps GPU and
// CPU output within a tiny floating-point epsilon of each other, as the
// base spec requires.
//
// Batch assembly (waiting for batchSize concurrent Deconvolve calls to
// accumulate, or for Close to flush a partial batch) is the only
// suspension point this backend introduces; callers are expected to be a
// worker pool of at least batchSize goroutines, as package pipeline
// arranges.
type GPU struct {
	batchSize int

	mu      sync.Mutex
	pending []*gpuRequest
	closed  bool
}

type gpuRequest struct {
	frame sample.Frame
	lc    config.LineConfig
	done  chan gpuResult
}

type gpuResult struct {
	line *rawline.Line
	err  error
}

// NewGPU returns a batched GPU backend with the given batch size, which
// should be a power of two up to 512 (base spec §5).
func NewGPU(batchSize int) *GPU {
	if batchSize <= 0 {
		batchSize = config.DefaultGPUBatchSize
	}
	return &GPU{batchSize: batchSize}
}

// Deconvolve implements Deconvolver. It blocks until the batch containing
// frame has been launched and this frame's result is ready.
func (g *GPU) Deconvolve(ctx context.Context, frame sample.Frame, lc config.LineConfig) (*rawline.Line, error) {
	req := &gpuRequest{frame: frame, lc: lc, done: make(chan gpuResult, 1)}

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil, errClosed
	}
	g.pending = append(g.pending, req)
	var batch []*gpuRequest
	if len(g.pending) >= g.batchSize {
		batch = g.pending
		g.pending = nil
	}
	g.mu.Unlock()

	if batch != nil {
		processGPUBatch(batch)
	}

	select {
	case res := <-req.done:
		return res.line, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close flushes any partial batch (fewer than batchSize frames still
// pending) so a stream end or cancellation never strands a caller waiting
// on a batch that will never fill (base spec §5 cancellation semantics).
func (g *GPU) Close() error {
	g.mu.Lock()
	g.closed = true
	batch := g.pending
	g.pending = nil
	g.mu.Unlock()

	if len(batch) > 0 {
		processGPUBatch(batch)
	}
	return nil
}

var errClosed = errGPUClosed{}

type errGPUClosed struct{}

func (errGPUClosed) Error() string { return "deconv: GPU backend closed" }

// processGPUBatch tiles the batch's raw samples into one matrix, applies
// each frame's gain curve as a single whole-tile matrix operation (the
// gain lookup depends only on the raw byte value, so it is uniform across
// rows and genuinely batchable), then finishes normalization and the rest
// of the per-line pipeline row by row using the exact same arithmetic
// order as the CPU backend's normalize, so results match to within a tiny
// floating-point epsilon (base spec §4.1).
func processGPUBatch(batch []*gpuRequest) {
	if len(batch) == 0 {
		return
	}
	width := len(batch[0].frame.Samples)
	raw := mat.NewDense(len(batch), width, nil)
	for i, req := range batch {
		row := make([]float64, width)
		for j, s := range req.frame.Samples {
			row[j] = float64(s)
		}
		raw.SetRow(i, row)
	}

	gains := mat.NewDense(len(batch), width, nil)
	gains.Apply(func(i, j int, v float64) float64 {
		return gain(batch[i].lc, byte(v))
	}, raw)

	for i, req := range batch {
		black := blackLevel(preCRISamples(req.frame.Samples, req.lc))
		white := whiteLevel(req.frame.Samples)
		span := white - black
		if span < 1 {
			span = 1
		}
		normalized := make([]float64, width)
		for j := 0; j < width; j++ {
			normalized[j] = ((raw.At(i, j) - black) / span) * gains.At(i, j)
		}
		line, err := deconvolveNormalized(normalized, req.frame.Index, req.lc)
		req.done <- gpuResult{line: line, err: err}
	}
}

var _ Deconvolver = (*GPU)(nil)
