package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/deconv"
	"github.com/ZXByteman/vhs-teletext/packet"
	"github.com/ZXByteman/vhs-teletext/rawline"
	"github.com/ZXByteman/vhs-teletext/sample"
	"github.com/ZXByteman/vhs-teletext/stream"
)

// Pipeline runs the full decode chain: Sample Source -> worker pool of
// Deconvolver backends -> Reorder -> Packet Decoder -> Stream Filter ->
// Sink (base spec §5).
type Pipeline struct {
	cfg    config.Config
	lc     config.LineConfig
	src    sample.Source
	dec    deconv.Deconvolver
	sink   Sink
	logger logging

	// Stats; each field is updated by only one goroutine (FramesRead by
	// the reader, the rest by the packet decoder).
	FramesRead     uint64
	LinesRecovered uint64
	LinesRejected  uint64
	PacketsDecoded uint64
	AddressErrors  uint64
}

// logging is the subset of logging.Logger the pipeline needs, kept small
// so tests can pass a nil logger without importing the real type.
type logging interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warning(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// New builds a Pipeline. cfg must already have been validated (see
// config.Config.Validate).
func New(cfg config.Config, lc config.LineConfig, src sample.Source, dec deconv.Deconvolver, sink Sink) *Pipeline {
	var l logging
	if cfg.Logger != nil {
		l = cfg.Logger
	}
	return &Pipeline{cfg: cfg, lc: lc, src: src, dec: dec, sink: sink, logger: l}
}

// seqFrame pairs a frame with a locally assigned sequence number,
// independent of sample.Frame.Index: StartFrame/StopFrame filtering can make the frames actually fed to the pipeline
// non-contiguous, and the reorder buffer needs a gap-free sequence to key
// on regardless of what filtering happened upstream.
type seqFrame struct {
	seq   uint64
	frame sample.Frame
}

type indexedLine struct {
	idx  uint64
	line *rawline.Line // nil if rejected (rawline.ErrNoLine).
}

// Run drives the pipeline to completion or until ctx is cancelled. It
// returns nil at clean end of stream.
func (p *Pipeline) Run(ctx context.Context) error {
	workers := p.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	frameQ := NewQueue[seqFrame](p.cfg.FrameQueueSize)
	reorder := NewReorder[indexedLine](0, p.cfg.LineQueueSize)
	packetQ := NewQueue[packet.Packet](p.cfg.PacketQueueSize)

	var wg sync.WaitGroup
	var readErr error

	// Stage 1: source -> frame queue.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer frameQ.Close()
		readErr = p.readFrames(ctx, frameQ)
	}()

	// Stage 2: worker pool draining frameQ, feeding the reorder buffer.
	var workerWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			p.deconvolveWorker(ctx, frameQ, reorder)
		}()
	}
	go func() {
		workerWG.Wait()
		reorder.Close()
	}()

	// Stage 3: reorder output -> packet decode -> filter -> sink.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer packetQ.Close()
		p.decodePackets(reorder, packetQ)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		p.filterAndSink(packetQ)
	}()

	wg.Wait()
	if readErr != nil && !errors.Is(readErr, io.EOF) {
		return readErr
	}
	return nil
}

func (p *Pipeline) readFrames(ctx context.Context, frameQ *Queue[seqFrame]) error {
	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f, err := p.src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("pipeline: read frame: %w", err)
		}

		if f.Index < p.cfg.StartFrame {
			continue
		}
		if p.cfg.StopFrame != 0 && f.Index > p.cfg.StopFrame {
			return nil
		}

		p.FramesRead++
		frameQ.Send(seqFrame{seq: seq, frame: f})
		seq++
	}
}

func (p *Pipeline) deconvolveWorker(ctx context.Context, frameQ *Queue[seqFrame], reorder *Reorder[indexedLine]) {
	for sf := range frameQ.C() {
		line, err := p.dec.Deconvolve(ctx, sf.frame, p.lc)
		switch {
		case err == nil:
			reorder.Put(sf.seq, indexedLine{idx: sf.frame.Index, line: line})
		case errors.Is(err, rawline.ErrNoLine):
			reorder.Put(sf.seq, indexedLine{idx: sf.frame.Index, line: nil})
		default:
			if p.logger != nil {
				p.logger.Warning("deconvolve failed", "frame", sf.frame.Index, "error", err)
			}
			reorder.Put(sf.seq, indexedLine{idx: sf.frame.Index, line: nil})
		}
	}
}

func (p *Pipeline) decodePackets(reorder *Reorder[indexedLine], packetQ *Queue[packet.Packet]) {
	for il := range reorder.Out() {
		if il.line == nil {
			p.LinesRejected++
			continue
		}
		p.LinesRecovered++

		pkt, err := packet.Decode(il.line)
		if err != nil {
			p.AddressErrors++
			if p.logger != nil {
				p.logger.Debug("dropping packet with bad address", "frame", il.idx, "error", err)
			}
			continue
		}
		p.PacketsDecoded++
		packetQ.Send(pkt)
	}
}

func (p *Pipeline) filterAndSink(packetQ *Queue[packet.Packet]) {
	filter := stream.New(p.cfg)
	for pkt := range packetQ.C() {
		out, pg, emit, flushed := filter.Observe(pkt)
		if emit {
			if err := p.sink.WritePacket(out); err != nil && p.logger != nil {
				p.logger.Error("sink write failed", "error", err)
			}
		}
		if flushed {
			if err := p.sink.WritePage(pg); err != nil && p.logger != nil {
				p.logger.Error("sink write failed", "error", err)
			}
		}
	}
	for _, pg := range filter.Flush() {
		if err := p.sink.WritePage(pg); err != nil && p.logger != nil {
			p.logger.Error("sink write failed", "error", err)
		}
	}
}
