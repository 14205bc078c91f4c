package config

import (
	"time"

	"github.com/ausocean/utils/logging"
)

// Mode selects what the Stream Filter stage does with a packet stream
// (base spec §4.3).
type Mode int

const (
	// ModeRaw emits every decoded packet unfiltered; used by deconvolve,
	// which produces a .t42 stream for a later, separate filter pass
	// rather than applying one itself (base spec §6 CLI surface).
	ModeRaw Mode = iota
	// ModePassThrough emits packets whose magazine's currently-open page
	// matches a predicate page number.
	ModePassThrough
	// ModeSquash deduplicates repeated transmissions of the same subpage
	// by confidence-weighted voting.
	ModeSquash
)

// Defaults for tunables named explicitly in the base spec.
const (
	DefaultFrameQueueSize  = 1024 // Sample Source -> Deconvolver (base spec §5).
	DefaultLineQueueSize   = 4096 // Deconvolver -> Packet Decoder.
	DefaultPacketQueueSize = 4096 // Packet Decoder -> Filter.

	DefaultMaxObservations = 32  // N_max_observations, squash flush policy.
	DefaultQuietFrames     = 500 // T_quiet, squash flush policy.

	DefaultGPUBatchSize = 64 // Power-of-two batch size for the GPU backend.

	DefaultWorkers = 0 // 0 means "one worker per GOMAXPROCS".
)

// Config carries the tunables for one pipeline run. Unlike LineConfig (pure
// device geometry), Config covers scheduling, filtering and logging, and is
// validated rather than looked up by name.
type Config struct {
	// Device names the LineConfig profile to use (base spec §6 --device).
	Device string

	// Workers is the number of CPU deconvolver workers. 0 means
	// runtime.GOMAXPROCS(0).
	Workers int

	FrameQueueSize  int
	LineQueueSize   int
	PacketQueueSize int

	// UseGPU selects the GPU-batched deconvolver backend when built with
	// the "gpu" build tag. Without the tag the backend still constructs,
	// but every Deconvolve call returns an error.
	UseGPU       bool
	GPUBatchSize int

	// Mode, Page, MaxObservations, QuietFrames and QuietTimeout configure
	// the Stream Filter stage.
	Mode            Mode
	Page            uint16 // Page predicate for ModePassThrough, e.g. 0x100.
	MaxObservations int    // N_max_observations.
	QuietFrames     int    // T_quiet, expressed in source frames.
	QuietTimeout    time.Duration

	// StartFrame and StopFrame bound the frame range processed by
	// deconvolve (base spec §6 --start/--stop). StopFrame == 0 means
	// "until EOF".
	StartFrame uint64
	StopFrame  uint64

	// PrintHeaders and SkipFrames implement -H/-S (base spec §6).
	PrintHeaders bool
	SkipFrames   uint64

	Logger logging.Logger
}

// LogInvalidField logs a default-and-continue decision, matching the
// teacher's Config.LogInvalidField convention.
func (c *Config) LogInvalidField(name string, def interface{}) {
	if c.Logger == nil {
		return
	}
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}

// Validate checks Config fields, defaulting anything unset or out of range
// and logging the decision, rather than failing. It never returns an error;
// structural failures (unknown device profile, malformed input) are
// reported separately at the point they're discovered.
func (c *Config) Validate() {
	if c.FrameQueueSize <= 0 {
		c.LogInvalidField("FrameQueueSize", DefaultFrameQueueSize)
		c.FrameQueueSize = DefaultFrameQueueSize
	}
	if c.LineQueueSize <= 0 {
		c.LogInvalidField("LineQueueSize", DefaultLineQueueSize)
		c.LineQueueSize = DefaultLineQueueSize
	}
	if c.PacketQueueSize <= 0 {
		c.LogInvalidField("PacketQueueSize", DefaultPacketQueueSize)
		c.PacketQueueSize = DefaultPacketQueueSize
	}
	if c.MaxObservations <= 0 {
		c.LogInvalidField("MaxObservations", DefaultMaxObservations)
		c.MaxObservations = DefaultMaxObservations
	}
	if c.QuietFrames <= 0 {
		c.LogInvalidField("QuietFrames", DefaultQuietFrames)
		c.QuietFrames = DefaultQuietFrames
	}
	if c.GPUBatchSize <= 0 {
		c.LogInvalidField("GPUBatchSize", DefaultGPUBatchSize)
		c.GPUBatchSize = DefaultGPUBatchSize
	}
	// Backpressure across GPU batching: queue_capacity >= 2*batch_size
	// (base spec §9) to avoid deadlock when the source stalls mid-batch.
	if c.UseGPU && c.FrameQueueSize < 2*c.GPUBatchSize {
		c.LogInvalidField("FrameQueueSize", 2*c.GPUBatchSize)
		c.FrameQueueSize = 2 * c.GPUBatchSize
	}
}
