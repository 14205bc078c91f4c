package sample

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSource adapts a WAV-wrapped VBI capture to a Source. Several
// hobbyist teletext-from-VHS tools (this module's own lineage included)
// record the VBI line signal through a sound card ADC and store it as a
// mono WAV file rather than a headerless .vbi stream; this is purely
// additive to the canonical .vbi format (base spec §6).
type WAVSource struct {
	decoder        *wav.Decoder
	samplesPerLine int
	data           []int
	pos            int
	next           uint64
}

// NewWAVSource decodes the full PCM payload of r (which must support
// io.Seeker, as WAV decoding requires random access to the RIFF chunks)
// and frames it at samplesPerLine samples, taking the first channel only.
func NewWAVSource(r io.ReadSeeker, samplesPerLine int) (*WAVSource, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("sample: not a valid WAV file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("sample: could not decode WAV PCM: %w", err)
	}
	data := monoChannel(buf)
	return &WAVSource{decoder: d, samplesPerLine: samplesPerLine, data: data}, nil
}

// monoChannel extracts channel 0 and rescales to an unsigned 8-bit range,
// regardless of the WAV file's native bit depth.
func monoChannel(buf *audio.IntBuffer) []int {
	ch := buf.Format.NumChannels
	if ch <= 0 {
		ch = 1
	}
	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = 16
	}
	n := len(buf.Data) / ch
	out := make([]int, n)
	shift := depth - 8
	for i := 0; i < n; i++ {
		v := buf.Data[i*ch]
		if shift > 0 {
			// Signed PCM centered on zero: shift down to 8 bits then
			// recenter on 128, matching unsigned VBI sample convention.
			v = (v >> uint(shift)) + 128
		}
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		out[i] = v
	}
	return out
}

// Next returns the next samplesPerLine-sample frame.
func (s *WAVSource) Next() (Frame, error) {
	if s.pos >= len(s.data) {
		return Frame{}, io.EOF
	}
	end := s.pos + s.samplesPerLine
	if end > len(s.data) {
		return Frame{}, ErrShortFrame
	}
	out := make([]byte, s.samplesPerLine)
	for i, v := range s.data[s.pos:end] {
		out[i] = byte(v)
	}
	s.pos = end
	f := Frame{Samples: out, Index: s.next}
	s.next++
	return f, nil
}

// Close is a no-op; the caller owns the underlying io.ReadSeeker.
func (s *WAVSource) Close() error { return nil }
