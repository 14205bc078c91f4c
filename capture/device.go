package capture

import (
	"io"

	"github.com/ZXByteman/vhs-teletext/sample"
)

// Source opens a live sample.Source from an external device, used by the
// "record" command to capture directly rather than read a file (base spec
// §6 Non-goals: this boundary exists so nothing upstream of it needs to
// know whether its samples came from a card or a file).
type Source interface {
	sample.Source
}

// OpenALSASource opens the named ALSA recording device (or the first
// recording-capable device if title is ""), negotiated to samplesPerLine
// bytes per scanline at sampleRate Hz, and wraps it as a sample.Source.
func OpenALSASource(l Logger, title string, sampleRate, samplesPerLine int) (Source, error) {
	dev, err := NewALSADevice(l, title, sampleRate)
	if err != nil {
		return nil, err
	}
	return &vbiDeviceSource{dev: dev, src: sample.NewVBISource(dev, samplesPerLine)}, nil
}

// Logger is the subset of ausocean/utils/logging.Logger the capture
// package needs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warning(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// vbiDeviceSource glues an ALSADevice's raw byte stream to sample.VBISource
// framing, and makes sure closing the source closes the device underneath.
type vbiDeviceSource struct {
	dev *ALSADevice
	src *sample.VBISource
}

func (s *vbiDeviceSource) Next() (sample.Frame, error) { return s.src.Next() }

func (s *vbiDeviceSource) Close() error {
	_ = s.src.Close()
	return s.dev.Close()
}

var _ io.Closer = (*vbiDeviceSource)(nil)
