// Package capture provides the optional external capture boundary used by
// the "record" command: pulling raw samples directly from a sound card via
// ALSA rather than reading a pre-recorded .vbi or .wav file (base spec §6,
// Non-goals: this is the one place that touches live hardware; the rest of
// the pipeline never assumes a particular input device).
package capture

import (
	"errors"
	"io"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	yalsa "github.com/yobert/alsa"

	"github.com/ausocean/utils/pool"
)

// ErrNoDevice is returned when no recording-capable ALSA device is found.
var ErrNoDevice = errors.New("capture: no ALSA recording device found")

// Ring buffer tuning, following the teacher's device/alsa constants: a
// continuous background reader absorbs ALSA's own buffering jitter so
// Read never blocks on the card's period boundary directly.
const (
	ringBufferLen     = 64
	ringBufferTimeout = 100 * time.Millisecond
	ringNextTimeout   = 2 * time.Second
)

// ALSADevice is a minimal wrapper exposing one ALSA capture device as an
// io.ReadCloser of raw samples, grounded in the teacher's device/alsa
// package: a background goroutine reads continuously from the card into a
// pool.Buffer ring buffer, and Read drains that ring buffer, the same
// split the teacher uses between its input() goroutine and its own Read.
// Downstream framing into sample.Frame is handled by sample.NewVBISource
// over the returned io.Reader.
type ALSADevice struct {
	l      Logger
	title  string
	dev    *yalsa.Device
	devBuf *yalsa.Buffer
	ring   *pool.Buffer
	done   chan struct{}
	fillWG sync.WaitGroup
	closed bool
}

// NewALSADevice opens the named device (or the first recording-capable
// device if title is empty), negotiated to one channel at sampleRate Hz,
// matching the bt8x8 capture card's expected sample clock (base spec
// §4.4 device profiles).
func NewALSADevice(l Logger, title string, sampleRate int) (*ALSADevice, error) {
	d := &ALSADevice{l: l, title: title}
	if err := d.open(sampleRate); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *ALSADevice) open(sampleRate int) error {
	d.l.Debug("opening sound card")
	cards, err := yalsa.OpenCards()
	if err != nil {
		return pkgerrors.Wrap(err, "capture: open cards")
	}
	defer yalsa.CloseCards(cards)

	d.l.Debug("finding recording device")
	for _, card := range cards {
		devices, err := card.Devices()
		if err != nil {
			continue
		}
		for _, dev := range devices {
			if dev.Type != yalsa.PCM || !dev.Record {
				continue
			}
			if dev.Title == d.title || d.title == "" {
				d.dev = dev
				break
			}
		}
		if d.dev != nil {
			break
		}
	}
	if d.dev == nil {
		return ErrNoDevice
	}

	d.l.Debug("opening ALSA device", "title", d.dev.Title)
	if err := d.dev.Open(); err != nil {
		return pkgerrors.Wrap(err, "capture: open device")
	}

	if _, err := d.dev.NegotiateChannels(1); err != nil {
		return pkgerrors.Wrap(err, "capture: negotiate channels")
	}
	rate, err := d.dev.NegotiateRate(sampleRate)
	if err != nil {
		return pkgerrors.Wrapf(err, "capture: negotiate rate %d", sampleRate)
	}

	// The VBI line signal is captured as an 8-bit unsigned waveform, not
	// audio. Only S16_LE is negotiated; the captured bytes are passed on
	// as they are, with no conversion to 8-bit samples.
	format, err := d.dev.NegotiateFormat(yalsa.S16_LE)
	if err != nil {
		return pkgerrors.Wrap(err, "capture: negotiate format")
	}
	if err := d.dev.Prepare(); err != nil {
		return pkgerrors.Wrap(err, "capture: prepare")
	}
	d.l.Info("ALSA device ready", "title", d.dev.Title, "rate", rate, "format", format)

	d.devBuf = d.dev.NewBufferDuration(ringBufferTimeout)
	d.ring = pool.NewBuffer(ringBufferLen, len(d.devBuf.Data), ringBufferTimeout)
	d.done = make(chan struct{})
	d.fillWG.Add(1)
	go d.fill()
	return nil
}

// fill continuously reads fixed-size chunks from the card and writes them
// into the ring buffer, absorbing jitter between ALSA's own period
// boundaries and whatever pace the pipeline's Sample Source reads at.
func (d *ALSADevice) fill() {
	defer d.fillWG.Done()
	for {
		select {
		case <-d.done:
			return
		default:
		}
		if err := d.dev.Read(d.devBuf.Data); err != nil {
			d.l.Warning("capture: device read failed", "error", err.Error())
			return
		}
		_, err := d.ring.Write(d.devBuf.Data)
		if err != nil && err != pool.ErrDropped {
			d.l.Error("capture: ring buffer write failed", "error", err.Error())
			return
		}
		if err == pool.ErrDropped {
			d.l.Warning("capture: ring buffer full, oldest chunk dropped")
		}
	}
}

// Read fills p with raw captured samples, blocking until the next chunk is
// available in the ring buffer.
func (d *ALSADevice) Read(p []byte) (int, error) {
	if d.closed {
		return 0, io.ErrClosedPipe
	}
	chunk, err := d.ring.Next(ringNextTimeout)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "capture: read")
	}
	n := copy(p, chunk.Bytes())
	if err := chunk.Close(); err != nil {
		return n, pkgerrors.Wrap(err, "capture: release chunk")
	}
	return n, nil
}

// Close stops the background reader and releases the ALSA device.
func (d *ALSADevice) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	close(d.done)
	d.fillWG.Wait()
	d.dev.Close()
	return d.ring.Close()
}
