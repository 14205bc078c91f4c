package capture

import "testing"

type nullLogger struct{}

func (nullLogger) Debug(string, ...interface{})   {}
func (nullLogger) Info(string, ...interface{})    {}
func (nullLogger) Warning(string, ...interface{}) {}
func (nullLogger) Error(string, ...interface{})   {}

// TestOpenALSADevice exercises real hardware discovery when available and
// skips otherwise, mirroring the teacher's own device/alsa test: not every
// CI or dev environment has a recording-capable sound card.
func TestOpenALSADevice(t *testing.T) {
	dev, err := NewALSADevice(nullLogger{}, "", 8000)
	if err != nil {
		t.Skipf("no ALSA recording device available: %v", err)
	}
	defer dev.Close()

	buf := make([]byte, 256)
	if _, err := dev.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

func TestReadAfterCloseReturnsClosedPipe(t *testing.T) {
	d := &ALSADevice{l: nullLogger{}, closed: true}
	_, err := d.Read(make([]byte, 8))
	if err == nil {
		t.Fatal("expected error reading a closed device")
	}
}

func TestOpenALSASourcePropagatesDeviceError(t *testing.T) {
	// With no hardware backing, opening a nonexistent titled device must
	// fail cleanly rather than panic, regardless of environment.
	_, err := OpenALSASource(nullLogger{}, "definitely-not-a-real-device-title", 8000, 256)
	if err == nil {
		t.Skip("environment has a device literally named that; nothing to assert")
	}
}
