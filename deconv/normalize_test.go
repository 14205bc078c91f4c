package deconv

import (
	"testing"

	"github.com/ZXByteman/vhs-teletext/config"
)

func TestNormalizeRescalesToUnitRange(t *testing.T) {
	lc := testLineConfig(t)
	samples := make([]byte, lc.SamplesPerLine)
	for i := range samples {
		samples[i] = 20
	}
	for i := 1000; i < 1400; i++ {
		samples[i] = 235
	}

	out := normalize(samples, lc)
	for i, v := range out {
		if v < -0.01 || v > 1.01 {
			t.Fatalf("sample %d out of range: %f", i, v)
		}
	}
	if out[1000] <= out[0] {
		t.Fatalf("expected white sample to normalize higher than black: got out[1000]=%f out[0]=%f", out[1000], out[0])
	}
}

func TestNormalizeFlatLineDoesNotDivideByZero(t *testing.T) {
	lc := testLineConfig(t)
	samples := make([]byte, lc.SamplesPerLine)
	for i := range samples {
		samples[i] = 128
	}
	out := normalize(samples, lc)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d: expected 0 on a perfectly flat line, got %f", i, v)
		}
	}
}

func TestPreCRISamples(t *testing.T) {
	lc := testLineConfig(t)
	lc.CRIWindowStart = 10
	samples := make([]byte, 20)
	got := preCRISamples(samples, lc)
	if len(got) != 10 {
		t.Fatalf("len(got) = %d, want 10", len(got))
	}

	lc.CRIWindowStart = 0
	got = preCRISamples(samples, lc)
	if len(got) != len(samples) {
		t.Fatalf("len(got) = %d, want %d when CRIWindowStart is 0", len(got), len(samples))
	}
}

func TestBlackAndWhiteLevel(t *testing.T) {
	region := make([]byte, 100)
	for i := range region {
		region[i] = 20
	}
	region[0] = 0 // outlier low

	if got := blackLevel(region); got < 15 || got > 25 {
		t.Fatalf("blackLevel ignored outlier poorly: got %f", got)
	}

	line := make([]byte, 100)
	for i := range line {
		line[i] = 235
	}
	line[0] = 255 // outlier high
	if got := whiteLevel(line); got < 230 || got > 240 {
		t.Fatalf("whiteLevel ignored outlier poorly: got %f", got)
	}
}

func TestGainIdentityCurve(t *testing.T) {
	lc := config.LineConfig{GainCurve: nil}
	if g := gain(lc, 200); g != 1 {
		t.Fatalf("gain with nil curve = %f, want 1", g)
	}
}
