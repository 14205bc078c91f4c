package deconv

import (
	"math"
	"testing"
)

func TestLocateCRIFindsPreambleAtKnownOffset(t *testing.T) {
	lc := testLineConfig(t)
	var data [42]byte
	samples := synthesizeLine(lc, data)
	normalized := normalize(samples, lc)

	pk := locateCRI(normalized, lc)
	if pk.index < 0 || pk.index > 20 {
		t.Fatalf("expected CRI peak near sample 0, got index=%d", pk.index)
	}
	if pk.psr < lc.RejectionThreshold {
		t.Fatalf("psr=%f below rejection threshold %f for a clean synthetic line", pk.psr, lc.RejectionThreshold)
	}
}

func TestPeakToSidelobeFlatTraceIsInfinite(t *testing.T) {
	flat := make([]float64, 50)
	for i := range flat {
		flat[i] = 1
	}
	psr := peakToSidelobe(flat, 25)
	if !math.IsInf(psr, 1) {
		t.Fatalf("expected +Inf for a zero-variance sidelobe region, got %f", psr)
	}
}

func TestFastConvolveMatchesDirectConvolution(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	h := []float64{1, -1}

	got := fastConvolve(x, h)
	want := directConvolve(x, h)

	if len(got) != len(want) {
		t.Fatalf("len(got)=%d, len(want)=%d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("sample %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func directConvolve(x, h []float64) []float64 {
	out := make([]float64, len(x)+len(h)-1)
	for i, xv := range x {
		for j, hv := range h {
			out[i+j] += xv * hv
		}
	}
	return out
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 5: 8, 1024: 1024, 1025: 2048}
	for in, want := range cases {
		if got := nextPow2(in); got != want {
			t.Errorf("nextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}
