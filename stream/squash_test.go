package stream

import (
	"testing"

	"github.com/ZXByteman/vhs-teletext/packet"
)

// displayText builds a DisplayText whose every cell shares reliable and a
// confidence of 1 when reliable (0 otherwise), matching what decodeText
// produces for a uniformly (un)reliable line.
func displayText(s string, reliable bool) *packet.DisplayText {
	dt := &packet.DisplayText{}
	copy(dt.Chars[:], s)
	for i := range dt.Reliable {
		dt.Reliable[i] = reliable
		if reliable {
			dt.Confidence[i] = 1
		}
	}
	return dt
}

// weightedCell builds a single-cell DisplayText with an explicit weight,
// for tests that need unequal vote weights rather than the uniform 0/1
// confidence displayText produces.
func weightedCell(c byte, reliable bool, weight float64) *packet.DisplayText {
	dt := &packet.DisplayText{}
	dt.Chars[0] = c
	dt.Reliable[0] = reliable
	dt.Confidence[0] = weight
	return dt
}

func TestRowVoteMajorityWins(t *testing.T) {
	rv := newRowVote()
	rv.add(weightedCell('A', true, 1.0))
	rv.add(weightedCell('A', true, 1.0))
	rv.add(weightedCell('B', true, 0.5))

	out := rv.result()
	if out.Chars[0] != 'A' {
		t.Fatalf("Chars[0] = %q, want 'A'", out.Chars[0])
	}
	if out.Confidence[0] <= 0 {
		t.Fatalf("Confidence[0] = %f, want > 0 (2.0 weight beats 0.5 runner-up by 1.5)", out.Confidence[0])
	}
}

func TestRowVoteUnreliableBytesCastNoVote(t *testing.T) {
	rv := newRowVote()
	rv.add(displayText("X", true))
	rv.add(displayText("Y", false)) // parity failed: confidence is already zero, casts no vote.

	out := rv.result()
	if out.Chars[0] != 'X' {
		t.Fatalf("Chars[0] = %q, want 'X' (zero-confidence candidate should not outweigh a reliable one)", out.Chars[0])
	}
}

func TestRowVoteTieKeepsMostRecent(t *testing.T) {
	rv := newRowVote()
	rv.add(displayText("A", true))
	rv.add(displayText("B", true))

	out := rv.result()
	if out.Chars[0] != 'B' {
		t.Fatalf("Chars[0] = %q, want 'B' (most recently observed byte wins an exact tie)", out.Chars[0])
	}
}

func TestRowVoteTiePrefersParityValid(t *testing.T) {
	// decodeText always zeroes an unreliable byte's confidence, but the
	// tie-break itself must not depend on that: construct an equal-weight
	// tie directly to exercise the rule on its own terms.
	rv := newRowVote()
	rv.add(weightedCell('A', false, 1.0))
	rv.add(weightedCell('B', true, 1.0))

	out := rv.result()
	if out.Chars[0] != 'B' {
		t.Fatalf("Chars[0] = %q, want 'B' (parity-valid candidate wins a tie over an unreliable one)", out.Chars[0])
	}
	if !out.Reliable[0] {
		t.Fatalf("Reliable[0] = false, want true")
	}
}
