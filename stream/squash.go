// Package stream implements the Stream Filter stage: pass-through mode
// (selecting one magazine's currently open page) and squash mode
// (confidence-weighted majority-vote deduplication of repeated subpage
// transmissions), per base spec §4.3.
package stream

import "github.com/ZXByteman/vhs-teletext/packet"

// rowVote accumulates confidence-weighted votes for each of a display
// row's 40 text byte positions across repeated transmissions of the same
// subpage. Each byte's own decoded confidence is its vote weight (base
// spec §4.3 step 2: "an incoming byte with confidence c adds c to the
// weight of its value"); a parity-failed byte already carries a
// confidence of zero (base spec §4.2 step 3), so it casts no vote but is
// still eligible to become the stored candidate if nothing else ever
// does.
type rowVote struct {
	tally    [40]map[byte]float64
	best     [40]byte
	bestConf [40]float64
	reliable [40]bool
}

func newRowVote() *rowVote {
	rv := &rowVote{}
	for i := range rv.tally {
		rv.tally[i] = make(map[byte]float64)
	}
	return rv
}

// add folds one observation of the row into the vote.
func (rv *rowVote) add(text *packet.DisplayText) {
	for i, b := range text.Chars {
		w := text.Confidence[i]
		rv.tally[i][b] += w
		switch {
		case rv.tally[i][b] > rv.bestConf[i]:
			rv.bestConf[i] = rv.tally[i][b]
			rv.best[i] = b
			rv.reliable[i] = text.Reliable[i]
		case rv.tally[i][b] == rv.bestConf[i]:
			// Tie-breaks (base spec §4.3): a parity-valid candidate beats
			// an unreliable one outright; among equally (un)reliable
			// candidates, the most recently observed byte wins.
			if !rv.reliable[i] || text.Reliable[i] {
				rv.bestConf[i] = rv.tally[i][b]
				rv.best[i] = b
				rv.reliable[i] = text.Reliable[i]
			}
		}
	}
}

// result returns the majority-vote display text, with each cell's
// Confidence set to the margin between the winning value's weight and
// its runner-up's (base spec §4.3 step 2): a large margin means a
// decisive majority, zero means an unresolved tie.
func (rv *rowVote) result() packet.DisplayText {
	var out packet.DisplayText
	out.Chars = rv.best
	out.Reliable = rv.reliable
	for i := range out.Confidence {
		top, runnerUp := 0.0, 0.0
		for _, w := range rv.tally[i] {
			switch {
			case w > top:
				top, runnerUp = w, top
			case w > runnerUp:
				runnerUp = w
			}
		}
		out.Confidence[i] = top - runnerUp
	}
	return out
}
