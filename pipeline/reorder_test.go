package pipeline

import (
	"math/rand"
	"testing"
)

func TestReorderPreservesOrder(t *testing.T) {
	r := NewReorder[int](0, 16)
	const n = 50

	order := rand.New(rand.NewSource(1)).Perm(n)
	go func() {
		for _, idx := range order {
			r.Put(uint64(idx), idx*10)
		}
	}()

	for want := 0; want < n; want++ {
		got := <-r.Out()
		if got != want*10 {
			t.Fatalf("position %d: got %d, want %d", want, got, want*10)
		}
	}
}

func TestReorderSkipAdvancesPastAGap(t *testing.T) {
	r := NewReorder[string](0, 4)
	r.Put(1, "one")
	if r.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1 before index 0 arrives", r.Pending())
	}
	r.Skip() // give up on index 0.

	got := <-r.Out()
	if got != "one" {
		t.Fatalf("got %q, want %q", got, "one")
	}
	if r.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0 after releasing", r.Pending())
	}
}
