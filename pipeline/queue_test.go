package pipeline

import "testing"

func TestQueueIsFIFO(t *testing.T) {
	q := NewQueue[int](4)
	for i := 0; i < 4; i++ {
		q.Send(i)
	}
	q.Close()

	i := 0
	for v := range q.C() {
		if v != i {
			t.Fatalf("position %d: got %d, want %d", i, v, i)
		}
		i++
	}
	if i != 4 {
		t.Fatalf("received %d items, want 4", i)
	}
}

func TestQueueBlocksOncePastCapacity(t *testing.T) {
	q := NewQueue[int](2)
	q.Send(1)
	q.Send(2)

	sentThird := make(chan struct{})
	go func() {
		q.Send(3) // must block until something is received.
		close(sentThird)
	}()

	select {
	case <-sentThird:
		t.Fatal("Send on a full queue returned before any item was received")
	default:
	}

	<-q.C() // makes room.
	<-sentThird
}
