// Package pipeline wires the Sample Source, Deconvolver, Packet Decoder
// and Stream Filter stages together: bounded FIFO queues between stages, a
// worker pool around the Deconvolver so CPU-bound correlation/resampling
// runs concurrently, and a reorder buffer so the rest of the pipeline sees
// frames in strictly increasing index order regardless of which worker
// finished first (base spec §5).
package pipeline

// Queue is a bounded FIFO between two pipeline stages. It is a thin,
// named wrapper around a buffered channel, matching the sizing knobs in
// config.Config (FrameQueueSize, LineQueueSize, PacketQueueSize).
type Queue[T any] struct {
	ch chan T
}

// NewQueue returns a Queue with room for capacity unread items before a
// sender blocks.
func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{ch: make(chan T, capacity)}
}

// Send enqueues v, blocking while the queue is full.
func (q *Queue[T]) Send(v T) { q.ch <- v }

// Close signals no more items will be sent. Only the sole producer may
// call Close.
func (q *Queue[T]) Close() { close(q.ch) }

// C exposes the receiving end for range-based consumption.
func (q *Queue[T]) C() <-chan T { return q.ch }
