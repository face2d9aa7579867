// param_queue.go - bounded single-producer/single-consumer parameter update
// queue between the control goroutine (producer) and the audio callback
// (consumer).
//
// Grounded on audio_backend_oto.go's atomic.Pointer handoff: that file uses
// an atomic pointer so the callback never takes a lock to read the current
// chip. This queue generalizes the same idea to a stream of updates instead
// of a single pointer, using atomic head/tail indices over a fixed array so
// the callback thread never blocks and never allocates.
package sstv

import "sync/atomic"

// paramQueueCapacity is the fixed ring size. The data model requires this to
// be at least 1024.
const paramQueueCapacity = 2048

// paramQueue is a lock-free bounded SPSC ring buffer of ParamUpdate values.
// Exactly one goroutine may call Push; exactly one (the audio callback) may
// call Pop.
type paramQueue struct {
	buf  [paramQueueCapacity]ParamUpdate
	head atomic.Uint64 // next slot to write (producer-owned)
	tail atomic.Uint64 // next slot to read (consumer-owned)
}

// Push enqueues u, returning false if the queue is full. Never blocks.
func (q *paramQueue) Push(u ParamUpdate) bool {
	head := q.head.Load()
	tail := q.tail.Load()
	if head-tail >= paramQueueCapacity {
		return false
	}
	q.buf[head%paramQueueCapacity] = u
	q.head.Store(head + 1)
	return true
}

// Pop dequeues the oldest update, returning false if the queue is empty.
// Never blocks.
func (q *paramQueue) Pop() (ParamUpdate, bool) {
	tail := q.tail.Load()
	head := q.head.Load()
	if tail >= head {
		return ParamUpdate{}, false
	}
	u := q.buf[tail%paramQueueCapacity]
	q.tail.Store(tail + 1)
	return u, true
}

// Drain applies every currently-queued update to snap in FIFO order. Called
// once per audio callback, before processing the chunk.
func (q *paramQueue) Drain(snap *ParamSnapshot) {
	for {
		u, ok := q.Pop()
		if !ok {
			return
		}
		snap.apply(u)
	}
}
