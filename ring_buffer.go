// ring_buffer.go - the processed-audio buffer shared between the real-time
// player (writer, from the audio callback) and the streaming decoder
// (reader, polling from its own goroutine).
//
// Grounded on audio_chip.go's mutex discipline: a single sync.Mutex guards
// only the bookkeeping operations (write, snapshot-read, cursor read), and
// is never held across DSP work. Pre-allocation follows audio_backend_oto.go's
// sampleBuf convention: the buffer's capacity is reserved once, up front, for
// the full processed-audio length, so Write does not reallocate it while the
// total stays within that length. Slice still allocates the copy it returns.
package sstv

import "sync"

// ringBuffer holds the full processed-audio stream for one transmission,
// written incrementally by the player and read incrementally by the
// decoder. Despite the name it is not circular: capacity equals the total
// sample count of one transmission, known up front, so there is never a
// wraparound case to handle. "Ring" names its role (writer/reader handoff
// across threads), not its indexing scheme.
type ringBuffer struct {
	mu        sync.Mutex
	buf       []float32 // len grows via append; capacity pre-reserved to expectedLen
	expected  int       // nominal total sample count; Done() fires once reached
	done      bool
}

// newRingBuffer reserves capacity for n samples without allocating length.
// n is the expected total (the clean-audio length); it is a capacity hint,
// not a hard limit — a write past it still appends, growing the backing
// array.
func newRingBuffer(n int) *ringBuffer {
	return &ringBuffer{buf: make([]float32, 0, n), expected: n}
}

// Write appends chunk after the current processed cursor. Called only from
// the audio callback thread, once per callback invocation.
func (r *ringBuffer) Write(chunk []float32) {
	r.mu.Lock()
	r.buf = append(r.buf, chunk...)
	if len(r.buf) >= r.expected {
		r.done = true
	}
	r.mu.Unlock()
}

// ProcessedCursor returns the number of samples written so far.
func (r *ringBuffer) ProcessedCursor() int {
	r.mu.Lock()
	n := len(r.buf)
	r.mu.Unlock()
	return n
}

// Done reports whether the buffer has been fully written.
func (r *ringBuffer) Done() bool {
	r.mu.Lock()
	d := r.done
	r.mu.Unlock()
	return d
}

// Slice returns a copy of buf[from:to], clamped to the currently-processed
// range. The copy (not a sub-slice view) is deliberate: it lets the caller
// read without holding the lock, and protects the writer's backing array
// from concurrent mutation.
func (r *ringBuffer) Slice(from, to int) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if to > len(r.buf) {
		to = len(r.buf)
	}
	if from < 0 {
		from = 0
	}
	if from >= to {
		return nil
	}
	out := make([]float32, to-from)
	copy(out, r.buf[from:to])
	return out
}

// Expected returns the nominal total sample count the buffer was sized for.
func (r *ringBuffer) Expected() int {
	return r.expected
}
