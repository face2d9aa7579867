package sstv

import "testing"

func TestRingBufferMonotoneCursor(t *testing.T) {
	rb := newRingBuffer(100)
	rb.Write([]float32{1, 2, 3})
	if got := rb.ProcessedCursor(); got != 3 {
		t.Fatalf("ProcessedCursor = %d, want 3", got)
	}
	rb.Write([]float32{4, 5})
	if got := rb.ProcessedCursor(); got != 5 {
		t.Fatalf("ProcessedCursor after second write = %d, want 5", got)
	}
}

func TestRingBufferSliceIsACopy(t *testing.T) {
	rb := newRingBuffer(10)
	rb.Write([]float32{1, 2, 3, 4})
	s := rb.Slice(0, 4)
	s[0] = 99
	s2 := rb.Slice(0, 4)
	if s2[0] == 99 {
		t.Fatal("Slice returned a view into the internal buffer, not a copy")
	}
}

func TestRingBufferSliceClampsToProcessed(t *testing.T) {
	rb := newRingBuffer(10)
	rb.Write([]float32{1, 2})
	s := rb.Slice(0, 10)
	if len(s) != 2 {
		t.Fatalf("Slice(0,10) len = %d, want 2 (clamped to processed)", len(s))
	}
}

func TestRingBufferDoneAtExpected(t *testing.T) {
	rb := newRingBuffer(4)
	if rb.Done() {
		t.Fatal("Done() true before any writes")
	}
	rb.Write([]float32{1, 2, 3, 4})
	if !rb.Done() {
		t.Fatal("Done() false after writing the expected sample count")
	}
}
