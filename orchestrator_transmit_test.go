//go:build headless

package sstv

import (
	"image/color"
	"testing"
	"time"
)

// TestTransmitHandleFullCycle drives a Transmit handle through a full
// playback (via RunToCompletion, bypassing the real device) plus the
// post-stop clean-reference pass, checking that both OnLine and
// OnCleanLine fire once per row and that Progress reaches 100 only once
// OnFinished has run.
func TestTransmitHandleFullCycle(t *testing.T) {
	m, _ := LookupMode("MartinM1", 0, 0)
	src := checkerboardImage(m.Width, m.Height)

	o := NewOrchestrator()

	var effectedLines, cleanLines int
	finished := make(chan struct{})

	h, err := o.Transmit(src, m.Name, 0, 0, nil,
		func(y int, row []color.RGBA) { effectedLines++ },
		func(y int, row []color.RGBA) { cleanLines++ },
		func() { close(finished) },
		func(err error) { t.Errorf("unexpected transmission error: %v", err) },
	)
	if err != nil {
		t.Fatalf("Transmit: %v", err)
	}

	h.Player.RunToCompletion()
	h.Decoder.Poll()

	if effectedLines != m.Height {
		t.Fatalf("effected lines = %d after a completed player run, want %d", effectedLines, m.Height)
	}
	if pct := h.Progress(); pct < 0 || pct > 90 {
		t.Fatalf("Progress() before Stop = %d, want 0..90", pct)
	}

	h.Stop()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("OnFinished was never called after Stop")
	}

	if cleanLines != m.Height {
		t.Fatalf("clean reference lines = %d, want %d", cleanLines, m.Height)
	}
	if pct := h.Progress(); pct != 100 {
		t.Fatalf("Progress() after clean pass = %d, want 100", pct)
	}
}
