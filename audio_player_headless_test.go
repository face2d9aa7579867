//go:build headless

// audio_player_headless_test.go - exercises RealTimePlayer and the
// StreamingDecoder poll loop together. Requires the headless backend since
// the default build's otoBackend opens a real audio device on construction;
// run with `go test -tags headless` the way the teacher's own device tests
// are split from its headless build.
package sstv

import (
	"image/color"
	"testing"
)

func TestStreamingDecoderMatchesLineCount(t *testing.T) {
	m, _ := LookupMode("MartinM1", 0, 0)
	src := checkerboardImage(m.Width, m.Height)
	bytes := newImageRGBBytes(src, m.Order)
	clean := Encode(bytes, m, SampleRate)

	pipeline := NewPipeline()
	player, err := NewRealTimePlayer(clean, pipeline, SampleRate, 1024)
	if err != nil {
		t.Fatalf("NewRealTimePlayer: %v", err)
	}
	player.RunToCompletion()

	decoder := NewStreamingDecoder(player, m, SampleRate)
	lines := 0
	decoder.OnLine = func(y int, row []color.RGBA) { lines++ }
	decoder.Poll()

	if lines != m.Height {
		t.Fatalf("streaming decoder decoded %d lines after a completed player run, want %d", lines, m.Height)
	}
}

func TestRealTimePlayerStartPauseResume(t *testing.T) {
	clean := make([]float32, SampleRate/4)
	pipeline := NewPipeline()
	player, err := NewRealTimePlayer(clean, pipeline, SampleRate, 512)
	if err != nil {
		t.Fatalf("NewRealTimePlayer: %v", err)
	}
	defer player.Close()

	if err := player.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !player.IsActive() {
		t.Fatal("player not active after Start")
	}
	player.Pause()
	if player.IsActive() {
		t.Fatal("player still active after Pause")
	}
	player.Resume()
	if !player.IsActive() {
		t.Fatal("player not active after Resume")
	}
	player.Stop()
	if player.IsActive() {
		t.Fatal("player still active after Stop")
	}
}
