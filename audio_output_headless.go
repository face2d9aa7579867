//go:build headless

// audio_output_headless.go - no-device stand-in for CI and tests, adapted
// from the teacher's headless counterpart. It keeps a reference to the
// attached RealTimePlayer but never pulls blocks from it; tests drive the
// player themselves (RealTimePlayer.RunToCompletion) so ring-buffer and
// decoder tests can run without a sound card.
package sstv

type headlessBackend struct {
	source  *RealTimePlayer
	started bool
}

func newAudioOutputBackend(sampleRate int, p *RealTimePlayer) (audioOutputBackend, error) {
	return &headlessBackend{source: p}, nil
}

func (b *headlessBackend) Start() { b.started = true }
func (b *headlessBackend) Stop()  { b.started = false }
func (b *headlessBackend) Close() { b.started = false }
func (b *headlessBackend) IsStarted() bool { return b.started }
