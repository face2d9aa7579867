// audio_player.go - the real-time audio player (C6): owns the clean
// (pre-effect) audio, the effects Pipeline, and the ringBuffer the
// streaming decoder reads from. Platform audio output itself lives behind
// the audioOutputBackend interface, implemented by audio_output_oto.go
// (!headless) and audio_output_headless.go (headless).
//
// Control operations follow audio_backend_oto.go's convention: a
// sync.Mutex guards only setup/start/stop/pause bookkeeping, never the
// per-sample hot path, which instead reads pos via atomic.Int64.
package sstv

import (
	"log"
	"sync"
	"sync/atomic"
)

type playerState int32

const (
	playerStopped playerState = iota
	playerRunning
	playerPaused
)

// audioOutputBackend is the platform device handle. Exactly one
// implementation is compiled in, selected by the headless build tag.
type audioOutputBackend interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// RealTimePlayer drives playback of one transmission's clean audio through
// its Pipeline, one device-callback block at a time, publishing the
// effected result into a ringBuffer a streaming decoder can poll.
type RealTimePlayer struct {
	clean      []float32
	pipeline   *Pipeline
	sampleRate int
	blockSize  int
	ring       *ringBuffer
	backend    audioOutputBackend

	pos   atomic.Int64
	state atomic.Int32
	mu    sync.Mutex
}

// NewRealTimePlayer constructs a player over clean audio at sampleRate,
// processing blockSize samples per device callback (0 selects the 1024
// default the data model specifies).
func NewRealTimePlayer(clean []float32, pipeline *Pipeline, sampleRate, blockSize int) (*RealTimePlayer, error) {
	if blockSize <= 0 {
		blockSize = 1024
	}
	p := &RealTimePlayer{
		clean:      clean,
		pipeline:   pipeline,
		sampleRate: sampleRate,
		blockSize:  blockSize,
		ring:       newRingBuffer(len(clean)),
	}
	backend, err := newAudioOutputBackend(sampleRate, p)
	if err != nil {
		return nil, wrapErr("NewRealTimePlayer", "audio device init", err)
	}
	p.backend = backend
	return p, nil
}

// nextBlock is the audio callback's entry point: pull up to n samples of
// clean audio from the current position, run them through the pipeline,
// publish the result to the ring buffer, and advance the position. Returns
// nil once the clean audio is exhausted, the device-callback thread's
// end-of-stream signal.
func (p *RealTimePlayer) nextBlock(n int) []float32 {
	if playerState(p.state.Load()) != playerRunning {
		return make([]float32, n) // paused/stopped: emit silence, keep the device alive
	}

	start := int(p.pos.Load())
	if start >= len(p.clean) {
		return nil
	}
	end := start + n
	if end > len(p.clean) {
		end = len(p.clean)
	}

	chunk := make([]float32, end-start)
	copy(chunk, p.clean[start:end])
	processed := p.processChunkSafely(chunk)
	p.ring.Write(processed)
	p.pos.Store(int64(end))
	return processed
}

// processChunkSafely runs chunk through the pipeline, recovering from any
// panic raised inside an effect. A panicking callback must never reach the
// device layer; it is logged and that chunk is replaced with silence of the
// same length instead.
func (p *RealTimePlayer) processChunkSafely(chunk []float32) (out []float32) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sstv: audio callback panic recovered, substituting silence: %v", r)
			out = make([]float32, len(chunk))
		}
	}()
	return p.pipeline.ProcessChunk(chunk, p.sampleRate)
}

// Start begins playback from the current position (0 on first call).
func (p *RealTimePlayer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Store(int32(playerRunning))
	p.backend.Start()
	return nil
}

// Pause halts sample advancement without releasing the device.
func (p *RealTimePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Store(int32(playerPaused))
}

// Resume continues playback after a Pause.
func (p *RealTimePlayer) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Store(int32(playerRunning))
}

// Stop halts playback and stops the device backend; Close releases it.
func (p *RealTimePlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Store(int32(playerStopped))
	p.backend.Stop()
}

// Close releases the underlying device entirely; the player is not usable
// afterward.
func (p *RealTimePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backend.Close()
}

// IsActive reports whether playback is currently running (not paused or
// stopped).
func (p *RealTimePlayer) IsActive() bool {
	return playerState(p.state.Load()) == playerRunning
}

// Position returns the current clean-audio sample offset.
func (p *RealTimePlayer) Position() int {
	return int(p.pos.Load())
}

// ProcessedCursor returns how many effected samples the ring buffer holds.
func (p *RealTimePlayer) ProcessedCursor() int {
	return p.ring.ProcessedCursor()
}

// ProcessedSlice returns a copy of the effected audio in [from, to).
func (p *RealTimePlayer) ProcessedSlice(from, to int) []float32 {
	return p.ring.Slice(from, to)
}

// Done reports whether the entire clip has been processed into the ring.
func (p *RealTimePlayer) Done() bool {
	return p.ring.Done()
}

// RunToCompletion synchronously pumps nextBlock until the clean audio is
// exhausted, without requiring a live device callback. Used by the headless
// backend's tests and by batch-mode orchestration, where nothing needs to
// happen in real time.
func (p *RealTimePlayer) RunToCompletion() {
	p.state.Store(int32(playerRunning))
	for {
		if p.nextBlock(p.blockSize) == nil {
			return
		}
	}
}
