//go:build !headless

// audio_output_oto.go - oto v3 audio device backend.
//
// Adapted from the teacher's audio_backend_oto.go: same oto.NewContext /
// oto.Player / io.Reader-callback shape, the same atomic.Pointer handoff so
// the callback never takes a lock on its hot path, and the same
// pre-allocated sampleBuf + unsafe float32-to-byte copy to avoid
// per-callback allocation. Generalized from "read one sample at a time from
// SoundChip.ReadSampleFromRing" to "pull one already-effected block at a
// time from RealTimePlayer.nextBlock".
package sstv

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

type otoBackend struct {
	ctx       *oto.Context
	player    *oto.Player
	source    atomic.Pointer[RealTimePlayer] // atomic: no lock needed for Read()
	sampleBuf []float32
	started   bool
	mutex     sync.Mutex // only for setup/control operations
}

// newAudioOutputBackend opens the default audio device at sampleRate and
// attaches p as the sample source.
func newAudioOutputBackend(sampleRate int, p *RealTimePlayer) (audioOutputBackend, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &otoBackend{ctx: ctx, sampleBuf: make([]float32, 4096)}
	b.source.Store(p)
	b.player = ctx.NewPlayer(b)
	return b, nil
}

// Read implements io.Reader for oto.Player: pulls one block of already-
// effected samples from the attached RealTimePlayer and copies it as raw
// little-endian float32 bytes.
func (b *otoBackend) Read(p []byte) (n int, err error) {
	src := b.source.Load()
	if src == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	numSamples := len(p) / 4
	if len(b.sampleBuf) < numSamples {
		b.sampleBuf = make([]float32, numSamples)
	}

	block := src.nextBlock(numSamples)
	if block == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	n = copy(b.sampleBuf, block)
	for i := n; i < numSamples; i++ {
		b.sampleBuf[i] = 0
	}
	samples := b.sampleBuf[:numSamples]
	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(p)])
	return len(p), nil
}

func (b *otoBackend) Start() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if !b.started && b.player != nil {
		b.player.Play()
		b.started = true
	}
}

func (b *otoBackend) Stop() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.started && b.player != nil {
		b.player.Pause()
		b.started = false
	}
}

func (b *otoBackend) Close() {
	b.Stop()
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.player != nil {
		b.player.Close()
		b.player = nil
	}
}

func (b *otoBackend) IsStarted() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.started
}
