// effects_pipeline.go - the fixed-order effect chain (C5): drains queued
// parameter updates, runs every enabled effect in the data model's fixed
// order, and peak-normalizes the result.
//
// Design note 9.2's tagged-variant param model and 9.3's "no virtual
// dispatch on the hot path" both apply here: Pipeline holds one concrete
// struct field per effect (not a slice of interfaces), and ProcessChunk
// checks each effect's Enabled flag in a fixed, inlinable order instead of
// ranging over a slice of an `effect` interface built on every call.
package sstv

// Pipeline runs the full effect chain over audio, maintaining each effect's
// persistent state (phase accumulators, filter history, delay lines) across
// calls to ProcessChunk so a streaming caller gets the same result a batch
// caller would for the same input.
type Pipeline struct {
	Snapshot ParamSnapshot
	queue    paramQueue

	phaseMod    phaseModEffect
	ampMod      ampModEffect
	syncWobble  syncWobbleEffect
	syncDropout syncDropoutEffect
	scanline    scanlineEffect
	noise       noiseEffect
	distortion  distortionEffect
	harmonic    harmonicEffect
	bitcrush    bitcrushEffect
	freqShift   freqShiftEffect
	bandpass    bandpassEffect
	delay       delayEffect
	timeStretch timeStretchEffect
}

// NewPipeline constructs a pipeline with every effect disabled.
func NewPipeline() *Pipeline {
	return &Pipeline{Snapshot: DefaultParamSnapshot()}
}

// UpdateParam resolves "effect.param" to its ParamField once here (the
// string comparison never happens again) and enqueues the update for the
// next ProcessChunk call to pick up. Returns ErrParamOutOfRange for an
// unrecognized (effect, param) pair.
func (pl *Pipeline) UpdateParam(effect, param string, value float64) error {
	field, ok := ResolveField(effect, param)
	if !ok {
		return wrapErr("UpdateParam", effect+"."+param, ErrParamOutOfRange)
	}
	if !pl.queue.Push(ParamUpdate{Field: field, Value: value}) {
		return wrapErr("UpdateParam", "queue full", ErrInternalDSP)
	}
	return nil
}

// ProcessChunk drains pending parameter updates, then runs every enabled
// effect over chunk in the fixed processing order, returning a result of the
// same length as chunk. chunk is modified in place for every effect except
// timestretch, which returns a new slice.
func (pl *Pipeline) ProcessChunk(chunk []float32, sampleRate int) []float32 {
	pl.queue.Drain(&pl.Snapshot)
	s := pl.Snapshot

	if s.PhaseMod.Enabled {
		pl.phaseMod.process(chunk, sampleRate, s.PhaseMod)
	}
	if s.AmpMod.Enabled {
		pl.ampMod.process(chunk, sampleRate, s.AmpMod)
	}
	if s.SyncWobble.Enabled {
		pl.syncWobble.process(chunk, sampleRate, s.SyncWobble)
	}
	if s.SyncDropout.Enabled {
		pl.syncDropout.process(chunk, sampleRate, s.SyncDropout)
	}
	if s.Scanline.Enabled {
		pl.scanline.process(chunk, sampleRate, s.Scanline)
	}
	if s.Noise.Enabled {
		pl.noise.process(chunk, sampleRate, s.Noise)
	}
	if s.Distortion.Enabled {
		pl.distortion.process(chunk, sampleRate, s.Distortion)
	}
	if s.Harmonic.Enabled {
		pl.harmonic.process(chunk, sampleRate, s.Harmonic)
	}
	if s.Bitcrush.Enabled {
		pl.bitcrush.process(chunk, sampleRate, s.Bitcrush)
	}
	if s.FreqShift.Enabled {
		pl.freqShift.process(chunk, sampleRate, s.FreqShift)
	}
	if s.Bandpass.Enabled {
		pl.bandpass.process(chunk, sampleRate, s.Bandpass)
	}
	if s.Delay.Enabled {
		pl.delay.process(chunk, sampleRate, s.Delay)
	}
	if s.TimeStretch.Enabled {
		chunk = pl.timeStretch.process(chunk, sampleRate, s.TimeStretch)
	}

	normalizePeak(chunk)
	return chunk
}

// ProcessBatch runs the whole clip through the pipeline in a single call.
// On a fresh Pipeline this equals one ProcessChunk over the whole clip. A
// streaming caller splitting the same clip into many small chunks gets a
// different result where work is done per chunk: TimeStretch resamples and
// FreqShift Hilbert-transforms one chunk at a time, and peak normalization
// is applied per chunk.
func (pl *Pipeline) ProcessBatch(audio []float32, sampleRate int) []float32 {
	out := make([]float32, len(audio))
	copy(out, audio)
	return pl.ProcessChunk(out, sampleRate)
}

// normalizePeak scales chunk down, never up, so its peak absolute value
// never exceeds 1.0. Quiet passages are left alone: scaling them up would
// cause audible volume pumping between chunks in the streaming player.
func normalizePeak(chunk []float32) {
	var peak float32
	for _, x := range chunk {
		a := x
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	if peak <= 1.0 || peak == 0 {
		return
	}
	scale := 1.0 / peak
	for i := range chunk {
		chunk[i] *= scale
	}
}
