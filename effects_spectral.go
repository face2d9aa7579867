// effects_spectral.go - the remaining three effects: bandpass, delay and
// timestretch.
//
// bandpassEffect cascades two RBJ-cookbook biquad sections via dsp_filter.go's
// biquadSection/newBandpassSection, the same 4th-order-Butterworth-equivalent
// shape the decoder's own fixed bandpass (dsp_filter.go) uses, recomputed
// only when Low/High/sampleRate change. On a coefficient change the state is
// re-seeded from the first incoming sample, per the data model's explicit
// anti-click instruction, rather than reset to zero.
package sstv

// bandpassEffect is a 2-section RBJ-cookbook bandpass cascade (constant 0dB
// peak gain form per section), with coefficients recomputed only when
// Low/High change.
type bandpassEffect struct {
	sections          [2]biquadSection
	lastLow, lastHigh float64
	lastSR            int
	ready             bool
}

func (e *bandpassEffect) id() EffectID { return EffectBandpass }

func (e *bandpassEffect) process(chunk []float32, sampleRate int, p BandpassParams) {
	changed := !e.ready || p.LowHz != e.lastLow || p.HighHz != e.lastHigh || sampleRate != e.lastSR
	if changed {
		sec := newBandpassSection(p.LowHz, p.HighHz, sampleRate)
		e.sections = [2]biquadSection{sec, sec}
		if len(chunk) > 0 {
			seed := float64(chunk[0])
			for s := range e.sections {
				e.sections[s].x1, e.sections[s].x2 = seed, seed
				e.sections[s].y1, e.sections[s].y2 = seed, seed
			}
		}
		e.lastLow, e.lastHigh, e.lastSR = p.LowHz, p.HighHz, sampleRate
		e.ready = true
	}
	for i, xf := range chunk {
		y := float64(xf)
		for s := range e.sections {
			y = e.sections[s].step(y)
		}
		chunk[i] = float32(y)
	}
}

// delayEffect is a feedback delay line over a fixed-capacity ring sized for
// the maximum allowed delay time (500ms), so TimeMS changes never need to
// reallocate.
type delayEffect struct {
	buf    []float32
	sr     int
	pos    int
}

const delayMaxMS = 500.0

func (e *delayEffect) id() EffectID { return EffectDelay }

func (e *delayEffect) process(chunk []float32, sampleRate int, p DelayParams) {
	if e.buf == nil || e.sr != sampleRate {
		e.sr = sampleRate
		e.buf = make([]float32, int(delayMaxMS*float64(sampleRate)/1000.0)+1)
		e.pos = 0
	}
	delaySamples := int(p.TimeMS * float64(sampleRate) / 1000.0)
	if delaySamples < 1 {
		delaySamples = 1
	}
	if delaySamples >= len(e.buf) {
		delaySamples = len(e.buf) - 1
	}
	n := len(e.buf)
	for i, x := range chunk {
		readPos := (e.pos - delaySamples + n) % n
		tap := e.buf[readPos]
		e.buf[e.pos] = x + tap*float32(p.Feedback)
		chunk[i] = x*(1-float32(p.Mix)) + tap*float32(p.Mix)
		e.pos = (e.pos + 1) % n
		_ = i
	}
}

// timeStretchEffect changes playback rate by resampling the chunk to
// len/Rate samples via resampleLinear, then zero-padding or truncating the
// result back to the chunk's original length, so the sample count of a
// chunk never changes. This necessarily also shifts pitch — a real
// time-domain stretch (granular/PSOLA) needs a lookahead window spanning
// future chunks that a per-chunk real-time effect does not have, a
// limitation always present in this design rather than an
// implementation gap to fix later.
type timeStretchEffect struct{}

func (e *timeStretchEffect) id() EffectID { return EffectTimeStretch }

func (e *timeStretchEffect) process(chunk []float32, sampleRate int, p TimeStretchParams) []float32 {
	if p.Rate <= 0 || p.Rate == 1 {
		return chunk
	}
	n := int(float64(len(chunk)) / p.Rate)
	if n < 1 {
		n = 1
	}
	src := make([]float64, len(chunk))
	for i, x := range chunk {
		src[i] = float64(x)
	}
	dst := resampleLinear(src, n)
	out := make([]float32, len(chunk))
	for i := 0; i < len(out) && i < len(dst); i++ {
		out[i] = float32(dst[i])
	}
	return out
}
