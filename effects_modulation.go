// effects_modulation.go - the phase/frequency-domain impairment effects:
// phasemod, ampmod, syncwobble and freqshift. Each carries its own
// phaseAccumulator (or, for freqshift, a stored phase offset) so its LFO or
// carrier phase is continuous across chunk boundaries exactly like the
// encoder's carrier. Formulas follow the data model's per-effect semantics
// literally rather than approximating them.
package sstv

import "math"

// phaseModEffect produces a time-varying integer delay of up to 10ms*Depth,
// driven by a RateHz sine LFO plus a smoothed (100-sample moving average)
// uniform-random jitter; output sample n is input sample n - shift(n).
type phaseModEffect struct {
	lfo       phaseAccumulator
	rng       lfsr
	seeded    bool
	jitterBuf [100]float32
	jitterPos int
	jitterSum float32
	history   []float32
	histLen   int
	writeAt   int
}

func (e *phaseModEffect) id() EffectID { return EffectPhaseMod }

func (e *phaseModEffect) process(chunk []float32, sampleRate int, p PhaseModParams) {
	if !e.seeded {
		// 10ms is the largest possible delay (Depth==1); a little slack
		// keeps the integer-delay lookup comfortably inside history.
		e.histLen = int(0.012*float64(sampleRate)) + 4
		if e.histLen < 8 {
			e.histLen = 8
		}
		e.history = make([]float32, e.histLen)
		e.rng = newLFSR(0xF00D)
		e.seeded = true
	}
	sr := float64(sampleRate)
	maxDelaySamples := 10.0 * p.Depth * sr / 1000.0

	for i, x := range chunk {
		e.history[e.writeAt%e.histLen] = x
		e.writeAt++

		raw := e.rng.uniform()
		e.jitterSum += raw - e.jitterBuf[e.jitterPos]
		e.jitterBuf[e.jitterPos] = raw
		e.jitterPos = (e.jitterPos + 1) % len(e.jitterBuf)
		jitter := e.jitterSum / float32(len(e.jitterBuf))

		lfo := e.lfo.Step(p.RateHz, sr)
		shift := (float64(lfo)*0.5 + float64(jitter)*0.5 + 0.5) * maxDelaySamples
		if shift < 0 {
			shift = 0
		}
		if shift > maxDelaySamples {
			shift = maxDelaySamples
		}

		delaySamples := int(shift + 0.5) // integer delay, per the data model
		// history[writeAt-1] holds the current sample (zero delay).
		idx := e.writeAt - 1 - delaySamples
		chunk[i] = e.history[((idx%e.histLen)+e.histLen)%e.histLen]
	}
}

// ampModEffect multiplies the input by
// 1 + depth*(0.5*sin(2*pi*f*t) + 0.3*sin(2*pi*1.618*f*t) + 0.2*sin(2*pi*0.5*f*t)),
// three phase-continuous LFOs at f, 1.618f and 0.5f summed with the data
// model's literal weights.
type ampModEffect struct {
	lfo1, lfo2, lfo3 phaseAccumulator
}

func (e *ampModEffect) id() EffectID { return EffectAmpMod }

func (e *ampModEffect) process(chunk []float32, sampleRate int, p AmpModParams) {
	sr := float64(sampleRate)
	for i, x := range chunk {
		s1 := e.lfo1.Step(p.RateHz, sr)
		s2 := e.lfo2.Step(p.RateHz*1.618, sr)
		s3 := e.lfo3.Step(p.RateHz*0.5, sr)
		mod := 0.5*s1 + 0.3*s2 + 0.2*s3
		gain := 1 + float32(p.Depth)*mod
		chunk[i] = x * gain
	}
}

// syncWobbleEffect simulates receiver AFC hunting near the sync tone:
// multiplies by 1 + amount*0.15*(0.7*sin(2*pi*f*t) + 0.3*uniform_jitter).
type syncWobbleEffect struct {
	lfo    phaseAccumulator
	rng    lfsr
	seeded bool
}

func (e *syncWobbleEffect) id() EffectID { return EffectSyncWobble }

func (e *syncWobbleEffect) process(chunk []float32, sampleRate int, p SyncWobbleParams) {
	if !e.seeded {
		e.rng = newLFSR(0xFEED)
		e.seeded = true
	}
	sr := float64(sampleRate)
	for i, x := range chunk {
		lfo := e.lfo.Step(p.FreqHz, sr)
		jitter := e.rng.uniform()
		mod := 0.7*lfo + 0.3*jitter
		gain := 1 + float32(p.Amount)*0.15*mod
		chunk[i] = x * gain
	}
}

// freqShiftEffect is a single-sideband frequency shift via the analytic
// signal: Hilbert-transform the chunk, multiply by exp(j(2*pi*hz*t + phi)),
// and take the real part. phi carries across chunks so the shifted tone
// stays phase-continuous at chunk boundaries, exactly like the encoder's
// carrier.
type freqShiftEffect struct {
	phase float64
}

func (e *freqShiftEffect) id() EffectID { return EffectFreqShift }

func (e *freqShiftEffect) process(chunk []float32, sampleRate int, p FreqShiftParams) {
	n := len(chunk)
	if n == 0 {
		return
	}
	x := make([]float64, n)
	for i, v := range chunk {
		x[i] = float64(v)
	}
	analytic := hilbertAnalytic(x)

	w := 2 * math.Pi * p.Hz / float64(sampleRate)
	for i, a := range analytic {
		ang := w*float64(i) + e.phase
		// Re[(ar + j*ai) * (cos(ang) + j*sin(ang))] = ar*cos(ang) - ai*sin(ang)
		chunk[i] = float32(real(a)*math.Cos(ang) - imag(a)*math.Sin(ang))
	}
	e.phase = math.Mod(e.phase+w*float64(n), 2*math.Pi)
}
