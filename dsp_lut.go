// dsp_lut.go - lookup-table oscillator and saturation helpers.
//
// Adapted from the teacher's audio_lut.go: the same sine/tanh lookup table
// construction and linear-interpolation lookup technique, generalized from a
// per-channel-type oscillator into a standalone phaseAccumulator shared by
// the encoder and by every effect that needs a continuous-phase oscillator
// (phasemod, ampmod, syncwobble, harmonic, and scanline's spike tone;
// freqshift keeps its own phase offset instead).
package sstv

import "math"

const twoPi = float32(2 * math.Pi)

// Lookup table sizes.
const (
	sinLUTSize  = 8192           // 8192 entries for sine (~0.00077 radian resolution)
	sinLUTMask  = sinLUTSize - 1 // mask for fast modulo
	tanhLUTSize = 4096           // 4096 entries for tanh
	tanhLUTMin  = float32(-4.0)
	tanhLUTMax  = float32(4.0)
)

const (
	sinLUTScale  = float32(sinLUTSize) / (2 * math.Pi)
	tanhLUTScale = float32(tanhLUTSize-1) / (tanhLUTMax - tanhLUTMin)
)

// sinLUT contains precomputed sine values for phase [0, 2π).
var sinLUT [sinLUTSize]float32

// tanhLUT contains precomputed tanh values for input [-4, 4].
var tanhLUT [tanhLUTSize]float32

func init() {
	for i := 0; i < sinLUTSize; i++ {
		phase := float64(i) * 2 * math.Pi / float64(sinLUTSize)
		sinLUT[i] = float32(math.Sin(phase))
	}
	for i := 0; i < tanhLUTSize; i++ {
		x := float64(tanhLUTMin) + float64(i)*float64(tanhLUTMax-tanhLUTMin)/float64(tanhLUTSize-1)
		tanhLUT[i] = float32(math.Tanh(x))
	}
}

// fastSin returns sin(phase) via lookup table with linear interpolation.
// Phase in radians; values outside [0, 2π) are wrapped.
//
//go:nosplit
func fastSin(phase float32) float32 {
	if phase < 0 {
		phase += twoPi
		if phase < 0 {
			phase = phase - twoPi*float32(int(phase/twoPi)-1)
		}
	} else if phase >= twoPi {
		phase = phase - twoPi*float32(int(phase/twoPi))
	}

	indexF := phase * sinLUTScale
	index := int(indexF)
	frac := indexF - float32(index)

	index &= sinLUTMask
	nextIndex := (index + 1) & sinLUTMask

	return sinLUT[index] + frac*(sinLUT[nextIndex]-sinLUT[index])
}

// fastTanh returns tanh(x) via lookup table with linear interpolation.
// Input is clamped to [-4, 4] (tanh saturates quickly outside this range).
//
//go:nosplit
func fastTanh(x float32) float32 {
	if x <= tanhLUTMin {
		return -1.0
	}
	if x >= tanhLUTMax {
		return 1.0
	}

	indexF := (x - tanhLUTMin) * tanhLUTScale
	index := int(indexF)
	frac := indexF - float32(index)

	if index < 0 {
		return tanhLUT[0]
	}
	if index >= tanhLUTSize-1 {
		return tanhLUT[tanhLUTSize-1]
	}

	return tanhLUT[index] + frac*(tanhLUT[index+1]-tanhLUT[index])
}

// phaseAccumulator tracks a running phase in [0, 2π) driven by a
// per-sample instantaneous frequency, the device this whole repository
// exists to get right: the accumulator must never reset at a segment or
// chunk boundary, only wrap modulo 2π.
type phaseAccumulator struct {
	phase float64 // radians, unbounded accumulation collapsed to [0,2π) each step
}

// Step advances the phase by freqHz/sampleRate cycles and returns sin of the
// new phase via the LUT.
func (p *phaseAccumulator) Step(freqHz float64, sampleRate float64) float32 {
	p.phase += 2 * math.Pi * freqHz / sampleRate
	if p.phase >= 2*math.Pi {
		p.phase = math.Mod(p.phase, 2*math.Pi)
	}
	return fastSin(float32(p.phase))
}

// Phase returns the current running phase in radians, unwrapped into [0,2π).
func (p *phaseAccumulator) Phase() float64 { return p.phase }
