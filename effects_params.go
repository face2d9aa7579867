// effects_params.go - the effect parameter space.
//
// Design note 9.2 in the spec calls for a tagged variant in place of the
// source's (string, string) keyed updates, "to make the FIFO payload a
// concrete size and eliminate string comparisons in the callback." This
// file is that tagged variant: ParamField names exactly one (effect, param)
// pair, ParamUpdate carries a ParamField plus a float64 payload, and the
// string-to-field resolution (EffectByName/FieldByName) runs once on the
// control-thread producer side in Pipeline.UpdateParam — never inside the
// audio callback.
package sstv

// EffectID names one entry in the fixed processing order from the data
// model. The order of these constants IS the pipeline's fixed chain order.
type EffectID int

const (
	EffectPhaseMod EffectID = iota
	EffectAmpMod
	EffectSyncWobble
	EffectSyncDropout
	EffectScanline
	EffectNoise
	EffectDistortion
	EffectHarmonic
	EffectBitcrush
	EffectFreqShift
	EffectBandpass
	EffectDelay
	EffectTimeStretch
	numEffects
)

func (e EffectID) String() string {
	names := [...]string{
		"phasemod", "ampmod", "syncwobble", "syncdropout", "scanline",
		"noise", "distortion", "harmonic", "bitcrush", "freqshift",
		"bandpass", "delay", "timestretch",
	}
	if int(e) < 0 || int(e) >= len(names) {
		return "unknown"
	}
	return names[e]
}

// NoiseType selects the corruption texture the noise effect mixes in.
type NoiseType int

const (
	NoiseWhite NoiseType = iota
	NoisePink
	NoiseGaussian
	NoiseCrackle
)

type PhaseModParams struct {
	Enabled    bool
	Depth      float64 // [0,1]
	RateHz     float64 // [0.5,20]
}

type AmpModParams struct {
	Enabled bool
	Depth   float64 // [0,1]
	RateHz  float64 // [1,25]
}

type SyncWobbleParams struct {
	Enabled bool
	Amount  float64 // [0,1]
	FreqHz  float64 // [0.5,20]
}

type SyncDropoutParams struct {
	Enabled    bool
	Prob       float64 // [0,1]
	DurationMS float64 // [1,20]
}

type ScanlineParams struct {
	Enabled   bool
	Freq      float64 // [0,1] probability per band
	Intensity float64 // [0,1]
}

type NoiseParams struct {
	Enabled bool
	Amount  float64 // [0,1]
	Type    NoiseType
}

type DistortionParams struct {
	Enabled bool
	Drive   float64 // [0,1]
	Clip    float64 // [0,1]
}

type HarmonicParams struct {
	Enabled bool
	Amount  float64 // [0,1]
	Count   int     // {1..5}
}

type BitcrushParams struct {
	Enabled bool
	Bits    int     // {1..16}
	RateHz  float64 // [1000,44100]
}

type FreqShiftParams struct {
	Enabled bool
	Hz      float64 // [-500,500]
}

type BandpassParams struct {
	Enabled bool
	LowHz   float64 // [100,2000]
	HighHz  float64 // [1000,10000]
}

type DelayParams struct {
	Enabled  bool
	TimeMS   float64 // [3,500]
	Feedback float64 // [0,0.9]
	Mix      float64 // [0,1]
}

type TimeStretchParams struct {
	Enabled bool
	Rate    float64 // [0.1,4.0]
}

// ParamSnapshot is the pipeline's live-parameter map, generalized from the
// source's dict-of-(effect,param) into one concrete struct with an inline
// field per effect — the "small array of variants" design note 9.3 asks for,
// applied to parameters instead of effect instances.
type ParamSnapshot struct {
	PhaseMod    PhaseModParams
	AmpMod      AmpModParams
	SyncWobble  SyncWobbleParams
	SyncDropout SyncDropoutParams
	Scanline    ScanlineParams
	Noise       NoiseParams
	Distortion  DistortionParams
	Harmonic    HarmonicParams
	Bitcrush    BitcrushParams
	FreqShift   FreqShiftParams
	Bandpass    BandpassParams
	Delay       DelayParams
	TimeStretch TimeStretchParams
}

// DefaultParamSnapshot returns a snapshot with every effect disabled and
// parameters at a sane mid-range default, ready to be overridden by the
// caller's initial settings.
func DefaultParamSnapshot() ParamSnapshot {
	return ParamSnapshot{
		PhaseMod:    PhaseModParams{Depth: 0.3, RateHz: 2},
		AmpMod:      AmpModParams{Depth: 0.3, RateHz: 5},
		SyncWobble:  SyncWobbleParams{Amount: 0.3, FreqHz: 2},
		SyncDropout: SyncDropoutParams{Prob: 0.1, DurationMS: 5},
		Scanline:    ScanlineParams{Freq: 0.1, Intensity: 0.5},
		Noise:       NoiseParams{Amount: 0.1, Type: NoiseWhite},
		Distortion:  DistortionParams{Drive: 0.3, Clip: 0.5},
		Harmonic:    HarmonicParams{Amount: 0.2, Count: 2},
		Bitcrush:    BitcrushParams{Bits: 8, RateHz: 22050},
		FreqShift:   FreqShiftParams{Hz: 0},
		Bandpass:    BandpassParams{LowHz: 300, HighHz: 2800},
		Delay:       DelayParams{TimeMS: 100, Feedback: 0.3, Mix: 0.3},
		TimeStretch: TimeStretchParams{Rate: 1.0},
	}
}

// ParamField names exactly one (effect, parameter) pair. Its zero value and
// ordering have no semantic meaning beyond identity.
type ParamField int

const (
	FieldPhaseModEnabled ParamField = iota
	FieldPhaseModDepth
	FieldPhaseModRate
	FieldAmpModEnabled
	FieldAmpModDepth
	FieldAmpModRate
	FieldSyncWobbleEnabled
	FieldSyncWobbleAmount
	FieldSyncWobbleFreq
	FieldSyncDropoutEnabled
	FieldSyncDropoutProb
	FieldSyncDropoutDuration
	FieldScanlineEnabled
	FieldScanlineFreq
	FieldScanlineIntensity
	FieldNoiseEnabled
	FieldNoiseAmount
	FieldNoiseType
	FieldDistortionEnabled
	FieldDistortionDrive
	FieldDistortionClip
	FieldHarmonicEnabled
	FieldHarmonicAmount
	FieldHarmonicCount
	FieldBitcrushEnabled
	FieldBitcrushBits
	FieldBitcrushRate
	FieldFreqShiftEnabled
	FieldFreqShiftHz
	FieldBandpassEnabled
	FieldBandpassLow
	FieldBandpassHigh
	FieldDelayEnabled
	FieldDelayTime
	FieldDelayFeedback
	FieldDelayMix
	FieldTimeStretchEnabled
	FieldTimeStretchRate
)

// fieldNames maps "effect.param" to its ParamField, resolved once per
// UpdateParam call on the control thread — never inside the audio callback.
var fieldNames = map[string]ParamField{
	"phasemod.enabled": FieldPhaseModEnabled, "phasemod.depth": FieldPhaseModDepth, "phasemod.rate": FieldPhaseModRate,
	"ampmod.enabled": FieldAmpModEnabled, "ampmod.depth": FieldAmpModDepth, "ampmod.rate": FieldAmpModRate,
	"syncwobble.enabled": FieldSyncWobbleEnabled, "syncwobble.amount": FieldSyncWobbleAmount, "syncwobble.freq": FieldSyncWobbleFreq,
	"syncdropout.enabled": FieldSyncDropoutEnabled, "syncdropout.prob": FieldSyncDropoutProb, "syncdropout.duration": FieldSyncDropoutDuration,
	"scanline.enabled": FieldScanlineEnabled, "scanline.freq": FieldScanlineFreq, "scanline.intensity": FieldScanlineIntensity,
	"noise.enabled": FieldNoiseEnabled, "noise.amount": FieldNoiseAmount, "noise.type": FieldNoiseType,
	"distortion.enabled": FieldDistortionEnabled, "distortion.drive": FieldDistortionDrive, "distortion.clip": FieldDistortionClip,
	"harmonic.enabled": FieldHarmonicEnabled, "harmonic.amount": FieldHarmonicAmount, "harmonic.count": FieldHarmonicCount,
	"bitcrush.enabled": FieldBitcrushEnabled, "bitcrush.bits": FieldBitcrushBits, "bitcrush.rate": FieldBitcrushRate,
	"freqshift.enabled": FieldFreqShiftEnabled, "freqshift.hz": FieldFreqShiftHz,
	"bandpass.enabled": FieldBandpassEnabled, "bandpass.low": FieldBandpassLow, "bandpass.high": FieldBandpassHigh,
	"delay.enabled": FieldDelayEnabled, "delay.time": FieldDelayTime, "delay.feedback": FieldDelayFeedback, "delay.mix": FieldDelayMix,
	"timestretch.enabled": FieldTimeStretchEnabled, "timestretch.rate": FieldTimeStretchRate,
}

// ResolveField looks up the ParamField for "effect.param", returning false
// if the pair is not recognized (Pipeline.UpdateParam then rejects it with
// ErrParamOutOfRange before anything is queued).
func ResolveField(effect, param string) (ParamField, bool) {
	f, ok := fieldNames[effect+"."+param]
	return f, ok
}

// ParamUpdate is the SPSC queue payload: one resolved field plus its new
// value, a boolean Enabled encoded as 0/1.
type ParamUpdate struct {
	Field ParamField
	Value float64
}

// apply writes u into the matching field of s. Called only from the
// audio-callback thread, after draining the queue.
func (s *ParamSnapshot) apply(u ParamUpdate) {
	switch u.Field {
	case FieldPhaseModEnabled:
		s.PhaseMod.Enabled = u.Value != 0
	case FieldPhaseModDepth:
		s.PhaseMod.Depth = u.Value
	case FieldPhaseModRate:
		s.PhaseMod.RateHz = u.Value
	case FieldAmpModEnabled:
		s.AmpMod.Enabled = u.Value != 0
	case FieldAmpModDepth:
		s.AmpMod.Depth = u.Value
	case FieldAmpModRate:
		s.AmpMod.RateHz = u.Value
	case FieldSyncWobbleEnabled:
		s.SyncWobble.Enabled = u.Value != 0
	case FieldSyncWobbleAmount:
		s.SyncWobble.Amount = u.Value
	case FieldSyncWobbleFreq:
		s.SyncWobble.FreqHz = u.Value
	case FieldSyncDropoutEnabled:
		s.SyncDropout.Enabled = u.Value != 0
	case FieldSyncDropoutProb:
		s.SyncDropout.Prob = u.Value
	case FieldSyncDropoutDuration:
		s.SyncDropout.DurationMS = u.Value
	case FieldScanlineEnabled:
		s.Scanline.Enabled = u.Value != 0
	case FieldScanlineFreq:
		s.Scanline.Freq = u.Value
	case FieldScanlineIntensity:
		s.Scanline.Intensity = u.Value
	case FieldNoiseEnabled:
		s.Noise.Enabled = u.Value != 0
	case FieldNoiseAmount:
		s.Noise.Amount = u.Value
	case FieldNoiseType:
		s.Noise.Type = NoiseType(int(u.Value))
	case FieldDistortionEnabled:
		s.Distortion.Enabled = u.Value != 0
	case FieldDistortionDrive:
		s.Distortion.Drive = u.Value
	case FieldDistortionClip:
		s.Distortion.Clip = u.Value
	case FieldHarmonicEnabled:
		s.Harmonic.Enabled = u.Value != 0
	case FieldHarmonicAmount:
		s.Harmonic.Amount = u.Value
	case FieldHarmonicCount:
		s.Harmonic.Count = int(u.Value)
	case FieldBitcrushEnabled:
		s.Bitcrush.Enabled = u.Value != 0
	case FieldBitcrushBits:
		s.Bitcrush.Bits = int(u.Value)
	case FieldBitcrushRate:
		s.Bitcrush.RateHz = u.Value
	case FieldFreqShiftEnabled:
		s.FreqShift.Enabled = u.Value != 0
	case FieldFreqShiftHz:
		s.FreqShift.Hz = u.Value
	case FieldBandpassEnabled:
		s.Bandpass.Enabled = u.Value != 0
	case FieldBandpassLow:
		s.Bandpass.LowHz = u.Value
	case FieldBandpassHigh:
		s.Bandpass.HighHz = u.Value
	case FieldDelayEnabled:
		s.Delay.Enabled = u.Value != 0
	case FieldDelayTime:
		s.Delay.TimeMS = u.Value
	case FieldDelayFeedback:
		s.Delay.Feedback = u.Value
	case FieldDelayMix:
		s.Delay.Mix = u.Value
	case FieldTimeStretchEnabled:
		s.TimeStretch.Enabled = u.Value != 0
	case FieldTimeStretchRate:
		s.TimeStretch.Rate = u.Value
	}
}

// Enabled reports whether the named effect is currently enabled in s.
func (s *ParamSnapshot) Enabled(id EffectID) bool {
	switch id {
	case EffectPhaseMod:
		return s.PhaseMod.Enabled
	case EffectAmpMod:
		return s.AmpMod.Enabled
	case EffectSyncWobble:
		return s.SyncWobble.Enabled
	case EffectSyncDropout:
		return s.SyncDropout.Enabled
	case EffectScanline:
		return s.Scanline.Enabled
	case EffectNoise:
		return s.Noise.Enabled
	case EffectDistortion:
		return s.Distortion.Enabled
	case EffectHarmonic:
		return s.Harmonic.Enabled
	case EffectBitcrush:
		return s.Bitcrush.Enabled
	case EffectFreqShift:
		return s.FreqShift.Enabled
	case EffectBandpass:
		return s.Bandpass.Enabled
	case EffectDelay:
		return s.Delay.Enabled
	case EffectTimeStretch:
		return s.TimeStretch.Enabled
	default:
		return false
	}
}
