// sstv_modes.go - static table of SSTV modes and their timing constants.
//
// Grounded on the teacher's register-constant tables in audio_chip.go (a
// read-only const/struct table keyed by a small integer/string ID, queried
// at setup time and never mutated at runtime).
package sstv

import "math"

// ChannelOrder names the per-scanline colour channel sequence a mode uses.
type ChannelOrder int

const (
	ChannelOrderGBR ChannelOrder = iota
	ChannelOrderRGB
	ChannelOrderYCrCb
)

// SampleRate is the single fixed sample rate used throughout the system.
const SampleRate = 44100

// Frequency constants (Hz) from the data model.
const (
	FreqSync  = 1200.0
	FreqBlack = 1500.0
	FreqWhite = 2300.0
)

// HeaderDurationMS is the fixed header tone duration applied to every mode.
const HeaderDurationMS = 910.0

// Mode is an immutable descriptor for one SSTV mode.
type Mode struct {
	Name        string
	Width       int
	Height      int
	SyncMS      float64
	ScanMS      float64
	GapMS       float64
	Order       ChannelOrder
	SyncAtEnd   bool
	NativeScale bool // true for "Native": ScanMS is derived from Width at encode time
}

// ModeNative is a pseudo-mode name: width/height are supplied at encode time,
// and LookupMode(ModeNative, w, h) derives a concrete Mode with scan duration scaled from
// MartinM1's reference pixel rate (146.432ms / 320px).
const ModeNative = "Native"

const nativeReferenceScanMS = 146.432
const nativeReferenceWidth = 320

var modeTable = map[string]Mode{
	"MartinM1": {
		Name: "MartinM1", Width: 320, Height: 256,
		SyncMS: 4.862, ScanMS: 146.432, GapMS: 0.572,
		Order: ChannelOrderGBR,
	},
	"MartinM2": {
		Name: "MartinM2", Width: 320, Height: 256,
		SyncMS: 4.862, ScanMS: 73.216, GapMS: 0.572,
		Order: ChannelOrderGBR,
	},
	"ScottieS1": {
		Name: "ScottieS1", Width: 320, Height: 256,
		SyncMS: 9.0, ScanMS: 138.24, GapMS: 1.5,
		Order: ChannelOrderGBR, SyncAtEnd: true,
	},
	"ScottieS2": {
		Name: "ScottieS2", Width: 320, Height: 256,
		SyncMS: 9.0, ScanMS: 88.064, GapMS: 1.5,
		Order: ChannelOrderGBR, SyncAtEnd: true,
	},
	"ScottieDX": {
		Name: "ScottieDX", Width: 320, Height: 256,
		SyncMS: 9.0, ScanMS: 345.6, GapMS: 1.5,
		Order: ChannelOrderGBR, SyncAtEnd: true,
	},
	"Robot36": {
		Name: "Robot36", Width: 320, Height: 240,
		SyncMS: 9.0, ScanMS: 88.0, GapMS: 3.0,
		Order: ChannelOrderYCrCb,
	},
	"PD120": {
		Name: "PD120", Width: 640, Height: 496,
		SyncMS: 20.0, ScanMS: 121.6, GapMS: 2.08,
		Order: ChannelOrderYCrCb,
	},
}

// LookupMode returns the descriptor for name, deriving a Native descriptor
// on the fly when name == ModeNative and w/h are supplied (w,h ignored for
// any other name). Fails with ErrUnknownMode for anything else.
func LookupMode(name string, w, h int) (Mode, error) {
	if name == ModeNative {
		if w <= 0 || h <= 0 {
			return Mode{}, wrapErr("LookupMode", "native mode requires width and height", ErrUnknownMode)
		}
		scanMS := float64(w) * (nativeReferenceScanMS / nativeReferenceWidth)
		return Mode{
			Name: ModeNative, Width: w, Height: h,
			SyncMS: 4.862, ScanMS: scanMS, GapMS: 0.572,
			Order: ChannelOrderGBR, NativeScale: true,
		}, nil
	}
	m, ok := modeTable[name]
	if !ok {
		return Mode{}, wrapErr("LookupMode", name, ErrUnknownMode)
	}
	return m, nil
}

// KnownModes returns every statically registered mode descriptor (excluding
// Native, which is parametric and has no fixed width/height).
func KnownModes() []Mode {
	out := make([]Mode, 0, len(modeTable))
	for _, m := range modeTable {
		out = append(out, m)
	}
	return out
}

// msToSamples rounds a millisecond duration at the given sample rate to the
// nearest sample count, using round-half-to-even (banker's rounding) so that
// sub-sample drift accumulated over many lines stays bounded to ±0.5 sample.
// Rounding happens only here, at the moment of indexing — never mid-arithmetic.
func msToSamples(ms float64, sampleRate int) int {
	return int(math.RoundToEven(ms * float64(sampleRate) / 1000.0))
}

// Timing holds the derived sample counts for one mode at a fixed sample rate.
type Timing struct {
	HeaderSamples int
	SyncSamples   int
	ScanSamples   int
	GapSamples    int
	LineSamples   int
	TotalSamples  int
}

// DeriveTiming computes the per-mode sample counts used by the encoder and
// decoder. Width/height come from the mode itself.
func DeriveTiming(m Mode, sampleRate int) Timing {
	t := Timing{
		HeaderSamples: msToSamples(HeaderDurationMS, sampleRate),
		SyncSamples:   msToSamples(m.SyncMS, sampleRate),
		ScanSamples:   msToSamples(m.ScanMS, sampleRate),
		GapSamples:    msToSamples(m.GapMS, sampleRate),
	}
	t.LineSamples = t.SyncSamples + 4*t.GapSamples + 3*t.ScanSamples
	t.TotalSamples = t.HeaderSamples + m.Height*t.LineSamples
	return t
}
