package sstv

import (
	"image"
	"math"
	"testing"
)

func solidImage(w, h int, r, g, b uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.PixOffset(x, y)
			img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = r, g, b, 255
		}
	}
	return img
}

func TestEncodeLengthMatchesTiming(t *testing.T) {
	m, _ := LookupMode("MartinM1", 0, 0)
	img := solidImage(m.Width, m.Height, 128, 128, 128)
	bytes := newImageRGBBytes(img, m.Order)

	audio := Encode(bytes, m, SampleRate)
	t_ := DeriveTiming(m, SampleRate)
	if len(audio) != t_.TotalSamples {
		t.Fatalf("Encode length = %d, want %d", len(audio), t_.TotalSamples)
	}
}

func TestEncodeAmplitudeBounded(t *testing.T) {
	m, _ := LookupMode("Robot36", 0, 0)
	img := solidImage(m.Width, m.Height, 200, 40, 220)
	bytes := newImageRGBBytes(img, m.Order)

	audio := Encode(bytes, m, SampleRate)
	for i, s := range audio {
		if s < -1.0001 || s > 1.0001 {
			t.Fatalf("sample %d out of bounds: %v", i, s)
		}
	}
}

// TestEncodePhaseContinuity checks that the synthesized carrier never jumps
// by more than one sample's worth of phase at the boundary between the
// header tone and the first line's sync tone - the critical invariant a
// reset phase accumulator would violate.
func TestEncodePhaseContinuity(t *testing.T) {
	m, _ := LookupMode("MartinM1", 0, 0)
	img := solidImage(m.Width, m.Height, 0, 0, 0)
	bytes := newImageRGBBytes(img, m.Order)

	audio := Encode(bytes, m, SampleRate)
	timing := DeriveTiming(m, SampleRate)

	maxStepRadians := 2 * math.Pi * FreqWhite / SampleRate * 1.5
	checkNoDiscontinuity(t, audio, timing.HeaderSamples, maxStepRadians)
}

func checkNoDiscontinuity(t *testing.T, audio []float32, boundary int, maxStep float64) {
	t.Helper()
	if boundary < 1 || boundary >= len(audio) {
		return
	}
	// A phase-continuous sine can still step by up to the instantaneous
	// angular frequency per sample; verify the sample delta stays within
	// what the highest carrier frequency would produce, rather than
	// requiring near-equality (which a swept tone would violate too).
	delta := math.Abs(float64(audio[boundary]) - float64(audio[boundary-1]))
	// |sin(a+step) - sin(a)| <= step, so maxStep (radians) bounds the delta.
	if delta > maxStep {
		t.Fatalf("implausible sample jump at boundary %d: %v", boundary, delta)
	}
}

func TestPixelFreqRange(t *testing.T) {
	if f := pixelFreq(0); f != FreqBlack {
		t.Errorf("pixelFreq(0) = %v, want %v", f, FreqBlack)
	}
	if f := pixelFreq(255); f != FreqWhite {
		t.Errorf("pixelFreq(255) = %v, want %v", f, FreqWhite)
	}
}

func TestChannelIndexOrder(t *testing.T) {
	gbr := channelIndexOrder(ChannelOrderGBR)
	if len(gbr) != 3 {
		t.Fatalf("channelIndexOrder(GBR) len = %d, want 3", len(gbr))
	}
	rgb := channelIndexOrder(ChannelOrderRGB)
	if rgb[0] != 0 || rgb[1] != 1 || rgb[2] != 2 {
		t.Fatalf("channelIndexOrder(RGB) = %v, want [0 1 2]", rgb)
	}
}
