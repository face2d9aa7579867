package sstv

import (
	"image"
	"testing"
)

func checkerboardImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.PixOffset(x, y)
			var v uint8 = 40
			if (x/16+y/16)%2 == 0 {
				v = 220
			}
			img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = v, v, v, 255
		}
	}
	return img
}

// TestRoundTripPixelAccuracy encodes a synthetic image, decodes it straight
// back (no effects applied), and checks that at least 95% of pixels land
// within 4 of their original value on every channel independently, per the
// round-trip-identity invariant (spec's |I'(x,y,c) - I(x,y,c)| <= 4 on each
// channel).
func TestRoundTripPixelAccuracy(t *testing.T) {
	m, _ := LookupMode("MartinM1", 0, 0)
	src := checkerboardImage(m.Width, m.Height)
	bytes := newImageRGBBytes(src, m.Order)

	audio := Encode(bytes, m, SampleRate)

	decoded, err := DecodeBatch(audio, m, SampleRate)
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}

	total := m.Width * m.Height
	within := 0
	const tolerance = 4
	chanDiff := func(a, b uint32) int {
		d := int(a>>8) - int(b>>8)
		if d < 0 {
			d = -d
		}
		return d
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sr, sg, sb, _ := src.At(x, y).RGBA()
			dr, dg, db, _ := decoded.At(x, y).RGBA()
			if chanDiff(sr, dr) <= tolerance && chanDiff(sg, dg) <= tolerance && chanDiff(sb, db) <= tolerance {
				within++
			}
		}
	}

	pct := float64(within) / float64(total) * 100
	if pct < 95.0 {
		t.Fatalf("round-trip pixel accuracy = %.1f%%, want >= 95%%", pct)
	}
}

func TestDecodeBatchRejectsShortAudio(t *testing.T) {
	m, _ := LookupMode("MartinM1", 0, 0)
	_, err := DecodeBatch(make([]float32, 10), m, SampleRate)
	if err == nil {
		t.Fatal("expected error decoding audio shorter than one transmission")
	}
}

func TestFreqToPixelInverse(t *testing.T) {
	if v := freqToPixel(FreqBlack); v != 0 {
		t.Errorf("freqToPixel(FreqBlack) = %d, want 0", v)
	}
	if v := freqToPixel(FreqWhite); v != 255 {
		t.Errorf("freqToPixel(FreqWhite) = %d, want 255", v)
	}
}
