// image_fitter.go - letterbox/pillarbox a source image into a mode's frame.
//
// Uses golang.org/x/image/draw's CatmullRom scaler (the highest-quality
// resampler that package ships) as the Lanczos-equivalent filter the spec
// calls for. x/image is already pulled in by the teacher's go.mod; this
// gives it a first-class use site of its own instead of being purely an
// ebiten-internal transitive dependency.
package sstv

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// CropBox delimits the non-letterbox region of a fitted frame, inclusive of
// Left/Top and exclusive of Right/Bottom.
type CropBox struct {
	Left, Top, Right, Bottom int
}

// FitImage centers src into a W×H canvas, preserving aspect ratio, and fills
// the unused margins with pure black. It returns the fitted RGB image and
// the crop box bounding the non-letterbox pixels.
//
// For Native mode (src already W×H, which callers arrange by constructing
// the Mode from the source's own dimensions) the crop box is the full frame.
func FitImage(src image.Image, w, h int) (*image.RGBA, CropBox) {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	if sw == 0 || sh == 0 {
		return dst, CropBox{0, 0, w, h}
	}

	// Scale preserving aspect ratio: fit the larger dimension ratio.
	scale := float64(w) / float64(sw)
	if hScale := float64(h) / float64(sh); hScale < scale {
		scale = hScale
	}

	dw := int(float64(sw)*scale + 0.5)
	dh := int(float64(sh)*scale + 0.5)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	left := (w - dw) / 2
	top := (h - dh) / 2
	target := image.Rect(left, top, left+dw, top+dh)

	xdraw.CatmullRom.Scale(dst, target, src, sb, xdraw.Over, nil)

	return dst, CropBox{Left: left, Top: top, Right: left + dw, Bottom: top + dh}
}

// FitImageNative returns src converted to RGBA unchanged, with a crop box
// spanning the whole frame, for Native mode where the target equals the
// source.
func FitImageNative(src image.Image) (*image.RGBA, CropBox) {
	sb := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Src)
	return dst, CropBox{0, 0, sb.Dx(), sb.Dy()}
}
