// sstv_image_bytes.go - thin wrapper presenting a fitted RGBA image as the
// per-channel byte rows the encoder scans, including the RGB<->YCrCb
// conversion SSTV modes like Robot36 require.
package sstv

import "image"

// imageRGBBytes adapts a fitted *image.RGBA into row-at-a-time channel
// access for the encoder. The decoder does not use it; it writes decoded
// rows straight into an *image.RGBA.
type imageRGBBytes struct {
	img   *image.RGBA
	w, h  int
	order ChannelOrder
}

func newImageRGBBytes(img *image.RGBA, order ChannelOrder) *imageRGBBytes {
	b := img.Bounds()
	return &imageRGBBytes{img: img, w: b.Dx(), h: b.Dy(), order: order}
}

// Row returns, for scanline y, the byte values of logical channel ch:
//   - for GBR/RGB order, ch indexes directly into R(0)/G(1)/B(2)
//   - for YCrCb order, ch 0 is luma, 1 is Cr, 2 is Cb (ITU-R BT.601, full range)
func (ib *imageRGBBytes) Row(y, ch int) []byte {
	out := make([]byte, ib.w)
	for x := 0; x < ib.w; x++ {
		r, g, b := ib.pixelRGB(x, y)
		switch ib.order {
		case ChannelOrderYCrCb:
			yv, cr, cb := rgbToYCrCb(r, g, b)
			switch ch {
			case 0:
				out[x] = yv
			case 1:
				out[x] = cr
			default:
				out[x] = cb
			}
		default:
			switch ch {
			case 0:
				out[x] = r
			case 1:
				out[x] = g
			default:
				out[x] = b
			}
		}
	}
	return out
}

func (ib *imageRGBBytes) pixelRGB(x, y int) (uint8, uint8, uint8) {
	o := ib.img.PixOffset(x, y)
	p := ib.img.Pix[o : o+4 : o+4]
	return p[0], p[1], p[2]
}

// rgbToYCrCb converts full-range 8-bit RGB to 8-bit Y/Cr/Cb.
func rgbToYCrCb(r, g, b uint8) (y, cr, cb uint8) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	yf := 0.299*rf + 0.587*gf + 0.114*bf
	crf := 0.713*(rf-yf) + 128
	cbf := 0.564*(bf-yf) + 128
	return clampByte(yf), clampByte(crf), clampByte(cbf)
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
