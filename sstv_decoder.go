// sstv_decoder.go - C7: recovers an image from SSTV audio, in both a batch
// (whole-clip, zero-phase) mode and a streaming mode that polls a
// ringBuffer as a RealTimePlayer fills it.
//
// Per-line extraction mirrors sstv_encoder.go's segment layout exactly
// (header, then per line: sync/gap/scan segments in transmission order,
// sync moved to the end of the line for SyncAtEnd modes), since the decoder
// must walk the same timeline the encoder wrote.
package sstv

import (
	"image"
	"image/color"
)

const smoothWindowSamples = 9

// freqToPixel is pixelFreq's inverse, clamped into [0,255].
func freqToPixel(f float64) uint8 {
	v := (f - FreqBlack) / (FreqWhite - FreqBlack) * 255.0
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}

// DecodeBatch demodulates an entire clip in one pass: zero-phase bandpass,
// FFT-based Hilbert transform over the whole signal, then per-line
// extraction. Returns a decoded WxH RGBA image for mode m.
func DecodeBatch(audio []float32, m Mode, sampleRate int) (*image.RGBA, error) {
	t := DeriveTiming(m, sampleRate)
	if len(audio) < t.TotalSamples {
		return nil, wrapErr("DecodeBatch", "audio shorter than expected transmission length", ErrInternalDSP)
	}

	x := make([]float64, len(audio))
	for i, v := range audio {
		x[i] = float64(v)
	}

	filt := newDecoderBandpass(sampleRate)
	filtered := filt.FiltFilt(x)
	freq := instantaneousFrequency(filtered, sampleRate)
	smoothed := boxSmooth(freq, smoothWindowSamples)

	return assembleImage(smoothed[t.HeaderSamples:], m, t)
}

// assembleImage walks freq (instantaneous-frequency samples starting right
// after the header) line by line, in exactly the order Encode wrote them,
// and builds the final image.
func assembleImage(freq []float64, m Mode, t Timing) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	channels := channelIndexOrder(m.Order)
	pos := 0

	for y := 0; y < m.Height; y++ {
		if pos+t.LineSamples > len(freq) {
			break // ran out of signal early; leave remaining rows black
		}

		decoded := make([][]uint8, len(channels))

		if !m.SyncAtEnd {
			pos += t.SyncSamples
		}
		pos += t.GapSamples

		for ci := range channels {
			scanSeg := freq[pos : pos+t.ScanSamples]
			pos += t.ScanSamples

			pix := make([]uint8, m.Width)
			px := resampleLinear(scanSeg, m.Width)
			for i, v := range px {
				pix[i] = freqToPixel(v)
			}
			decoded[ci] = pix

			if m.SyncAtEnd && ci == len(channels)-1 {
				pos += t.SyncSamples
			}
			pos += t.GapSamples
		}

		writeDecodedRow(img, y, m.Order, channels, decoded)
	}

	return img, nil
}

// writeDecodedRow reconstructs row y's RGBA pixels from the decoded
// per-channel byte rows, undoing channelIndexOrder's transmission mapping.
// For YCrCb-order modes only the luma channel (decoded[0]) is used, per the
// spec's instruction to replicate luma into R/G/B on decode; chroma is
// discarded rather than reconstructed.
func writeDecodedRow(img *image.RGBA, y int, order ChannelOrder, channels []int, decoded [][]uint8) {
	w := len(decoded[0])
	if order == ChannelOrderYCrCb {
		for x := 0; x < w; x++ {
			v := decoded[0][x]
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
		return
	}

	rgb := make([][]uint8, 3)
	for ci, imgCh := range channels {
		rgb[imgCh] = decoded[ci]
	}
	for x := 0; x < w; x++ {
		img.SetRGBA(x, y, color.RGBA{R: rgb[0][x], G: rgb[1][x], B: rgb[2][x], A: 255})
	}
}

// StreamingDecoder polls a RealTimePlayer's ring buffer as it fills and
// decodes whole lines as soon as enough samples have arrived, calling
// OnLine after each one. Per the data model's streaming schedule, each poll
// runs the causal single-pass bandpass and a whole-line FFT Hilbert
// transform over exactly one scanline's worth of raw samples (~150ms) - not
// over small per-poll fragments, which would reset the phase-unwrap far more
// often than the signal's actual bandwidth requires and yield a noisier
// frequency estimate than the batch path's.
type StreamingDecoder struct {
	player     *RealTimePlayer
	mode       Mode
	timing     Timing
	filt       *bandpassFilter
	sampleRate int
	nextLine   int
	OnLine     func(y int, row []color.RGBA)
}

// NewStreamingDecoder constructs a decoder that will poll player for mode m.
func NewStreamingDecoder(player *RealTimePlayer, m Mode, sampleRate int) *StreamingDecoder {
	return &StreamingDecoder{
		player:     player,
		mode:       m,
		timing:     DeriveTiming(m, sampleRate),
		filt:       newDecoderBandpass(sampleRate),
		sampleRate: sampleRate,
	}
}

// Poll should be called periodically (the data model calls for an interval
// of 10ms or less) from the caller's own goroutine. Whenever the ring
// buffer's processed cursor has advanced past the end of the next
// undecoded line, it pulls that line's raw samples directly, demodulates
// them as one unit, and decodes them, repeating for every whole line that
// has become available since the last call.
func (d *StreamingDecoder) Poll() {
	cursor := d.player.ProcessedCursor()
	for d.nextLine < d.mode.Height {
		lineStart := d.timing.HeaderSamples + d.nextLine*d.timing.LineSamples
		lineEnd := lineStart + d.timing.LineSamples
		if cursor < lineEnd {
			return // next whole line not fully buffered yet
		}

		chunk := d.player.ProcessedSlice(lineStart, lineEnd)
		x := make([]float64, len(chunk))
		for i, v := range chunk {
			x[i] = float64(v)
		}
		filtered := d.filt.Process(x)
		freq := instantaneousFrequency(filtered, d.sampleRate)
		smoothed := boxSmooth(freq, smoothWindowSamples)

		img, err := assembleImage(smoothed, Mode{
			Name: d.mode.Name, Width: d.mode.Width, Height: 1,
			SyncMS: d.mode.SyncMS, ScanMS: d.mode.ScanMS, GapMS: d.mode.GapMS,
			Order: d.mode.Order, SyncAtEnd: d.mode.SyncAtEnd,
		}, Timing{SyncSamples: d.timing.SyncSamples, ScanSamples: d.timing.ScanSamples, GapSamples: d.timing.GapSamples, LineSamples: d.timing.LineSamples})
		if err != nil {
			return
		}
		if d.OnLine != nil {
			row := make([]color.RGBA, d.mode.Width)
			for x := 0; x < d.mode.Width; x++ {
				row[x] = img.RGBAAt(x, 0)
			}
			d.OnLine(d.nextLine, row)
		}
		d.nextLine++
	}
}
