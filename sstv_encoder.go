// sstv_encoder.go - phase-continuous FM synthesis of SSTV audio from a
// fitted image.
//
// Synthesis follows the teacher's fastSin LUT oscillator (dsp_lut.go,
// adapted from audio_lut.go), generalized from "one oscillator per fixed
// waveform type" into a single phaseAccumulator driven by an arbitrary
// instantaneous-frequency stream. This is the one encoding detail the spec
// calls CRITICAL: the phase accumulator must carry across header, every
// sync tone, every gap tone and every scan segment without ever resetting,
// or the decoder sees click artifacts at every segment boundary.
package sstv

// pixelFreq maps an 8-bit sample to its SSTV instantaneous frequency.
func pixelFreq(v uint8) float64 {
	return FreqBlack + (float64(v)/255.0)*(FreqWhite-FreqBlack)
}

// Encode synthesizes float32 audio in [-1, 1] from a fitted W×H RGB image
// and mode descriptor. Encoding itself is total: the only failure mode is
// an unrecognized mode, which LookupMode already rejects before Encode is
// ever called by higher layers.
func Encode(img *imageRGBBytes, m Mode, sampleRate int) []float32 {
	t := DeriveTiming(m, sampleRate)
	out := make([]float32, 0, t.TotalSamples)
	var osc phaseAccumulator

	// Header: a single sync-frequency tone approximating VIS.
	out = appendTone(out, &osc, FreqSync, t.HeaderSamples, sampleRate)

	channels := channelIndexOrder(m.Order)

	for y := 0; y < m.Height; y++ {
		if !m.SyncAtEnd {
			out = appendTone(out, &osc, FreqSync, t.SyncSamples, sampleRate)
		}
		out = appendTone(out, &osc, FreqBlack, t.GapSamples, sampleRate)

		for ci, ch := range channels {
			row := img.Row(y, ch)
			freqs := make([]float64, len(row))
			for i, v := range row {
				freqs[i] = pixelFreq(v)
			}
			scan := resampleLinear(freqs, t.ScanSamples)
			out = appendSwept(out, &osc, scan, sampleRate)

			// Scottie-style "sync at end": sync pulse follows the last
			// channel's scan instead of preceding the first.
			if m.SyncAtEnd && ci == len(channels)-1 {
				out = appendTone(out, &osc, FreqSync, t.SyncSamples, sampleRate)
			}
			out = appendTone(out, &osc, FreqBlack, t.GapSamples, sampleRate)
		}
	}

	return out
}

// appendTone emits n samples of a constant-frequency tone, continuing the
// phase accumulator from wherever it was left.
func appendTone(out []float32, osc *phaseAccumulator, freq float64, n int, sampleRate int) []float32 {
	sr := float64(sampleRate)
	for i := 0; i < n; i++ {
		out = append(out, osc.Step(freq, sr))
	}
	return out
}

// appendSwept emits len(freqs) samples with a per-sample instantaneous
// frequency, integrating phase exactly like appendTone — the scan segment
// is just a tone whose frequency happens to change every sample.
func appendSwept(out []float32, osc *phaseAccumulator, freqs []float64, sampleRate int) []float32 {
	sr := float64(sampleRate)
	for _, f := range freqs {
		out = append(out, osc.Step(f, sr))
	}
	return out
}

// channelIndexOrder returns, for a given ChannelOrder, the source-image
// channel index (0=R,1=G,2=B) to scan in transmission order.
func channelIndexOrder(o ChannelOrder) []int {
	switch o {
	case ChannelOrderGBR:
		return []int{1, 2, 0}
	case ChannelOrderRGB:
		return []int{0, 1, 2}
	case ChannelOrderYCrCb:
		return []int{0, 1, 2} // imageRGBBytes.Row converts to Y/Cr/Cb for these indices
	default:
		return []int{0, 1, 2}
	}
}
