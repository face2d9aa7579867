// dsp_resample.go - shared linear resampling helper used by the encoder (to
// spread W pixels across N audio samples) and the decoder (to condense N
// instantaneous-frequency samples back down to W pixels).
package sstv

// resampleLinear maps src (length m) onto a sequence of length n via
// linearly-spaced index sampling with linear interpolation between the two
// nearest source samples. Used both "up" (pixels -> samples) and "down"
// (samples -> pixels).
func resampleLinear(src []float64, n int) []float64 {
	out := make([]float64, n)
	m := len(src)
	if m == 0 || n == 0 {
		return out
	}
	if m == 1 || n == 1 {
		for i := range out {
			out[i] = src[0]
		}
		return out
	}
	step := float64(m-1) / float64(n-1)
	for i := 0; i < n; i++ {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= m-1 {
			out[i] = src[m-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = src[idx]*(1-frac) + src[idx+1]*frac
	}
	return out
}
