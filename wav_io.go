// wav_io.go - C9: 16-bit PCM mono WAV container I/O.
//
// Grounded on go-audio/wav's usage in the pack's go-audio-mini-project
// (teabreakninja-go-iq-decoder): wav.NewDecoder/IsValidFile/FwdToPCM/
// PCMBuffer for reading, and the matching wav.NewEncoder/Write/Close for
// writing, both driven through an audio.IntBuffer.
package sstv

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavBitDepth = 16

// WriteWAV encodes samples (float32 in [-1,1]) as 16-bit PCM mono at
// sampleRate into w.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, wavBitDepth, 1, 1)

	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = int(clampSample16(s))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return wrapErr("WriteWAV", "encode", err)
	}
	return wrapErr("WriteWAV", "close", enc.Close())
}

// ReadWAV reads a 16-bit PCM mono WAV file from r, returning float32 samples
// in [-1,1] and its sample rate.
func ReadWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, wrapErr("ReadWAV", "not a valid WAV file", ErrInternalDSP)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, 0, wrapErr("ReadWAV", "seek to PCM data", err)
	}

	const chunkSamples = 8192
	buf := &audio.IntBuffer{Format: dec.Format(), Data: make([]int, chunkSamples)}

	var out []float32
	for {
		n, err := dec.PCMBuffer(buf)
		if n > 0 {
			for i := 0; i < n; i++ {
				out = append(out, int16ToFloat32(buf.Data[i]))
			}
		}
		if err == io.EOF || n == 0 {
			break
		}
		if err != nil {
			return nil, 0, wrapErr("ReadWAV", "read PCM", err)
		}
	}
	return out, int(dec.SampleRate), nil
}

func clampSample16(s float32) int16 {
	v := s * 32767.0
	if v >= 0 {
		v += 0.5 // round half away from zero; int16() below truncates
	} else {
		v -= 0.5
	}
	if v > 32767 {
		v = 32767
	}
	if v < -32768 {
		v = -32768
	}
	return int16(v)
}

func int16ToFloat32(v int) float32 {
	return float32(int16(v)) / 32768.0
}
