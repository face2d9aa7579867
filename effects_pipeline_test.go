package sstv

import "testing"

func TestPipelineIdentityWhenDisabled(t *testing.T) {
	pl := NewPipeline() // every effect starts disabled
	in := make([]float32, 512)
	for i := range in {
		in[i] = 0.25
	}
	out := pl.ProcessBatch(in, SampleRate)
	for i, v := range out {
		if v != in[i] {
			t.Fatalf("sample %d changed with all effects disabled: got %v, want %v", i, v, in[i])
		}
	}
}

func TestPipelineUpdateParamUnknownField(t *testing.T) {
	pl := NewPipeline()
	if err := pl.UpdateParam("nope", "nope", 1); err == nil {
		t.Fatal("expected error for unrecognized (effect, param) pair")
	}
}

func TestPipelineUpdateParamAppliesBeforeNextChunk(t *testing.T) {
	pl := NewPipeline()
	if err := pl.UpdateParam("distortion", "enabled", 1); err != nil {
		t.Fatalf("UpdateParam: %v", err)
	}
	if err := pl.UpdateParam("distortion", "drive", 0.8); err != nil {
		t.Fatalf("UpdateParam: %v", err)
	}

	in := make([]float32, 256)
	for i := range in {
		in[i] = 0.5
	}
	out := pl.ProcessChunk(in, SampleRate)

	if !pl.Snapshot.Distortion.Enabled {
		t.Fatal("distortion not enabled after queued update was drained")
	}
	allSame := true
	for _, v := range out {
		if v != out[0] {
			allSame = false
		}
	}
	_ = allSame // a constant input through a stateless shaper stays constant; just confirm no panic/NaN
	for _, v := range out {
		if v != v { // NaN check
			t.Fatal("distortion produced NaN")
		}
	}
}

func TestNormalizePeakNeverAmplifies(t *testing.T) {
	chunk := []float32{0.1, -0.05, 0.02}
	normalizePeak(chunk)
	if chunk[0] != 0.1 {
		t.Fatalf("normalizePeak scaled up a quiet chunk: %v", chunk[0])
	}
}

func TestNormalizePeakClampsLoudChunk(t *testing.T) {
	chunk := []float32{2.0, -1.0, 0.5}
	normalizePeak(chunk)
	var peak float32
	for _, v := range chunk {
		a := v
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	if peak > 1.0001 {
		t.Fatalf("peak after normalizePeak = %v, want <= 1.0", peak)
	}
}

func TestResolveFieldKnownPairs(t *testing.T) {
	cases := [][2]string{
		{"phasemod", "depth"}, {"ampmod", "rate"}, {"bandpass", "low"},
		{"delay", "feedback"}, {"timestretch", "rate"},
	}
	for _, c := range cases {
		if _, ok := ResolveField(c[0], c[1]); !ok {
			t.Errorf("ResolveField(%q, %q) not found", c[0], c[1])
		}
	}
}
