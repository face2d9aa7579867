package sstv

import "testing"

func TestLookupModeKnown(t *testing.T) {
	m, err := LookupMode("MartinM1", 0, 0)
	if err != nil {
		t.Fatalf("LookupMode(MartinM1): %v", err)
	}
	if m.Width != 320 || m.Height != 256 {
		t.Fatalf("MartinM1 dims = %dx%d, want 320x256", m.Width, m.Height)
	}
	if m.Order != ChannelOrderGBR {
		t.Fatalf("MartinM1 order = %v, want GBR", m.Order)
	}
}

func TestLookupModeUnknown(t *testing.T) {
	_, err := LookupMode("NotAMode", 0, 0)
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLookupModeNativeRequiresDims(t *testing.T) {
	if _, err := LookupMode(ModeNative, 0, 0); err == nil {
		t.Fatal("expected error for Native mode with zero dimensions")
	}
	m, err := LookupMode(ModeNative, 640, 480)
	if err != nil {
		t.Fatalf("LookupMode(Native): %v", err)
	}
	if m.Width != 640 || m.Height != 480 {
		t.Fatalf("Native dims = %dx%d, want 640x480", m.Width, m.Height)
	}
	if m.ScanMS <= 0 {
		t.Fatalf("Native ScanMS = %v, want > 0", m.ScanMS)
	}
}

func TestScottieModesSyncAtEnd(t *testing.T) {
	for _, name := range []string{"ScottieS1", "ScottieS2", "ScottieDX"} {
		m, err := LookupMode(name, 0, 0)
		if err != nil {
			t.Fatalf("LookupMode(%s): %v", name, err)
		}
		if !m.SyncAtEnd {
			t.Errorf("%s: SyncAtEnd = false, want true", name)
		}
	}
	m, err := LookupMode("MartinM1", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if m.SyncAtEnd {
		t.Error("MartinM1: SyncAtEnd = true, want false")
	}
}

func TestDeriveTimingConsistent(t *testing.T) {
	m, _ := LookupMode("MartinM1", 0, 0)
	timing := DeriveTiming(m, SampleRate)
	if timing.TotalSamples != timing.HeaderSamples+m.Height*timing.LineSamples {
		t.Fatalf("TotalSamples inconsistent with HeaderSamples/LineSamples")
	}
	if timing.LineSamples != timing.SyncSamples+4*timing.GapSamples+3*timing.ScanSamples {
		t.Fatalf("LineSamples formula mismatch")
	}
}

func TestMsToSamplesBankersRounding(t *testing.T) {
	// 0.5 at 1000Hz sample rate rounds to the nearest even integer.
	if got := msToSamples(0.5, 1000); got != 0 {
		t.Errorf("msToSamples(0.5, 1000) = %d, want 0 (round-half-to-even)", got)
	}
	if got := msToSamples(1.5, 1000); got != 2 {
		t.Errorf("msToSamples(1.5, 1000) = %d, want 2 (round-half-to-even)", got)
	}
}

func TestKnownModesNonEmpty(t *testing.T) {
	modes := KnownModes()
	if len(modes) == 0 {
		t.Fatal("KnownModes() returned no modes")
	}
	seen := map[string]bool{}
	for _, m := range modes {
		seen[m.Name] = true
	}
	for _, want := range []string{"MartinM1", "MartinM2", "ScottieS1", "ScottieS2", "ScottieDX", "Robot36", "PD120"} {
		if !seen[want] {
			t.Errorf("KnownModes() missing %s", want)
		}
	}
}
