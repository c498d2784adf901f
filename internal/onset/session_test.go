package onset

import (
	"math"
	"testing"
)

// stubSource hands the session its sample callback without touching any
// audio hardware.
type stubSource struct {
	push    func([]float32)
	stopped int
	fail    error
}

func (s *stubSource) start(onSamples func([]float32)) error {
	if s.fail != nil {
		return s.fail
	}
	s.push = onSamples
	return nil
}

func (s *stubSource) stop() { s.stopped++ }

func TestScaleDB(t *testing.T) {
	tests := []struct {
		name string
		mag  float64
		want byte
	}{
		{"zero magnitude", 0, 0},
		{"below floor", 1e-6, 0},       // -120 dB
		{"above ceiling", 0.5, 255},    // ~-6 dB
		{"full scale", 1.0, 255},       // 0 dB
		{"midrange", 0.000316227766, 109}, // -70 dB -> 255*30/70
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := scaleDB(tc.mag)
			if got != tc.want {
				t.Fatalf("scaleDB(%v) = %d, want %d", tc.mag, got, tc.want)
			}
		})
	}
}

func TestScaleDBMonotonic(t *testing.T) {
	prev := byte(0)
	for db := -110.0; db <= -20.0; db += 0.5 {
		v := scaleDB(math.Pow(10, db/20))
		if v < prev {
			t.Fatalf("scale not monotonic at %v dB: %d < %d", db, v, prev)
		}
		prev = v
	}
}

func TestSessionSilenceIsQuiet(t *testing.T) {
	src := &stubSource{}
	s, err := openSession(src)
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	src.push(make([]float32, WindowSize))

	dst := make([]byte, BinCount)
	if n := s.levels(dst); n != BinCount {
		t.Fatalf("levels wrote %d bins, want %d", n, BinCount)
	}
	for k, v := range dst {
		if v != 0 {
			t.Fatalf("bin %d = %d on pure silence, want 0", k, v)
		}
	}
}

func TestSessionToneRaisesItsBin(t *testing.T) {
	src := &stubSource{}
	s, err := openSession(src)
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}

	// Full-scale tone exactly on bin 8 (8 cycles per window).
	samples := make([]float32, WindowSize)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * 8 * float64(i) / WindowSize))
	}
	src.push(samples)

	dst := make([]byte, BinCount)
	// Poll a few times so temporal smoothing converges.
	for i := 0; i < 20; i++ {
		s.levels(dst)
	}

	peakBin, peak := 0, byte(0)
	for k, v := range dst {
		if v > peak {
			peakBin, peak = k, v
		}
	}
	if peakBin != 8 {
		t.Fatalf("peak at bin %d, want 8", peakBin)
	}
	if peak <= DefaultThreshold {
		t.Fatalf("full-scale tone peaked at %d, should clear the default threshold %d", peak, DefaultThreshold)
	}
}

func TestSessionRingKeepsNewestWindow(t *testing.T) {
	src := &stubSource{}
	s, err := openSession(src)
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}

	// Loud tone, then more than a full window of silence: the snapshot must
	// reflect only the newest samples.
	loud := make([]float32, WindowSize)
	for i := range loud {
		loud[i] = float32(math.Sin(2 * math.Pi * 8 * float64(i) / WindowSize))
	}
	src.push(loud)
	src.push(make([]float32, WindowSize*2))

	dst := make([]byte, BinCount)
	for i := 0; i < 200; i++ {
		s.levels(dst) // drain smoothing
	}
	for k, v := range dst {
		if v > 2 {
			t.Fatalf("bin %d = %d after silence overwrote the window", k, v)
		}
	}
}

func TestOpenSessionPropagatesSourceFailure(t *testing.T) {
	src := &stubSource{fail: ErrDeviceAccess}
	if _, err := openSession(src); err == nil {
		t.Fatal("openSession succeeded with a failing source")
	}
}

func TestSessionCloseStopsSource(t *testing.T) {
	src := &stubSource{}
	s, err := openSession(src)
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	s.close()
	if src.stopped != 1 {
		t.Fatalf("source stopped %d times, want 1", src.stopped)
	}
}
