package onset

import "testing"

// fakeAnalyser serves a settable magnitude snapshot, standing in for a live
// capture session.
type fakeAnalyser struct {
	bins   []byte
	closed int
}

func (f *fakeAnalyser) levels(dst []byte) int { return copy(dst, f.bins) }
func (f *fakeAnalyser) close()                { f.closed++ }

func newTestDetector(f *fakeAnalyser) *Detector {
	d := NewDetector()
	d.session = f
	return d
}

func TestVolumePeakNotAverage(t *testing.T) {
	bins := make([]byte, BinCount)
	bins[37] = 90
	d := newTestDetector(&fakeAnalyser{bins: bins})

	if got := d.Volume(); got != 90 {
		t.Fatalf("Volume() = %v, want peak 90 (not a mean near 0)", got)
	}
}

func TestCheckSoundEdges(t *testing.T) {
	tests := []struct {
		name    string
		volumes []byte
		want    []Edge
	}{
		{
			name:    "single burst",
			volumes: []byte{0, 80, 80, 0},
			want: []Edge{
				{},
				{Onset: true, Sounding: true},
				{Sounding: true},
				{Offset: true},
			},
		},
		{
			name:    "boundary value is quiet",
			volumes: []byte{30, 31, 30},
			want: []Edge{
				{},
				{Onset: true, Sounding: true},
				{Offset: true},
			},
		},
		{
			name:    "two bursts",
			volumes: []byte{90, 0, 90},
			want: []Edge{
				{Onset: true, Sounding: true},
				{Offset: true},
				{Onset: true, Sounding: true},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeAnalyser{bins: make([]byte, BinCount)}
			d := newTestDetector(f)
			for i, v := range tc.volumes {
				f.bins[0] = v
				got := d.CheckSound()
				if got != tc.want[i] {
					t.Fatalf("poll %d (vol %d): got %+v, want %+v", i, v, got, tc.want[i])
				}
			}
		})
	}
}

func TestCheckSoundEdgeExclusivity(t *testing.T) {
	f := &fakeAnalyser{bins: make([]byte, BinCount)}
	d := newTestDetector(f)

	// Pseudo-random volume walk; no poll may ever report both edges.
	seed := uint32(12345)
	for i := 0; i < 10000; i++ {
		seed = seed*1664525 + 1013904223
		f.bins[0] = byte(seed >> 24)
		e := d.CheckSound()
		if e.Onset && e.Offset {
			t.Fatalf("poll %d: onset and offset reported together: %+v", i, e)
		}
		if e.Onset && !e.Sounding {
			t.Fatalf("poll %d: onset without sounding: %+v", i, e)
		}
		if e.Offset && e.Sounding {
			t.Fatalf("poll %d: offset while sounding: %+v", i, e)
		}
	}
}

func TestThresholdRoundTrip(t *testing.T) {
	d := NewDetector()
	if got := d.Threshold(); got != DefaultThreshold {
		t.Fatalf("fresh Threshold() = %v, want %v", got, float64(DefaultThreshold))
	}
	d.SetThreshold(55)
	if got := d.Threshold(); got != 55 {
		t.Fatalf("Threshold() after SetThreshold(55) = %v", got)
	}
}

func TestThresholdMonotonicity(t *testing.T) {
	bins := make([]byte, BinCount)
	bins[0] = 100
	d := newTestDetector(&fakeAnalyser{bins: bins})

	if e := d.CheckSound(); !e.Sounding {
		t.Fatalf("volume 100 over default threshold %d should sound", DefaultThreshold)
	}

	// Raising the threshold above the fixed volume flips to quiet.
	d.SetThreshold(150)
	if e := d.CheckSound(); e.Sounding || !e.Offset {
		t.Fatalf("threshold 150 over volume 100: got %+v, want offset and quiet", e)
	}

	// Lowering it back below flips to sounding.
	d.SetThreshold(50)
	if e := d.CheckSound(); !e.Sounding || !e.Onset {
		t.Fatalf("threshold 50 under volume 100: got %+v, want onset and sounding", e)
	}
}

func TestNoSessionDegradesToZero(t *testing.T) {
	d := NewDetector()
	if d.Active() {
		t.Fatal("fresh detector reports an active session")
	}
	if got := d.Volume(); got != 0 {
		t.Fatalf("Volume() without session = %v, want 0", got)
	}
	if e := d.CheckSound(); e != (Edge{}) {
		t.Fatalf("CheckSound() without session = %+v, want all false", e)
	}
	if n := d.Levels(make([]byte, BinCount)); n != 0 {
		t.Fatalf("Levels() without session wrote %d bins, want 0", n)
	}
}

func TestStopReleasesSessionAndState(t *testing.T) {
	bins := make([]byte, BinCount)
	bins[0] = 200
	f := &fakeAnalyser{bins: bins}
	d := newTestDetector(f)

	if e := d.CheckSound(); !e.Sounding {
		t.Fatal("expected sounding before stop")
	}

	d.Stop()
	if f.closed != 1 {
		t.Fatalf("session closed %d times, want 1", f.closed)
	}
	if d.Active() {
		t.Fatal("detector still active after Stop")
	}
	// No stray offset edge after release; state degrades cleanly.
	if e := d.CheckSound(); e != (Edge{}) {
		t.Fatalf("CheckSound() after Stop = %+v, want all false", e)
	}

	// Idempotent.
	d.Stop()
	if f.closed != 1 {
		t.Fatalf("second Stop closed the session again (%d)", f.closed)
	}
}
