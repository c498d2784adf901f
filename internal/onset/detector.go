// Package onset turns a live microphone signal into discrete
// onset/offset events by thresholding the peak frequency magnitude
// of the most recent sample window.
package onset

import (
	"errors"
	"sync"
)

// Analysis geometry: one 256-sample window folds to 128 magnitude bins.
const (
	SampleRate = 44100
	WindowSize = 256
	BinCount   = WindowSize / 2
)

// DefaultThreshold is the sounding/quiet boundary on the 0..255 bin scale.
const DefaultThreshold = 30

// ErrDeviceAccess reports that the capture device was denied or unavailable.
// Session start failures wrap it; callers decide whether to re-attempt.
var ErrDeviceAccess = errors.New("onset: audio capture device unavailable")

// Edge is the result of one CheckSound poll. At most one of Onset/Offset
// is set per poll, never both.
type Edge struct {
	Onset    bool
	Offset   bool
	Sounding bool
}

// analyser produces a magnitude snapshot (0..255 per bin) on demand.
type analyser interface {
	levels(dst []byte) int
	close()
}

// Detector owns at most one capture session and classifies quiet/sounding
// transitions. Lifecycle: uninitialized -> active (Start) -> released (Stop).
// All methods are safe for concurrent use, though the game loop is expected
// to be the only poller.
type Detector struct {
	mu        sync.Mutex
	session   analyser
	threshold float64
	sounding  bool
	bins      [BinCount]byte
}

func NewDetector() *Detector {
	return &Detector{threshold: DefaultThreshold}
}

// Start acquires the default capture device and begins filling the analysis
// window. Failures wrap ErrDeviceAccess and are not retried here. Calling
// Start on an already active detector is a no-op.
func (d *Detector) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session != nil {
		return nil
	}
	s, err := openSession(&micSource{})
	if err != nil {
		return err
	}
	d.session = s
	return nil
}

// Stop releases the capture device and analysis pipeline. Idempotent.
func (d *Detector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return
	}
	d.session.close()
	d.session = nil
	d.sounding = false
}

// Active reports whether a capture session is live.
func (d *Detector) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session != nil
}

// SetThreshold updates the decision boundary. Takes effect on the next poll.
func (d *Detector) SetThreshold(v float64) {
	d.mu.Lock()
	d.threshold = v
	d.mu.Unlock()
}

func (d *Detector) Threshold() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.threshold
}

// Volume returns the peak magnitude across all bins of the most recent
// window. Peak, not mean: a narrowband or percussive sound must register
// even when most bins stay silent. Returns 0 with no active session.
func (d *Detector) Volume() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.peekVolume()
}

// Levels copies the current magnitude bins into dst and returns the number
// of bins written. Used by the menu spectrum display; 0 with no session.
func (d *Detector) Levels(dst []byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		return 0
	}
	n := d.session.levels(d.bins[:])
	return copy(dst, d.bins[:n])
}

// CheckSound advances the quiet/sounding state by one sample and reports
// the transition edges. Each call consumes detector state; it is a discrete
// sample, not idempotent. With no session it degrades to all-false.
func (d *Detector) CheckSound() Edge {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == nil {
		d.sounding = false
		return Edge{}
	}
	now := d.peekVolume() > d.threshold
	e := Edge{
		Onset:    now && !d.sounding,
		Offset:   !now && d.sounding,
		Sounding: now,
	}
	d.sounding = now
	return e
}

// peekVolume reads the peak bin. Caller holds d.mu.
func (d *Detector) peekVolume() float64 {
	if d.session == nil {
		return 0
	}
	n := d.session.levels(d.bins[:])
	peak := byte(0)
	for _, v := range d.bins[:n] {
		if v > peak {
			peak = v
		}
	}
	return float64(peak)
}
