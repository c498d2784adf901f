package onset

import (
	"math"
	"sync"

	"github.com/mjibson/go-dsp/fft"
)

// dB mapping for the byte-scaled bins: magnitudes at or below minDB map to
// 0, at or above maxDB to 255. The default threshold of 30 assumes exactly
// this scale.
const (
	minDB = -100.0
	maxDB = -30.0

	// smoothing blends each new magnitude with the previous snapshot in the
	// linear domain, steadying the meter without burying fast onsets.
	smoothing = 0.8
)

// captureSource feeds mono float32 samples into a session. Exactly one
// start/stop pair per source.
type captureSource interface {
	start(onSamples func([]float32)) error
	stop()
}

// session wraps one active capture stream and computes magnitude snapshots
// on demand. The capture callback runs on the audio backend's thread; the
// ring is the only shared state and is mutex-guarded.
type session struct {
	src captureSource

	mu   sync.Mutex
	ring [WindowSize]float32
	pos  int

	smoothed [BinCount]float64
	window   [WindowSize]float64
	hann     [WindowSize]float64
}

func openSession(src captureSource) (*session, error) {
	s := &session{src: src}
	for i := range s.hann {
		s.hann[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(WindowSize-1)))
	}
	if err := src.start(s.push); err != nil {
		return nil, err
	}
	return s, nil
}

// push appends captured samples to the ring, keeping the newest WindowSize.
func (s *session) push(samples []float32) {
	s.mu.Lock()
	for _, v := range samples {
		s.ring[s.pos] = v
		s.pos = (s.pos + 1) % WindowSize
	}
	s.mu.Unlock()
}

// levels computes the byte-scaled magnitude spectrum of the most recent
// window and writes it into dst. Returns the number of bins written.
func (s *session) levels(dst []byte) int {
	s.mu.Lock()
	// Unroll the ring so window[0] is the oldest sample, then apply Hann.
	for i := 0; i < WindowSize; i++ {
		s.window[i] = float64(s.ring[(s.pos+i)%WindowSize]) * s.hann[i]
	}
	s.mu.Unlock()

	spec := fft.FFTReal(s.window[:])
	n := BinCount
	if n > len(dst) {
		n = len(dst)
	}
	for k := 0; k < n; k++ {
		mag := cmplxAbs(spec[k]) / float64(WindowSize)
		s.smoothed[k] = smoothing*s.smoothed[k] + (1-smoothing)*mag
		dst[k] = scaleDB(s.smoothed[k])
	}
	return n
}

func (s *session) close() {
	s.src.stop()
}

// scaleDB maps a linear magnitude onto the 0..255 bin scale via decibels.
func scaleDB(mag float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := 255 * (db - minDB) / (maxDB - minDB)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
