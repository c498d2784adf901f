package game

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies the game's sound effects.
type SoundKind int

const (
	SoundJump SoundKind = iota
	SoundGameOver
	SoundWin
	SoundMenuSelect
)

// AudioSystem plays procedurally generated effects. Optional: when InitAudio
// fails or was never called, PlaySound is a no-op and the game runs silent.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

var sfxVolume = 0.8

// InitAudio initializes the output context.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// SetSFXVolume sets effect volume in [0,1].
func SetSFXVolume(vol float64) {
	sfxVolume = clampF(vol, 0, 1)
}

// PlaySound plays a generated effect without blocking the frame loop.
func PlaySound(kind SoundKind) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		player := globalAudio.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1]; attack/decay/
// release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundJump:
		return genJump()
	case SoundGameOver:
		return genGameOver()
	case SoundWin:
		return genWin()
	case SoundMenuSelect:
		return genMenuSelect()
	}
	return nil
}

// genJump: short rising blip that stays out of the way of the next onset.
func genJump() []byte {
	n := int(0.07 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.45, 0.0, 0.15)
		freq := 520 + 480*p
		s := fm(t, freq, 2.0, 1.4*(1-p)) * env * 0.3
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGameOver: two falling notes, a tone lower each time.
func genGameOver() []byte {
	dur := 0.6
	n := int(dur * SampleRate)
	notes := []struct{ freq, at float64 }{
		{293.66, 0.00}, // D4
		{233.08, 0.22}, // Bb3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.at * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.01, 0.3, 0.25, 0.4)
			freq := note.freq * (1 - np*0.03)
			s := fm(t, freq, 2.0, 1.8*env) * env * 0.34
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genWin: quick major arpeggio, each note ringing over the next.
func genWin() []byte {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	noteStep := int(0.1 * SampleRate)
	total := len(notes)*noteStep + int(0.3*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.6, 0.05, 0.3)
			s := fm(t, freq, 3.0, 4.0*env) * env * 0.26
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genMenuSelect: crisp click.
func genMenuSelect() []byte {
	n := SampleRate * 55 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.005, 0.5, 0.0, 0.12)
		freq := 1200 - 500*p
		s := fm(t, freq, 1.0, 0.5) * env * 0.36
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
