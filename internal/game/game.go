package game

import (
	"errors"

	"notejump/internal/onset"
)

// RunState is the lifecycle phase of a run.
type RunState int

const (
	StateMenu RunState = iota
	StatePlaying
	StateGameOver
	StateWin
)

// ErrNoSession rejects starting a run without an active audio session.
var ErrNoSession = errors.New("game: no active audio session")

// SoundInput is the slice of the onset detector the loop polls. The game
// never sees the capture pipeline, only synchronous poll results.
type SoundInput interface {
	CheckSound() onset.Edge
	Volume() float64
	Active() bool
}

// Frame is the renderable snapshot emitted after each update.
type Frame struct {
	PlayerY   float64
	HoverGlow bool
	Sounding  bool
	Obstacles []Obstacle
	TimeLeft  float64
	Sounds    int
	Required  int
	Volume    float64
}

// Game is the per-frame state machine: menu -> playing -> {gameover | win},
// with retry back into playing and both terminals back to menu.
type Game struct {
	State RunState
	Level LevelConfig

	player    Player
	obstacles []Obstacle
	spawn     spawner
	ticks     int
	sounds    int
	sounding  bool
	volume    float64

	proSpeed float64
	input    SoundInput
}

func New(input SoundInput, seed uint64) *Game {
	return &Game{
		State:    StateMenu,
		player:   NewPlayer(),
		spawn:    spawner{rng: NewRand(seed)},
		proSpeed: 1.0,
		input:    input,
	}
}

// Start begins a run of the given level with fully reset state. Rejected
// without an active audio session; nothing is mutated in that case.
func (g *Game) Start(level LevelConfig) error {
	if !g.input.Active() {
		return ErrNoSession
	}
	g.Level = level
	g.player = NewPlayer()
	g.obstacles = g.obstacles[:0]
	g.spawn.sinceMs = 0
	g.ticks = 0
	g.sounds = 0
	g.sounding = false
	g.volume = 0
	g.State = StatePlaying
	return nil
}

// Retry restarts the current level from a terminal state.
func (g *Game) Retry() error {
	return g.Start(g.Level)
}

// ToMenu returns to the menu. The audio session is left alone; only the
// user releases the microphone.
func (g *Game) ToMenu() {
	g.State = StateMenu
}

// SetProSpeed updates the runtime speed override used by pro levels.
// Takes effect next frame.
func (g *Game) SetProSpeed(v float64) {
	g.proSpeed = clampF(v, 0.25, 8.0)
}

func (g *Game) ProSpeed() float64 { return g.proSpeed }

// SoundsDetected returns the cumulative onset count for the current run.
func (g *Game) SoundsDetected() int { return g.sounds }

// TimeLeft returns the remaining run time in seconds. Elapsed time derives
// from the integer tick count; multiplying out (rather than accumulating
// TickSeconds per frame) keeps a run at exactly duration*60 frames with no
// float drift.
func (g *Game) TimeLeft() float64 {
	tl := g.Level.Duration - float64(g.ticks)*TickSeconds
	if tl < 0 {
		return 0
	}
	return tl
}

func (g *Game) beatMillis() float64 {
	return 60000 / g.Level.BPM
}

// scrollSpeed is the per-frame leftward obstacle movement.
func (g *Game) scrollSpeed() float64 {
	mult := g.Level.SpeedMultiplier
	if g.Level.Pro {
		mult = g.proSpeed
	}
	return mult * ScrollScale
}

// Update advances the run by one fixed tick. No-op outside StatePlaying.
func (g *Game) Update() {
	if g.State != StatePlaying {
		return
	}

	// Clock first: a frame that exhausts the timer is terminal and skips
	// everything else, including the sound poll.
	g.ticks++
	if g.TimeLeft() <= 0 {
		if g.sounds >= g.Level.RequiredSounds {
			g.State = StateWin
			PlaySound(SoundWin)
		} else {
			g.State = StateGameOver
			PlaySound(SoundGameOver)
		}
		return
	}

	// One detector poll per frame.
	edge := g.input.CheckSound()
	g.sounding = edge.Sounding
	g.volume = g.input.Volume()
	if edge.Onset {
		g.player.Jump()
		g.sounds++
		PlaySound(SoundJump)
	}

	g.player.Step(edge.Sounding)

	g.obstacles = g.spawn.step(g.beatMillis(), g.obstacles)
	speed := g.scrollSpeed()
	for i := range g.obstacles {
		g.obstacles[i].X -= speed
	}

	// Collision ends the run immediately; remaining obstacles are skipped.
	px, py, pw, ph := g.player.Bounds()
	for _, o := range g.obstacles {
		ox, oy, ow, oh := o.Bounds()
		if overlaps(px, py, pw, ph, ox, oy, ow, oh) {
			g.State = StateGameOver
			PlaySound(SoundGameOver)
			return
		}
	}

	// Prune obstacles fully off the left edge.
	live := g.obstacles[:0]
	for _, o := range g.obstacles {
		_, _, w, _ := o.Bounds()
		if o.X+w > 0 {
			live = append(live, o)
		}
	}
	g.obstacles = live
}

// Frame emits the renderable snapshot of the current state. The obstacle
// slice is shared with the game; the renderer only reads it within the
// frame.
func (g *Game) Frame() Frame {
	return Frame{
		PlayerY:   g.player.Y,
		HoverGlow: g.sounding && g.player.Hovering(),
		Sounding:  g.sounding,
		Obstacles: g.obstacles,
		TimeLeft:  g.TimeLeft(),
		Sounds:    g.sounds,
		Required:  g.Level.RequiredSounds,
		Volume:    g.volume,
	}
}
