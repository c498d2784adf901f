package game

import "testing"

func TestObstacleBounds(t *testing.T) {
	tests := []struct {
		name  string
		kind  ObstacleKind
		wantH float64
	}{
		{"pipe", KindPipe, PipeH},
		{"crate", KindCrate, PipeH},
		{"plant pipe", KindPlantPipe, PlantPipeH},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := Obstacle{X: 500, Kind: tc.kind}
			x, y, w, h := o.Bounds()
			if x != 500 || w != PipeW {
				t.Fatalf("x/w = %v/%v, want 500/%v", x, w, PipeW)
			}
			if h != tc.wantH {
				t.Fatalf("h = %v, want %v", h, tc.wantH)
			}
			// All kinds stand on the ground.
			if y+h != GroundY {
				t.Fatalf("bottom = %v, want ground %v", y+h, GroundY)
			}
		})
	}
}

func TestOverlapsBoundary(t *testing.T) {
	// Player-sized box at the lane position.
	px, py, pw, ph := PlayerX, GroundY-PlayerH, PlayerW, PlayerH

	tests := []struct {
		name string
		bx   float64
		want bool
	}{
		{"touching right edge exactly", px + pw, false},
		{"one unit of overlap", px + pw - 1, true},
		{"touching left edge exactly", px - PipeW, false},
		{"one unit past left edge", px - PipeW + 1, true},
		{"fully inside", px, true},
		{"far away", px + 300, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := Obstacle{X: tc.bx, Kind: KindPipe}
			ox, oy, ow, oh := o.Bounds()
			if got := overlaps(px, py, pw, ph, ox, oy, ow, oh); got != tc.want {
				t.Fatalf("overlaps at bx=%v: got %v, want %v", tc.bx, got, tc.want)
			}
		})
	}
}

func TestOverlapsVerticalTouch(t *testing.T) {
	// A box resting exactly on top of a pipe does not collide with it.
	ox, oy, ow, oh := Obstacle{X: 100, Kind: KindPipe}.Bounds()
	if overlaps(100, oy-PlayerH, PlayerW, PlayerH, ox, oy, ow, oh) {
		t.Fatal("vertical edge touch reported as overlap")
	}
	if !overlaps(100, oy-PlayerH+1, PlayerW, PlayerH, ox, oy, ow, oh) {
		t.Fatal("one unit of vertical overlap not reported")
	}
}

func TestSpawnerBeatInterval(t *testing.T) {
	s := spawner{rng: NewRand(42)}
	const beatMs = 500.0 // 120 BPM
	ticksPerBeat := 30   // 500ms at 60Hz

	var obs []Obstacle
	spawnTicks := []int{}
	for tick := 1; tick <= 6000; tick++ {
		before := len(obs)
		obs = s.step(beatMs, obs)
		if len(obs) > before {
			spawnTicks = append(spawnTicks, tick)
		}
	}

	// Spawns are only ever attempted on beat boundaries.
	for _, tick := range spawnTicks {
		if tick%ticksPerBeat != 0 {
			t.Fatalf("spawn at tick %d, not on a %d-tick beat boundary", tick, ticksPerBeat)
		}
	}

	// The roll is probabilistic (60%); with 200 attempts the count should
	// land well inside [45%, 75%].
	attempts := 6000 / ticksPerBeat
	if lo, hi := attempts*45/100, attempts*75/100; len(obs) < lo || len(obs) > hi {
		t.Fatalf("%d spawns out of %d attempts, want within [%d, %d]", len(obs), attempts, lo, hi)
	}

	// All three kinds appear, and new obstacles enter at the right edge.
	var kinds [obstacleKinds]int
	for _, o := range obs {
		kinds[o.Kind]++
		if o.X != PlayfieldW {
			t.Fatalf("obstacle spawned at X=%v, want %v", o.X, float64(PlayfieldW))
		}
	}
	for k, n := range kinds {
		if n == 0 {
			t.Fatalf("kind %d never spawned in %d rolls", k, len(obs))
		}
	}
}

func TestSpawnerTimerResetsWithoutSpawn(t *testing.T) {
	s := spawner{rng: NewRand(7)}
	const beatMs = 500.0

	// Drive past several beats; the timer must reset on every beat whether
	// or not the roll succeeded, so it never exceeds one interval.
	var obs []Obstacle
	for tick := 0; tick < 300; tick++ {
		obs = s.step(beatMs, obs)
		if s.sinceMs >= beatMs {
			t.Fatalf("tick %d: spawn timer %v not reset at beat %v", tick, s.sinceMs, beatMs)
		}
	}
}
