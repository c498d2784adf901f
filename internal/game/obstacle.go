package game

// ObstacleKind tags the three obstacle variants. Geometry and drawing
// dispatch on it with a switch; there is no behavior behind the tag.
type ObstacleKind int

const (
	KindPipe ObstacleKind = iota
	KindCrate
	KindPlantPipe

	obstacleKinds = 3
)

// Obstacle scrolls leftward until its right edge leaves the playfield.
// X is the left edge. Slice order only affects drawing, never behavior.
type Obstacle struct {
	X    float64
	Kind ObstacleKind
}

// Bounds returns the obstacle's AABB (x, y, w, h). The plant pipe stands
// taller than the other two; everything is ground-anchored.
func (o Obstacle) Bounds() (x, y, w, h float64) {
	switch o.Kind {
	case KindPlantPipe:
		return o.X, GroundY - PlantPipeH, PipeW, PlantPipeH
	default:
		return o.X, GroundY - PipeH, PipeW, PipeH
	}
}

// overlaps reports strict AABB intersection. Boxes that merely touch along
// an edge do not overlap.
func overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}

// spawner emits obstacles on a beat-locked schedule: every time the
// accumulated time crosses the beat interval the timer resets and a single
// spawn roll happens, successful with probability SpawnChance.
type spawner struct {
	rng     *Rand
	sinceMs float64
}

// step advances the spawn timer by one tick and appends at most one new
// obstacle at the right edge of the playfield.
func (s *spawner) step(beatMs float64, obs []Obstacle) []Obstacle {
	s.sinceMs += TickMillis
	if s.sinceMs < beatMs {
		return obs
	}
	// Reset regardless of whether the roll below succeeds.
	s.sinceMs = 0
	if s.rng.Float64() < SpawnChance {
		obs = append(obs, Obstacle{
			X:    PlayfieldW,
			Kind: ObstacleKind(s.rng.Intn(obstacleKinds)),
		})
	}
	return obs
}
