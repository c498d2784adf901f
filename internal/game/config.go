package game

// Playfield dimensions (logical units; the window is created at this size).
const (
	PlayfieldW = 800
	PlayfieldH = 400
)

// Fixed logical timestep. Physics and spawn timing advance by exactly one
// tick per frame regardless of measured wall time, so a run is deterministic
// against the level's BPM.
const (
	TickSeconds = 1.0 / 60.0
	TickMillis  = 1000.0 / 60.0
)

// Player geometry. The body sits at a fixed horizontal lane and only moves
// vertically; Y is the top of the body, clamped to [0, GroundY-PlayerH].
const (
	PlayerX = 100.0
	PlayerW = 40.0
	PlayerH = 40.0
	GroundY = 360.0 // top of the ground strip
)

// Jump-and-hover kinematics, in logical units per frame.
const (
	Gravity      = 0.6
	JumpImpulse  = -11.0
	HoverMaxFall = 1.0 // descent cap while hover lift is active
	HoverBudget  = 2.0 // seconds of lift per jump
)

// Obstacle geometry. Pipes and crates share a bounding box; the plant pipe
// is taller.
const (
	PipeW      = 40.0
	PipeH      = 60.0
	PlantPipeH = 84.0
)

// Spawning and scrolling.
const (
	SpawnChance = 0.6
	ScrollScale = 4.0 // level speed multiplier -> units per frame
)

// Font atlas layout (built at init from the baked 5x7 glyphs).
const (
	FontCellW  = 6
	FontCellH  = 8
	FontCols   = 16
	FontRows   = 6
	FontAtlasW = FontCellW * FontCols
	FontAtlasH = FontCellH * FontRows
)
