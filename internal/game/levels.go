package game

// LevelConfig is immutable once a run starts. BPM drives the obstacle spawn
// interval (60000/BPM ms); SpeedMultiplier drives scroll speed unless Pro is
// set, in which case the runtime pro-speed override is used instead.
type LevelConfig struct {
	ID              int
	Name            string
	BPM             float64
	Duration        float64 // seconds
	RequiredSounds  int
	Description     string
	SpeedMultiplier float64
	Pro             bool
}

// levels is the ordered level table. Hand-tuned: interval shrinks and the
// required onset density rises with each entry.
var levels = []LevelConfig{
	{
		ID: 1, Name: "First Steps", BPM: 60, Duration: 30, RequiredSounds: 10,
		Description: "One note per second keeps the ground away.", SpeedMultiplier: 1.0,
	},
	{
		ID: 2, Name: "Walking Pace", BPM: 80, Duration: 45, RequiredSounds: 20,
		Description: "A little quicker. Mind the crates.", SpeedMultiplier: 1.0,
	},
	{
		ID: 3, Name: "Daily Groove", BPM: 100, Duration: 60, RequiredSounds: 35,
		Description: "A full minute of steady playing.", SpeedMultiplier: 1.2,
	},
	{
		ID: 4, Name: "Double Time", BPM: 120, Duration: 75, RequiredSounds: 50,
		Description: "Pipes arrive twice as eagerly.", SpeedMultiplier: 1.3,
	},
	{
		ID: 5, Name: "Machine Gun", BPM: 140, Duration: 90, RequiredSounds: 70,
		Description: "Short notes only. No time to breathe.", SpeedMultiplier: 1.5,
	},
	{
		ID: 6, Name: "Pro Mode", BPM: 120, Duration: 120, RequiredSounds: 80,
		Description: "Scroll speed is whatever you dare to set.", SpeedMultiplier: 1.5, Pro: true,
	},
}

// Levels returns the ordered level table.
func Levels() []LevelConfig {
	return levels
}

// GetLevelConfig returns the config for a level id, clamped to the table.
func GetLevelConfig(id int) LevelConfig {
	if id < 1 {
		id = 1
	}
	if id > len(levels) {
		id = len(levels)
	}
	return levels[id-1]
}
