package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the user-tunable knobs read once at startup. The threshold
// and pro speed can additionally be adjusted live from the keyboard; the
// file is never written back.
type Settings struct {
	Threshold float64 `yaml:"threshold"`
	ProSpeed  float64 `yaml:"pro_speed"`
	SFXVolume float64 `yaml:"sfx_volume"`
}

func DefaultSettings() Settings {
	return Settings{
		Threshold: 30,
		ProSpeed:  1.0,
		SFXVolume: 0.8,
	}
}

// LoadSettings reads path, falling back to defaults when the file does not
// exist. A present-but-malformed file is an error. Loaded values are
// clamped to sane ranges; zero values fall back to defaults so a partial
// file works.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	var in Settings
	if err := yaml.Unmarshal(data, &in); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if in.Threshold != 0 {
		s.Threshold = clampF(in.Threshold, 5, 100)
	}
	if in.ProSpeed != 0 {
		s.ProSpeed = clampF(in.ProSpeed, 0.25, 8.0)
	}
	if in.SFXVolume != 0 {
		s.SFXVolume = clampF(in.SFXVolume, 0, 1)
	}
	return s, nil
}
