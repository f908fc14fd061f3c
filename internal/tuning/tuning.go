package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nottingham-lite/replay"
)

// Tuning is the simulator's file-based configuration. Zero values defer to
// built-in defaults.
type Tuning struct {
	Rounds          int   `yaml:"rounds"`
	Sessions        int   `yaml:"sessions"`
	Seed            int64 `yaml:"seed"`
	MaxHaggleRounds int   `yaml:"max_haggle_rounds"`

	Sheriff Sheriff  `yaml:"sheriff"`
	Roster  []string `yaml:"roster"`
	Storage Storage  `yaml:"storage"`
}

type Sheriff struct {
	Name     string `yaml:"name"`
	Strategy string `yaml:"strategy"`
}

type Storage struct {
	DBPath      string `yaml:"db_path"`
	ArchiveDir  string `yaml:"archive_dir"`
	PersonaFile string `yaml:"persona_file"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning: %w", err)
	}
	return t, nil
}

// SessionSpec maps the tuning file onto a runnable session spec; the seed is
// offset per session so a batch stays reproducible without repeating itself.
func (t Tuning) SessionSpec(sessionIdx int) replay.SessionSpec {
	spec := replay.SessionSpec{
		Rounds:          t.Rounds,
		MaxHaggleRounds: t.MaxHaggleRounds,
		Sheriff: replay.SheriffSpec{
			Name:     t.Sheriff.Name,
			Strategy: t.Sheriff.Strategy,
		},
	}
	for _, id := range t.Roster {
		spec.Merchants = append(spec.Merchants, replay.MerchantSpec{Persona: id})
	}
	if t.Seed != 0 {
		spec.RNG = &replay.RNGSpec{Seed: t.Seed + int64(sessionIdx)}
	}
	return spec
}
