package worldsettings

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SpawnKind discriminates the three ways a world's spawn anchor can be
// chosen.
type SpawnKind int

const (
	// SpawnSet pins the run to a single named anchor.
	SpawnSet SpawnKind = iota
	// SpawnRandom picks among anchors flagged as valid random spawns.
	SpawnRandom
	// SpawnFullyRandom picks among every anchor in the compiled graph.
	SpawnFullyRandom
)

// Spawn selects where a world's playthrough begins.
type Spawn struct {
	Kind   SpawnKind
	Anchor string // populated only when Kind == SpawnSet
}

func (s Spawn) String() string {
	switch s.Kind {
	case SpawnSet:
		return fmt.Sprintf("Set(%s)", s.Anchor)
	case SpawnRandom:
		return "Random"
	case SpawnFullyRandom:
		return "FullyRandom"
	default:
		return "Spawn(?)"
	}
}

// MarshalYAML renders Spawn the way the settings preset format expects:
// either the bare tag name or `Set(anchor)`.
func (s Spawn) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML parses "Random", "FullyRandom", or "Set(anchor)".
func (s *Spawn) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch {
	case raw == "Random":
		*s = Spawn{Kind: SpawnRandom}
	case raw == "FullyRandom":
		*s = Spawn{Kind: SpawnFullyRandom}
	case len(raw) > 4 && raw[:4] == "Set(" && raw[len(raw)-1] == ')':
		*s = Spawn{Kind: SpawnSet, Anchor: raw[4 : len(raw)-1]}
	default:
		*s = Spawn{Kind: SpawnSet, Anchor: raw}
	}
	return nil
}

// MarshalJSON mirrors MarshalYAML so a Universe round-trips identically
// whether its preset is authored in YAML or JSON (see LoadUniverse).
func (s Spawn) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON mirrors UnmarshalYAML's "Random"/"FullyRandom"/"Set(anchor)"
// grammar for the JSON preset format spec.md §6 names.
func (s *Spawn) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw == "Random":
		*s = Spawn{Kind: SpawnRandom}
	case raw == "FullyRandom":
		*s = Spawn{Kind: SpawnFullyRandom}
	case len(raw) > 4 && raw[:4] == "Set(" && raw[len(raw)-1] == ')':
		*s = Spawn{Kind: SpawnSet, Anchor: raw[4 : len(raw)-1]}
	default:
		*s = Spawn{Kind: SpawnSet, Anchor: raw}
	}
	return nil
}

// WorldSettings holds the player-visible configuration for a single world
// within a seed universe.
type WorldSettings struct {
	Spawn          Spawn                         `yaml:"spawn" json:"spawn"`
	Difficulty     Difficulty                    `yaml:"-" json:"-"`
	DifficultyName string                        `yaml:"difficulty" json:"difficulty"`
	Tricks         map[string]bool               `yaml:"tricks" json:"tricks"`
	Hard           bool                          `yaml:"hard" json:"hard"`
	RandomizeDoors int                           `yaml:"randomize_doors" json:"randomize_doors"` // 0 = off, >=2 = loop size
	Snippets       []string                      `yaml:"snippets" json:"snippets"`
	SnippetConfig  map[string]map[string]string  `yaml:"snippet_config" json:"snippet_config"`
}

// DefaultWorldSettings returns a Moki, no-tricks, no-hard-mode world.
func DefaultWorldSettings() *WorldSettings {
	return &WorldSettings{
		Spawn:          Spawn{Kind: SpawnSet, Anchor: "MarshSpawn.Main"},
		Difficulty:     Moki,
		DifficultyName: "Moki",
		Tricks:         map[string]bool{},
		SnippetConfig:  map[string]map[string]string{},
	}
}

// HasTrick reports whether the named trick is enabled for this world.
func (w *WorldSettings) HasTrick(name string) bool {
	return w.Tricks[name]
}

// Validate checks internal consistency and resolves DifficultyName into the
// Difficulty enum.
func (w *WorldSettings) Validate() error {
	d, err := ParseDifficulty(w.DifficultyName)
	if err != nil {
		return fmt.Errorf("world settings: %w", err)
	}
	w.Difficulty = d
	if w.RandomizeDoors != 0 && w.RandomizeDoors < 2 {
		return fmt.Errorf("world settings: randomize_doors loop size must be >= 2 or 0, got %d", w.RandomizeDoors)
	}
	return nil
}

// Universe is the top-level settings preset: a seed string plus one
// WorldSettings per player, and a list of included presets to merge in.
type Universe struct {
	Seed         string           `yaml:"seed" json:"seed"`
	WorldSettings []*WorldSettings `yaml:"world_settings" json:"world_settings"`
	Includes     []string         `yaml:"includes" json:"includes"`
}

// LoadUniverse reads and validates a universe settings preset from disk.
// The teacher's config loader is YAML-only; this port additionally accepts
// a ".json" preset (spec.md §6 names JSON as the settings wire format) and
// normalizes either into the same Universe struct, see SPEC_FULL.md §9.
func LoadUniverse(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("worldsettings: read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadUniverseFromJSONBytes(data)
	}
	return LoadUniverseFromBytes(data)
}

// LoadUniverseFromBytes parses and validates a YAML universe settings preset.
func LoadUniverseFromBytes(data []byte) (*Universe, error) {
	var u Universe
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("worldsettings: parse: %w", err)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// LoadUniverseFromJSONBytes parses and validates a JSON universe settings
// preset, the format spec.md §6 describes literally.
func LoadUniverseFromJSONBytes(data []byte) (*Universe, error) {
	var u Universe
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("worldsettings: parse json: %w", err)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Validate checks the universe and every contained world's settings.
func (u *Universe) Validate() error {
	if u.Seed == "" {
		return fmt.Errorf("worldsettings: seed must not be empty")
	}
	if len(u.WorldSettings) == 0 {
		return fmt.Errorf("worldsettings: universe must declare at least one world")
	}
	for i, w := range u.WorldSettings {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("worldsettings: world %d: %w", i, err)
		}
	}
	return nil
}

// Hash returns a stable digest of the universe's settings, used to derive
// the per-stage RNG seeds for a reproducible compile/placement run.
func (u *Universe) Hash() ([]byte, error) {
	data, err := yaml.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("worldsettings: hash: %w", err)
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}
