package worldsettings

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlPreset = `
seed: "abc123"
world_settings:
  - spawn: "Set(MarshSpawn.Main)"
    difficulty: Moki
    tricks:
      lure_pool_light: true
    randomize_doors: 0
    snippets: ["base"]
`

const jsonPreset = `{
  "seed": "abc123",
  "world_settings": [
    {
      "spawn": "FullyRandom",
      "difficulty": "Unsafe",
      "tricks": {"swordsjump": true},
      "randomize_doors": 4,
      "snippets": ["base"]
    }
  ]
}`

func TestLoadUniverseYAML(t *testing.T) {
	u, err := LoadUniverseFromBytes([]byte(yamlPreset))
	if err != nil {
		t.Fatalf("LoadUniverseFromBytes: %v", err)
	}
	if u.Seed != "abc123" {
		t.Fatalf("seed = %q, want abc123", u.Seed)
	}
	ws := u.WorldSettings[0]
	if ws.Spawn.Kind != SpawnSet || ws.Spawn.Anchor != "MarshSpawn.Main" {
		t.Fatalf("spawn = %+v, want Set(MarshSpawn.Main)", ws.Spawn)
	}
	if ws.Difficulty != Moki {
		t.Fatalf("difficulty = %v, want Moki", ws.Difficulty)
	}
	if !ws.HasTrick("lure_pool_light") {
		t.Fatalf("expected lure_pool_light trick enabled")
	}
}

func TestLoadUniverseJSON(t *testing.T) {
	u, err := LoadUniverseFromJSONBytes([]byte(jsonPreset))
	if err != nil {
		t.Fatalf("LoadUniverseFromJSONBytes: %v", err)
	}
	ws := u.WorldSettings[0]
	if ws.Spawn.Kind != SpawnFullyRandom {
		t.Fatalf("spawn kind = %v, want SpawnFullyRandom", ws.Spawn.Kind)
	}
	if ws.Difficulty != Unsafe {
		t.Fatalf("difficulty = %v, want Unsafe", ws.Difficulty)
	}
	if ws.RandomizeDoors != 4 {
		t.Fatalf("randomize_doors = %d, want 4", ws.RandomizeDoors)
	}
}

func TestLoadUniverseDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "universe.yaml")
	if err := os.WriteFile(yamlPath, []byte(yamlPreset), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadUniverse(yamlPath); err != nil {
		t.Fatalf("LoadUniverse(yaml): %v", err)
	}

	jsonPath := filepath.Join(dir, "universe.JSON")
	if err := os.WriteFile(jsonPath, []byte(jsonPreset), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadUniverse(jsonPath); err != nil {
		t.Fatalf("LoadUniverse(json, case-insensitive ext): %v", err)
	}
}

func TestUniverseValidateRejectsEmptySeed(t *testing.T) {
	u := &Universe{WorldSettings: []*WorldSettings{DefaultWorldSettings()}}
	if err := u.Validate(); err == nil {
		t.Fatal("expected error for empty seed")
	}
}

func TestUniverseValidateRejectsSmallDoorLoop(t *testing.T) {
	ws := DefaultWorldSettings()
	ws.RandomizeDoors = 1
	u := &Universe{Seed: "x", WorldSettings: []*WorldSettings{ws}}
	if err := u.Validate(); err == nil {
		t.Fatal("expected error for randomize_doors=1")
	}
}

func TestSpawnRoundTripsThroughYAMLAndJSON(t *testing.T) {
	want := Spawn{Kind: SpawnSet, Anchor: "GladesTown.Teleporter"}
	if got := want.String(); got != "Set(GladesTown.Teleporter)" {
		t.Fatalf("String() = %q", got)
	}

	var viaJSON Spawn
	data, err := want.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if err := viaJSON.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if viaJSON != want {
		t.Fatalf("json round trip = %+v, want %+v", viaJSON, want)
	}
}

func TestUniverseHashIsDeterministic(t *testing.T) {
	u, err := LoadUniverseFromBytes([]byte(yamlPreset))
	if err != nil {
		t.Fatal(err)
	}
	h1, err := u.Hash()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := u.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if string(h1) != string(h2) {
		t.Fatal("Hash() is not deterministic across calls")
	}
	if len(h1) != 32 {
		t.Fatalf("Hash() len = %d, want 32 (sha256)", len(h1))
	}
}
