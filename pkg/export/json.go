package export

import (
	"encoding/json"
	"os"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/logicgraph"
)

// Artifact is the JSON-serializable shape of one compiled world: its logic
// graph plus the seed-DSL compiler's event list and shared-subtree arena.
// This is a tooling format only — it is not the binary seed file the
// randomizer client loads, which this port does not specify (see spec's
// Non-goals).
type Artifact struct {
	Graph   *logicgraph.Graph `json:"graph"`
	Events  []command.Event   `json:"events"`
	Lookup  []*command.Command `json:"lookup,omitempty"`
	Snippet string            `json:"snippet,omitempty"`
}

// NewArtifact bundles a compiled graph, event list, and shared-subtree
// arena into an exportable Artifact.
func NewArtifact(g *logicgraph.Graph, events []command.Event, lookup *command.Lookup, snippet string) *Artifact {
	a := &Artifact{Graph: g, Events: events, Snippet: snippet}
	if lookup != nil {
		a.Lookup = lookup.Entries()
	}
	return a
}

// JSON serializes the artifact with 2-space indentation for readability.
func JSON(artifact *Artifact) ([]byte, error) {
	return json.MarshalIndent(artifact, "", "  ")
}

// JSONCompact serializes the artifact without indentation, suitable for
// storage or transmission.
func JSONCompact(artifact *Artifact) ([]byte, error) {
	return json.Marshal(artifact)
}

// SaveJSONToFile exports the artifact to a JSON file with indentation.
func SaveJSONToFile(artifact *Artifact, path string) error {
	data, err := JSON(artifact)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveJSONCompactToFile exports the artifact to a compact JSON file.
func SaveJSONCompactToFile(artifact *Artifact, path string) error {
	data, err := JSONCompact(artifact)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
