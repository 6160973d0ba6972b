package export_test

import (
	"encoding/json"
	"testing"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/export"
	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/rng"
	"github.com/oriwisp/seedgen/pkg/uberstate"
	"github.com/oriwisp/seedgen/pkg/visualize"
)

func sampleGraph() *logicgraph.Graph {
	g := logicgraph.NewGraph()
	a := g.AddNode(logicgraph.Node{Kind: logicgraph.NodeAnchor, Name: "Start"})
	b := g.AddNode(logicgraph.Node{Kind: logicgraph.NodePickup, Name: "Pickup.Glades.One", HasUberState: true, UberState: uberstate.Identifier{Group: 1, Member: 1}})
	g.Nodes[a].Connections = append(g.Nodes[a].Connections, logicgraph.Connection{Target: b, Requirement: logicgraph.ReqFree()})
	return g
}

func TestJSONRoundTrips(t *testing.T) {
	g := sampleGraph()
	events := []command.Event{{
		Trigger: command.Trigger{Kind: command.TriggerClientEvent, EventName: "SeedCompleted"},
		Command: command.Void(command.OpSave),
	}}
	lookup := &command.Lookup{}
	lookup.Add(command.ConstantBool(true))

	artifact := export.NewArtifact(g, events, lookup, "main")
	data, err := export.JSON(artifact)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["snippet"] != "main" {
		t.Fatalf("snippet = %v, want main", decoded["snippet"])
	}
	if _, ok := decoded["graph"]; !ok {
		t.Fatal("missing graph field")
	}
}

func TestExportSVGProducesDocument(t *testing.T) {
	g := sampleGraph()
	e, err := visualize.Get("circular", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	layout, err := e.Embed(g, rng.NewRNG(7, "svg_test", nil))
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	data, err := export.ExportSVG(g, layout, export.DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty SVG output")
	}
}
