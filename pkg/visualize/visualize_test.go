package visualize_test

import (
	"testing"

	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/rng"
	"github.com/oriwisp/seedgen/pkg/visualize"
)

func sampleGraph() *logicgraph.Graph {
	g := logicgraph.NewGraph()
	a := g.AddNode(logicgraph.Node{Kind: logicgraph.NodeAnchor, Name: "Start"})
	b := g.AddNode(logicgraph.Node{Kind: logicgraph.NodeAnchor, Name: "Mid"})
	c := g.AddNode(logicgraph.Node{Kind: logicgraph.NodeAnchor, Name: "End"})
	g.Nodes[a].Connections = append(g.Nodes[a].Connections, logicgraph.Connection{Target: b})
	g.Nodes[b].Connections = append(g.Nodes[b].Connections, logicgraph.Connection{Target: c})
	return g
}

func TestForceDirectedEmbedIsDeterministic(t *testing.T) {
	g := sampleGraph()
	cfg := visualize.DefaultConfig()

	e, err := visualize.Get("force_directed", cfg)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	r1 := rng.NewRNG(42, "visualize_test", nil)
	l1, err := e.Embed(g, r1)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	r2 := rng.NewRNG(42, "visualize_test", nil)
	l2, err := e.Embed(g, r2)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	for i := 0; i < len(g.Nodes); i++ {
		if l1.Positions[i] != l2.Positions[i] {
			t.Fatalf("node %d: positions diverged between runs: %v != %v", i, l1.Positions[i], l2.Positions[i])
		}
	}
	if err := l1.Validate(len(g.Nodes)); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestCircularEmbedPlacesEveryNode(t *testing.T) {
	g := sampleGraph()
	e, err := visualize.Get("circular", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	layout, err := e.Embed(g, rng.NewRNG(1, "circular_test", nil))
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if err := layout.Validate(len(g.Nodes)); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if layout.Bounds.Width() < 0 || layout.Bounds.Height() < 0 {
		t.Fatalf("negative bounds: %+v", layout.Bounds)
	}
}

func TestGetUnknownEmbedder(t *testing.T) {
	if _, err := visualize.Get("does-not-exist", nil); err == nil {
		t.Fatal("expected error for unknown embedder")
	}
}
