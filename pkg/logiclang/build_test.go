package logiclang_test

import (
	"testing"

	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/logiclang"
	"github.com/oriwisp/seedgen/pkg/rng"
)

const sampleAreas = `
anchor MarshSpawn.Main:
    refill full
    conn GladesTown.Main:
        DoubleJump, Dash

anchor GladesTown.Main:
    pickup GladesTown.PickupA:
        free
    conn MarshSpawn.Main:
        free
`

func TestBuildResolvesConnectionsAndPickups(t *testing.T) {
	anchors, err := logiclang.ParseAreas(sampleAreas)
	if err != nil {
		t.Fatalf("ParseAreas: %v", err)
	}
	g, err := logiclang.Build(anchors, logiclang.BuildOptions{}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	spawn := g.IndexOf("MarshSpawn.Main")
	glades := g.IndexOf("GladesTown.Main")
	pickup := g.IndexOf("GladesTown.PickupA")
	if spawn < 0 || glades < 0 || pickup < 0 {
		t.Fatalf("missing expected nodes: spawn=%d glades=%d pickup=%d", spawn, glades, pickup)
	}
	if g.Nodes[pickup].Kind != logicgraph.NodePickup {
		t.Fatalf("pickup node kind = %v, want NodePickup", g.Nodes[pickup].Kind)
	}
	if len(g.Nodes[spawn].Connections) != 1 || g.Nodes[spawn].Connections[0].Target != glades {
		t.Fatalf("spawn connections = %+v, want single edge to glades", g.Nodes[spawn].Connections)
	}
	if len(g.Nodes[spawn].Refills) != 1 {
		t.Fatalf("expected one refill at spawn, got %d", len(g.Nodes[spawn].Refills))
	}
}

const doorAreas = `
anchor A:
    door:
        id: 1
        target: A
        enter: free

anchor B:
    door:
        id: 2
        target: B
        enter: free
`

func TestBuildPartitionsDoorLoops(t *testing.T) {
	anchors, err := logiclang.ParseAreas(doorAreas)
	if err != nil {
		t.Fatalf("ParseAreas: %v", err)
	}
	r := rng.NewRNG(1, "door_test", nil)
	g, err := logiclang.Build(anchors, logiclang.BuildOptions{DoorLoopSize: 2}, r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	a := g.IndexOf("A")
	b := g.IndexOf("B")
	doorA := g.Nodes[a].Doors[0]
	doorB := g.Nodes[b].Doors[0]
	if doorA.Target != b && doorA.Target != a {
		t.Fatalf("door A target %d not one of the cycle's original targets", doorA.Target)
	}
	if doorB.Target != a && doorB.Target != b {
		t.Fatalf("door B target %d not one of the cycle's original targets", doorB.Target)
	}
}

func TestBuildUnknownConnectionTargetErrors(t *testing.T) {
	anchors, err := logiclang.ParseAreas("anchor A:\n    conn Nowhere:\n        free\n")
	if err != nil {
		t.Fatalf("ParseAreas: %v", err)
	}
	if _, err := logiclang.Build(anchors, logiclang.BuildOptions{}, nil); err == nil {
		t.Fatal("expected error for unknown connection target")
	}
}
