package logicgraph

import "github.com/oriwisp/seedgen/pkg/uberstate"

// NodeKind discriminates the kinds of node a compiled Logic DSL file
// produces.
type NodeKind int

const (
	NodeAnchor NodeKind = iota
	NodePickup
	NodeState
	NodeQuest
	NodeRefill
)

// Connection is a directed edge from its owning anchor to Target, gated by
// Requirement.
type Connection struct {
	Target      int
	Requirement Requirement
}

// Door is a two-way connector created by door randomization: entering from
// EnterRequirement's side reaches Target.
type Door struct {
	ID                string
	Target            int
	EnterRequirement Requirement
}

// Refill restores health, energy, or both on arrival at the owning anchor,
// optionally gated by Requirement (e.g. a checkpoint that only refills once
// some condition holds).
type Refill struct {
	Health, Energy float64
	Requirement    Requirement
}

// Node is one vertex of the compiled reachability graph. Only the fields
// relevant to Kind are populated.
type Node struct {
	Kind NodeKind
	Name string

	// Pickup/State: the uber-state identifier this node's reachability is
	// tied to, if any.
	UberState   uberstate.Identifier
	HasUberState bool

	Connections []Connection
	Doors       []Door
	Refills     []Refill
}

// Graph is the compiled form of a Logic DSL source file: a list of nodes
// plus the monotonic reached-set used to drive incremental re-evaluation as
// the simulated player's inventory grows.
type Graph struct {
	Nodes   []Node
	byName  map[string]int
	reached map[int]bool
}

// NewGraph returns an empty graph ready to accept nodes via AddNode.
func NewGraph() *Graph {
	return &Graph{byName: make(map[string]int), reached: make(map[int]bool)}
}

// AddNode appends node and returns its index, recording it under node.Name
// for later lookup.
func (g *Graph) AddNode(node Node) int {
	idx := len(g.Nodes)
	g.Nodes = append(g.Nodes, node)
	g.byName[node.Name] = idx
	return idx
}

// IndexOf returns the node index for name, or -1 if no such node exists.
func (g *Graph) IndexOf(name string) int {
	if idx, ok := g.byName[name]; ok {
		return idx
	}
	return -1
}

// HasReached reports whether node is already in the reached set. Suitable
// for use as a Context.HasReached callback.
func (g *Graph) HasReached(node int) bool {
	return g.reached[node]
}

// NodeUberState returns the uber-state identifier gating node, if it has
// one. Suitable for use as a Context.NodeUberState callback.
func (g *Graph) NodeUberState(node int) (uberstate.Identifier, bool) {
	n := g.Nodes[node]
	return n.UberState, n.HasUberState
}

// MarkReached adds node to the reached set, returning false if it was
// already present (the caller uses this to stop recursing once nothing new
// was learned).
func (g *Graph) MarkReached(node int) bool {
	if g.reached[node] {
		return false
	}
	g.reached[node] = true
	return true
}

// Reachable returns the node indices currently in the reached set.
func (g *Graph) Reachable() []int {
	out := make([]int, 0, len(g.reached))
	for idx := range g.reached {
		out = append(out, idx)
	}
	return out
}

// Reset clears the reached set, used when re-running reachability from
// scratch for a different inventory snapshot (e.g. the placement search
// re-checking a candidate seed).
func (g *Graph) Reset() {
	g.reached = make(map[int]bool)
}

// update_reached-style incremental propagation lives in reachability.go,
// which needs the evaluator and is kept separate so this file stays focused
// on the graph's static shape.
