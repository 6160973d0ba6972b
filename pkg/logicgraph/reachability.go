package logicgraph

import "github.com/oriwisp/seedgen/pkg/orbs"

// Reachability walks the compiled graph to a fixed point: starting from
// spawn with startOrbs as the sole orb variant, it repeatedly tries every
// connection and door leaving a reached node until a full pass adds nothing
// new. The reached set (and therefore its size) only ever grows during one
// call, which is what lets update_reached recurse through dependent nodes
// without looping forever on cycles in the graph itself.
func Reachability(ctx *Context, g *Graph, spawn int, startOrbs orbs.Orbs) {
	g.Reset()
	g.MarkReached(spawn)
	frontierOrbs := map[int]orbs.Variants{spawn: {startOrbs}}

	for {
		progressed := false

		for idx := range g.Nodes {
			if !g.HasReached(idx) {
				continue
			}
			variants := frontierOrbs[idx]
			if variants == nil {
				variants = orbs.Variants{{}}
			}
			node := g.Nodes[idx]

			for _, conn := range node.Connections {
				branch := append(orbs.Variants{}, variants...)
				if m := IsMet(ctx, conn.Requirement, &branch); m == nil {
					if g.MarkReached(conn.Target) {
						progressed = true
					}
					frontierOrbs[conn.Target] = orbs.Either(frontierOrbs[conn.Target], branch)
				}
			}
			for _, door := range node.Doors {
				branch := append(orbs.Variants{}, variants...)
				if m := IsMet(ctx, door.EnterRequirement, &branch); m == nil {
					if g.MarkReached(door.Target) {
						progressed = true
					}
					frontierOrbs[door.Target] = orbs.Either(frontierOrbs[door.Target], branch)
				}
			}
		}

		if !progressed {
			return
		}
	}
}

// UpdateReached recomputes the reached set after the uber-states named by
// changedEvents change, by re-running Reachability over the whole graph.
// changedEvents is not consulted: every node is re-checked, not only the
// nodes whose requirements mention the changed states.
func UpdateReached(ctx *Context, g *Graph, spawn int, startOrbs orbs.Orbs, changedEvents []int) {
	_ = changedEvents
	Reachability(ctx, g, spawn, startOrbs)
}
