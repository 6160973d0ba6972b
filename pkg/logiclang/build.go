package logiclang

import (
	"fmt"
	"sort"

	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/rng"
)

// BuildOptions controls graph construction independent of what the source
// text itself declares.
type BuildOptions struct {
	// DoorLoopSize is the door-randomization loop size (spec.md's
	// randomize_doors setting). 0 or 1 means doors connect to their
	// declared target, unrandomized.
	DoorLoopSize int
}

// doorRef records where a door was declared, so loop partitioning can
// rewrite its target after every anchor has been indexed.
type doorRef struct {
	anchorIdx int
	doorIdx   int
	target    string
}

// Build resolves an ParseAreas anchor list into a compiled logicgraph.Graph:
// every anchor, and every pickup/state/quest target named from within an
// anchor body, becomes a node; State() requirement terms are resolved from
// dotted names to node indices; door-loop partitioning (when
// opts.DoorLoopSize >= 2) runs after doors are attached as graph edges and
// rewrites their targets.
func Build(anchors []astAnchor, opts BuildOptions, r *rng.RNG) (*logicgraph.Graph, error) {
	g := logicgraph.NewGraph()

	// Pass 1: every anchor gets a node, in declaration order, so Connection
	// targets that forward-reference a later anchor still resolve.
	for _, a := range anchors {
		g.AddNode(logicgraph.Node{Kind: logicgraph.NodeAnchor, Name: a.name})
	}

	// Pass 2: every Pickup/State/Quest connection target that isn't already
	// a known anchor name gets its own leaf node of that kind.
	for _, a := range anchors {
		for _, c := range a.connections {
			if c.kind == logicgraph.NodeAnchor {
				continue // plain Connection: target must be an anchor, resolved in pass 1
			}
			if g.IndexOf(c.name) >= 0 {
				continue
			}
			g.AddNode(logicgraph.Node{Kind: c.kind, Name: c.name})
		}
	}

	// Pass 3: resolve every astReq tree (including nested Combat/And/Or
	// subtrees) against the now-complete name table, and attach
	// connections/refills to their owning anchor node.
	var doorRefs []doorRef
	for ai, a := range anchors {
		node := &g.Nodes[ai]
		for _, c := range a.connections {
			targetIdx := g.IndexOf(c.name)
			if targetIdx < 0 {
				return nil, fmt.Errorf("logiclang: anchor %q: unknown connection target %q", a.name, c.name)
			}
			req, err := resolveReq(g, c.req)
			if err != nil {
				return nil, fmt.Errorf("logiclang: anchor %q -> %q: %w", a.name, c.name, err)
			}
			node.Connections = append(node.Connections, logicgraph.Connection{Target: targetIdx, Requirement: req})
		}
		for di, d := range a.doors {
			req, err := resolveReq(g, d.enter)
			if err != nil {
				return nil, fmt.Errorf("logiclang: anchor %q door %q: %w", a.name, d.id, err)
			}
			targetIdx := -1
			if d.target != "" {
				targetIdx = g.IndexOf(d.target)
				if targetIdx < 0 {
					return nil, fmt.Errorf("logiclang: anchor %q door %q: unknown target %q", a.name, d.id, d.target)
				}
			}
			node.Doors = append(node.Doors, logicgraph.Door{ID: d.id, Target: targetIdx, EnterRequirement: req})
			doorRefs = append(doorRefs, doorRef{anchorIdx: ai, doorIdx: di, target: d.target})
		}
		for _, rf := range a.refills {
			var req logicgraph.Requirement
			if rf.hasReq {
				var err error
				req, err = resolveReq(g, rf.req)
				if err != nil {
					return nil, fmt.Errorf("logiclang: anchor %q refill: %w", a.name, err)
				}
			} else {
				req = logicgraph.ReqFree()
			}
			node.Refills = append(node.Refills, logicgraph.Refill{Health: rf.health, Energy: rf.energy, Requirement: req})
		}
	}

	if opts.DoorLoopSize >= 2 {
		if err := partitionDoorLoops(g, doorRefs, opts.DoorLoopSize, r); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// partitionDoorLoops implements spec.md §4.5/§6's door-randomization rule:
// door ids are shuffled (via r, for reproducibility under the seed's RNG)
// then partitioned into disjoint cycles of length k; within a cycle, door i
// is rewired to lead where door (i+1 mod k) originally led, so traversing
// every door in the cycle once returns to the start.
func partitionDoorLoops(g *logicgraph.Graph, refs []doorRef, k int, r *rng.RNG) error {
	if len(refs)%k != 0 {
		return fmt.Errorf("logiclang: %d doors cannot be partitioned into loops of size %d", len(refs), k)
	}

	// Sort first for a deterministic starting order, then shuffle through
	// the supplied RNG so re-runs with the same seed reproduce the same
	// partition.
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].anchorIdx != refs[j].anchorIdx {
			return refs[i].anchorIdx < refs[j].anchorIdx
		}
		return refs[i].doorIdx < refs[j].doorIdx
	})
	if r != nil {
		r.Shuffle(len(refs), func(i, j int) { refs[i], refs[j] = refs[j], refs[i] })
	}

	originalTargets := make([]int, len(refs))
	for i, ref := range refs {
		originalTargets[i] = g.Nodes[ref.anchorIdx].Doors[ref.doorIdx].Target
	}

	for start := 0; start+k <= len(refs); start += k {
		for i := 0; i < k; i++ {
			cur := refs[start+i]
			next := originalTargets[start+(i+1)%k]
			g.Nodes[cur.anchorIdx].Doors[cur.doorIdx].Target = next
		}
	}
	return nil
}

// resolveReq converts an astReq tree (with dotted-name state references) to
// a logicgraph.Requirement tree with StateReq.StateNode resolved to its
// node index.
func resolveReq(g *logicgraph.Graph, ar astReq) (logicgraph.Requirement, error) {
	req := logicgraph.Requirement{
		Kind:       ar.kind,
		Difficulty: ar.difficulty,
		TrickName:  ar.trickName,
		Skill:      ar.skill,
		Count:      ar.count,
		Shard:      ar.shard,
		Teleporter: ar.teleporter,
		Amount:     ar.amount,
	}

	if ar.kind == logicgraph.StateReq {
		idx := g.IndexOf(ar.stateName)
		if idx < 0 {
			return logicgraph.Requirement{}, fmt.Errorf("unknown logic identifier %q", ar.stateName)
		}
		req.StateNode = idx
	}

	if len(ar.combat) > 0 {
		entries := make([]logicgraph.CombatEntry, len(ar.combat))
		for i, ce := range ar.combat {
			if ce.enemyName == "EnergyRefill" {
				entries[i] = logicgraph.CombatEntry{Enemy: logicgraph.Refill(float64(ce.count)), Count: 1}
				continue
			}
			enemy, ok := enemyByName(ce.enemyName)
			if !ok {
				return logicgraph.Requirement{}, fmt.Errorf("unknown enemy %q", ce.enemyName)
			}
			entries[i] = logicgraph.CombatEntry{Enemy: enemy, Count: ce.count}
		}
		req.Combat = entries
	}

	if len(ar.children) > 0 {
		children := make([]logicgraph.Requirement, len(ar.children))
		for i, c := range ar.children {
			child, err := resolveReq(g, c)
			if err != nil {
				return logicgraph.Requirement{}, err
			}
			children[i] = child
		}
		req.Children = children
	}

	return req, nil
}

var namedEnemies = map[string]logicgraph.Enemy{
	"Mantis":   logicgraph.EnemyMantis,
	"Bat":      logicgraph.EnemyBat,
	"Sandworm": logicgraph.EnemySandworm,
}

func enemyByName(name string) (logicgraph.Enemy, bool) {
	e, ok := namedEnemies[name]
	return e, ok
}
