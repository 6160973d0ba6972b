package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/export"
	"github.com/oriwisp/seedgen/pkg/inventory"
	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/logiclang"
	"github.com/oriwisp/seedgen/pkg/orbs"
	"github.com/oriwisp/seedgen/pkg/rng"
	"github.com/oriwisp/seedgen/pkg/seedcompile"
	"github.com/oriwisp/seedgen/pkg/simulate"
	"github.com/oriwisp/seedgen/pkg/uberstate"
	"github.com/oriwisp/seedgen/pkg/worldsettings"
)

// pipelineInputs gathers the file paths cmd/seedgen's subcommands need
// beyond the universe settings preset itself: spec.md §6 names the logic
// DSL file and the seed DSL snippet directory as separate external
// interfaces, not part of the settings preset's own schema.
type pipelineInputs struct {
	UniversePath string
	AreasPath    string
	SnippetsDir  string
	EntrySnippet string
}

// worldResult bundles one world's compiled graph, program, and simulated
// world state, everything a visualize/export-json/compile subcommand needs
// to render its output.
type worldResult struct {
	WorldIndex int
	Settings   *worldsettings.WorldSettings
	Graph      *logicgraph.Graph
	Result     *seedcompile.Result
	Program    *simulate.Program
	World      *simulate.World
	Interp     *simulate.Interpreter
	Spawn      int
	Reached    []int
}

// masterSeedFrom derives a uint64 RNG seed from the universe's settings
// hash, the same digest-truncation pkg/rng.NewRNG's own doc comment
// describes for deriving a stage seed from a master seed.
func masterSeedFrom(u *worldsettings.Universe) (uint64, error) {
	digest, err := u.Hash()
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(digest[:8]), nil
}

// runPipeline parses the logic graph once, then compiles and simulates the
// seed DSL snippets for every world in the universe, in declaration order.
func runPipeline(in pipelineInputs) (*worldsettings.Universe, []*worldResult, error) {
	universe, err := worldsettings.LoadUniverse(in.UniversePath)
	if err != nil {
		return nil, nil, err
	}

	masterSeed, err := masterSeedFrom(universe)
	if err != nil {
		return nil, nil, fmt.Errorf("seedgen: deriving master seed: %w", err)
	}

	areasSrc, err := os.ReadFile(in.AreasPath)
	if err != nil {
		return nil, nil, fmt.Errorf("seedgen: read %s: %w", in.AreasPath, err)
	}
	anchors, err := logiclang.ParseAreas(string(areasSrc))
	if err != nil {
		return nil, nil, fmt.Errorf("seedgen: parse %s: %w", in.AreasPath, err)
	}

	loader := seedcompile.DirLoader{Root: in.SnippetsDir}

	results := make([]*worldResult, len(universe.WorldSettings))
	for i, ws := range universe.WorldSettings {
		doorRNG := rng.NewRNG(masterSeed, fmt.Sprintf("doors-%d", i), nil)
		graph, err := logiclang.Build(anchors, logiclang.BuildOptions{DoorLoopSize: ws.RandomizeDoors}, doorRNG)
		if err != nil {
			return nil, nil, fmt.Errorf("seedgen: world %d: building logic graph: %w", i, err)
		}

		if len(ws.Snippets) == 0 {
			results[i] = &worldResult{WorldIndex: i, Settings: ws, Graph: graph}
			continue
		}
		entry := in.EntrySnippet
		if entry == "" {
			entry = ws.Snippets[0]
		}
		compiled, err := seedcompile.Compile(loader, entry, masterSeed+uint64(i))
		if err != nil {
			return nil, nil, fmt.Errorf("seedgen: world %d: compiling snippets: %w", i, err)
		}

		store := uberstate.NewStore()
		snippetEvents := make([]simulate.SnippetEvents, 0, len(compiled.Snippets))
		for name, cs := range compiled.Snippets {
			snippetEvents = append(snippetEvents, simulate.SnippetEvents{Name: name, Events: cs.Events, Lookup: cs.Lookup})
		}
		program := simulate.NewProgram(snippetEvents, store)

		inv := inventory.New()
		world := simulate.NewWorld(inv, ws, store)

		spawn := 0
		if ws.Spawn.Kind == worldsettings.SpawnSet {
			if idx := graph.IndexOf(ws.Spawn.Anchor); idx >= 0 {
				spawn = idx
			}
		}
		ctx := &logicgraph.Context{
			Inventory:     inv,
			Settings:      ws,
			HasReached:    graph.HasReached,
			NodeUberState: graph.NodeUberState,
		}
		// Every uber-state write the interpreter makes re-runs reachability,
		// the wiring World.OnUberStateChange's doc comment reserves for a
		// caller that wants pkg/logicgraph kept in sync without pkg/simulate
		// importing it back.
		world.OnUberStateChange = func(uberstate.Identifier) {
			logicgraph.UpdateReached(ctx, graph, spawn, orbs.Orbs{}, nil)
		}
		logicgraph.Reachability(ctx, graph, spawn, orbs.Orbs{})

		results[i] = &worldResult{
			WorldIndex: i,
			Settings:   ws,
			Graph:      graph,
			Result:     compiled,
			Program:    program,
			World:      world,
			Interp:     simulate.NewInterpreter(world, program),
			Spawn:      spawn,
			Reached:    graph.Reachable(),
		}
	}

	return universe, results, nil
}

// writeArtifacts exports one world's compiled graph as JSON, and as an SVG
// if wantSVG is set, into dir/world-<n>.{json,svg}. The JSON carries the
// events and lookup arena of a single compiled snippet, whichever the
// Snippets map yields first; the other snippets are not exported.
func writeArtifacts(dir string, wr *worldResult, compact, wantSVG bool, svgOpts export.SVGOptions) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("seedgen: create output dir: %w", err)
	}

	var events []command.Event
	var lookup *command.Lookup
	snippetName := ""
	if wr.Result != nil {
		for name, cs := range wr.Result.Snippets {
			events = append(events, cs.Events...)
			lookup = cs.Lookup
			snippetName = name
			break // one arena per exported artifact
		}
	}
	artifact := export.NewArtifact(wr.Graph, events, lookup, snippetName)

	jsonPath := filepath.Join(dir, fmt.Sprintf("world-%d.json", wr.WorldIndex))
	save := export.SaveJSONToFile
	if compact {
		save = export.SaveJSONCompactToFile
	}
	if err := save(artifact, jsonPath); err != nil {
		return err
	}

	if wantSVG {
		if err := writeSVG(dir, wr, svgOpts); err != nil {
			return err
		}
	}
	return nil
}
