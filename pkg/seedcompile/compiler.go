package seedcompile

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/rng"
	"github.com/oriwisp/seedgen/pkg/seedlang"
	"github.com/oriwisp/seedgen/pkg/uberstate"
)

// Compiler holds every piece of state shared across the full !include tree
// of a compile: snippet state tracking, the reserved-range allocator,
// published !share values, item data, preplacements, and captured
// late-bound placeholders.
type Compiler struct {
	loader     FileLoader
	masterSeed uint64

	alloc *uberstate.Allocator

	state    map[string]snippetState
	snippets map[string]*snippetCompile
	parsed   map[string]*seedlang.Snippet

	// shared publishes a (snippet, ident) -> Literal mapping populated by
	// !share and consulted by !use.
	shared map[string]map[string]Literal

	itemData      map[string]*ItemData
	preplacements []Preplacement
	placeholders  []*Placeholder

	randomPools map[string][]Literal // per-snippet-qualified pool id -> values
}

// Result is the output of a full compile: every snippet reached from the
// entry point (via !include), plus the accumulated item data,
// preplacements, and captured placeholders (left unresolved until
// ResolvePlaceholders is called).
type Result struct {
	Snippets      map[string]*CompiledSnippet
	ItemData      map[string]*ItemData
	Preplacements []Preplacement
	Placeholders  []*Placeholder
}

// Compile runs the full three-stage compile starting from the entry
// snippet, recursively resolving !include, and returns every compiled
// snippet plus the engine-wide item data/preplacement/placeholder output.
// Placeholders are left unresolved (ResolvePlaceholders runs later, once
// the external placer has decided where every item landed).
func Compile(loader FileLoader, entry string, masterSeed uint64) (*Result, error) {
	c := &Compiler{
		loader:      loader,
		masterSeed:  masterSeed,
		alloc:       uberstate.NewAllocator(),
		state:       make(map[string]snippetState),
		snippets:    make(map[string]*snippetCompile),
		parsed:      make(map[string]*seedlang.Snippet),
		shared:      make(map[string]map[string]Literal),
		itemData:    make(map[string]*ItemData),
		randomPools: make(map[string][]Literal),
	}

	if _, err := c.compileSnippet(entry); err != nil {
		return nil, err
	}

	out := &Result{
		Snippets:      make(map[string]*CompiledSnippet, len(c.snippets)),
		ItemData:      c.itemData,
		Preplacements: c.preplacements,
		Placeholders:  c.placeholders,
	}
	for name, sc := range c.snippets {
		out.Snippets[name] = &CompiledSnippet{Name: name, UUID: sc.uuid, Events: sc.events, Lookup: sc.lookup}
	}
	return out, nil
}

// parseSnippet returns the cached parse for name, loading and parsing it
// synchronously if nothing has primed the cache yet (the common case for an
// entry point, or a !use target never reached by a concurrent !include
// batch).
func (c *Compiler) parseSnippet(name string) (*seedlang.Snippet, error) {
	if snip, ok := c.parsed[name]; ok {
		return snip, nil
	}
	src, err := c.loader.ReadSnippet(name)
	if err != nil {
		return nil, err
	}
	snip, err := seedlang.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("seedcompile: %s: %w", name, err)
	}
	c.parsed[name] = snip
	return snip, nil
}

// preloadIncludes parses every named snippet concurrently via errgroup,
// since parsing one file to an AST touches no shared mutable state; the
// results are merged back onto the calling goroutine before any semantic
// compiling happens, so this never violates the engine's single-threaded
// evaluation model.
func (c *Compiler) preloadIncludes(names []string) error {
	var need []string
	for _, name := range names {
		if _, ok := c.parsed[name]; !ok {
			need = append(need, name)
		}
	}
	if len(need) == 0 {
		return nil
	}

	var g errgroup.Group
	var mu sync.Mutex
	parsed := make(map[string]*seedlang.Snippet, len(need))
	for _, name := range need {
		name := name
		g.Go(func() error {
			src, err := c.loader.ReadSnippet(name)
			if err != nil {
				return err
			}
			snip, err := seedlang.Parse(src)
			if err != nil {
				return fmt.Errorf("seedcompile: %s: %w", name, err)
			}
			mu.Lock()
			parsed[name] = snip
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for name, snip := range parsed {
		c.parsed[name] = snip
	}
	return nil
}

// compileSnippet compiles name if it hasn't been started, returns the
// cached (possibly still-compiling) record if called reentrantly — a
// cyclic !include's second entry is a no-op per spec.md §4.7, not an error.
func (c *Compiler) compileSnippet(name string) (*snippetCompile, error) {
	switch c.state[name] {
	case stateCompiling, stateCompiled:
		return c.snippets[name], nil
	}
	c.state[name] = stateCompiling

	snip, err := c.parseSnippet(name)
	if err != nil {
		return nil, err
	}

	sc := newSnippetCompile(name)
	c.snippets[name] = sc

	// Stage 1 (preprocess): collect every `fun` up front so forward
	// references resolve, and preload every top-level !include's AST
	// concurrently before any of them actually compile.
	var includeNames []string
	for _, content := range snip.Contents {
		switch item := content.(type) {
		case *seedlang.FunDecl:
			sc.funcs[item.Name] = item
		case *seedlang.CommandDirective:
			if item.Name == "include" {
				if name, ok := literalStringArg(item.Args, 0); ok {
					includeNames = append(includeNames, name)
				}
			}
		}
	}
	if err := c.preloadIncludes(includeNames); err != nil {
		return nil, err
	}

	// Stage 2+3 (type inference + lowering), one top-level Content at a time
	// in source order, so directive ordering (!state before its first use,
	// !share before !use, ...) behaves the way a reader expects.
	for _, content := range snip.Contents {
		if err := c.compileContent(sc, content); err != nil {
			return nil, err
		}
	}

	c.state[name] = stateCompiled
	return sc, nil
}

func (c *Compiler) compileContent(sc *snippetCompile, content seedlang.Content) error {
	switch item := content.(type) {
	case *seedlang.FunDecl:
		return nil // already collected in stage 1
	case *seedlang.Annotation:
		return nil // metadata only, no lowering target
	case *seedlang.OnDecl:
		return c.compileOnDecl(sc, item)
	case *seedlang.CommandDirective:
		return c.compileDirective(sc, item)
	default:
		return fmt.Errorf("seedcompile: unhandled content %T", content)
	}
}

func (c *Compiler) compileOnDecl(sc *snippetCompile, decl *seedlang.OnDecl) error {
	lc := newLoweringCtx(c, sc)
	trig, err := lc.lowerTrigger(decl.Trigger)
	if err != nil {
		return fmt.Errorf("seedcompile: %s: on: %w", atLine(decl.Line), err)
	}
	var actions []seedlang.Action
	if block, ok := decl.Action.(*seedlang.BlockAction); ok {
		actions = block.Actions
	} else {
		actions = []seedlang.Action{decl.Action}
	}
	cmd, err := lc.lowerActionSequence(actions)
	if err != nil {
		return fmt.Errorf("seedcompile: %s: on: %w", atLine(decl.Line), err)
	}
	sc.events = append(sc.events, command.Event{Trigger: trig, Command: cmd})
	return nil
}

// poolRNG derives a deterministic RNG for a named compile-time random
// source, scoped to the owning snippet so identical pool ids in different
// snippets never collide.
func (c *Compiler) poolRNG(sc *snippetCompile, id string) *rng.RNG {
	return rng.NewRNG(c.masterSeed, sc.name+"::"+id, nil)
}

func literalStringArg(args []seedlang.Expr, idx int) (string, bool) {
	if idx >= len(args) {
		return "", false
	}
	lit, ok := args[idx].(*seedlang.LitString)
	if !ok {
		return "", false
	}
	return lit.Value, true
}
