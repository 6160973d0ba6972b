package seedcompile

import (
	"github.com/google/uuid"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/seedlang"
)

// snippetNamespace is the fixed UUID namespace every snippet identity is
// derived from, so identical snippet names always produce the same
// deterministic UUID across runs and across processes.
var snippetNamespace = uuid.MustParse("6f1e0b1a-6b0a-4a5e-9b0a-6c7b9d2f1a10")

func snippetUUID(name string) uuid.UUID {
	return uuid.NewSHA1(snippetNamespace, []byte(name))
}

// snippetState tracks spec.md §4.7's three-state preprocessing machine:
// collected, compiling, compiled.
type snippetState int

const (
	stateCollected snippetState = iota
	stateCompiling
	stateCompiled
)

// snippetCompile is one snippet's in-progress or finished compile record.
type snippetCompile struct {
	name string
	uuid uuid.UUID

	funcs  map[string]*seedlang.FunDecl
	shared map[string]Literal

	events []command.Event
	lookup *command.Lookup

	// callbacks maps a !callback(ident) name to the Lookup index of its
	// reserved Multi slot; !on_callback(snippet, ident, action) appends to
	// that slot's children on the owning snippet.
	callbacks map[string]int
}

func newSnippetCompile(name string) *snippetCompile {
	return &snippetCompile{
		name:      name,
		uuid:      snippetUUID(name),
		funcs:     make(map[string]*seedlang.FunDecl),
		shared:    make(map[string]Literal),
		lookup:    &command.Lookup{},
		callbacks: make(map[string]int),
	}
}

func (s *snippetCompile) function(name string) (*seedlang.FunDecl, bool) {
	f, ok := s.funcs[name]
	return f, ok
}

func (s *snippetCompile) sharedLiteral(name string) (Literal, bool) {
	l, ok := s.shared[name]
	return l, ok
}

// CompiledSnippet is one finished snippet's externally visible output.
type CompiledSnippet struct {
	Name   string
	UUID   uuid.UUID
	Events []command.Event
	Lookup *command.Lookup
}
