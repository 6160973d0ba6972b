package simulate

import (
	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/uberstate"
)

// SnippetEvents is one compiled snippet's contribution to a Program: its
// event list plus the shared-subtree arena command.OpLookup nodes within it
// resolve through.
type SnippetEvents struct {
	Name   string
	Events []command.Event
	Lookup *command.Lookup
}

// Program is the flattened, globally-indexed event list a simulation runs
// against: every snippet's events concatenated in caller-supplied order
// (spec.md §5's "stable given a deterministic file-enumeration order by the
// external driver"), each event remembering which snippet's Lookup arena its
// command tree resolves command.OpLookup nodes against.
type Program struct {
	events  []command.Event
	lookups []*command.Lookup
}

// NewProgram concatenates snippets in the given order into one Program and
// registers every event's trigger with store's trigger index, so a
// subsequent Interpreter.Exec of a store-write command reports exactly the
// triggered event indices per spec.md §8's uber-state-trigger invariant.
func NewProgram(snippets []SnippetEvents, store *uberstate.Store) *Program {
	p := &Program{}
	for _, s := range snippets {
		for _, ev := range s.Events {
			p.events = append(p.events, ev)
			p.lookups = append(p.lookups, s.Lookup)
		}
	}
	for idx, ev := range p.events {
		registerEventTriggers(store, ev, idx)
	}
	return p
}

func registerEventTriggers(store *uberstate.Store, ev command.Event, idx int) {
	switch ev.Trigger.Kind {
	case command.TriggerBinding:
		store.RegisterTrigger(ev.Trigger.UberID, idx)
	case command.TriggerCondition:
		for _, id := range referencedUberStates(ev.Trigger.Condition) {
			store.RegisterTrigger(id, idx)
		}
	}
}

// referencedUberStates walks cmd's expression tree collecting every
// command.OpFetch uber-state identifier it mentions, so a Condition
// trigger's dependency set can be registered without the compiler having to
// track it separately.
func referencedUberStates(cmd *command.Command) []uberstate.Identifier {
	if cmd == nil {
		return nil
	}
	var out []uberstate.Identifier
	if cmd.Op == command.OpFetch {
		out = append(out, cmd.UberID)
	}
	for _, child := range cmd.Children {
		out = append(out, referencedUberStates(child)...)
	}
	return out
}

// Len returns the number of events in the program.
func (p *Program) Len() int { return len(p.events) }

// Event returns the event at idx.
func (p *Program) Event(idx int) command.Event { return p.events[idx] }
