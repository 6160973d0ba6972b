// Package uberstate implements the typed key-value store that backs every
// persistent game flag and counter, plus the trigger index that lets the
// simulation interpreter find which events need re-evaluating when a value
// changes.
package uberstate

import (
	"fmt"
	"sort"
)

// Identifier names a single uber-state slot within the game's (group,
// member) namespace.
type Identifier struct {
	Group  int32
	Member int32
}

func (id Identifier) String() string {
	return fmt.Sprintf("%d|%d", id.Group, id.Member)
}

// ValueKind discriminates the three value types an uber-state can hold.
type ValueKind int

const (
	KindBool ValueKind = iota
	KindInt
	KindFloat
)

// Value is a typed uber-state payload. Only the field matching Kind is
// meaningful.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   int32
	Float float32
}

func BoolValue(b bool) Value   { return Value{Kind: KindBool, Bool: b} }
func IntValue(i int32) Value   { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float32) Value { return Value{Kind: KindFloat, Float: f} }

// Store is a map from Identifier to Value with a trigger index: for every
// identifier, the set of event indices whose condition mentions it. Setting
// a value returns exactly those indices, in ascending order.
type Store struct {
	values   map[Identifier]Value
	triggers map[Identifier][]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		values:   make(map[Identifier]Value),
		triggers: make(map[Identifier][]int),
	}
}

// RegisterTrigger records that event index eventIdx's condition references
// id. Called once per (identifier, event) pair while compiling the event
// list, before any Set calls occur.
func (s *Store) RegisterTrigger(id Identifier, eventIdx int) {
	for _, existing := range s.triggers[id] {
		if existing == eventIdx {
			return
		}
	}
	s.triggers[id] = append(s.triggers[id], eventIdx)
}

// Get returns the current value of id and whether it has been set.
func (s *Store) Get(id Identifier) (Value, bool) {
	v, ok := s.values[id]
	return v, ok
}

// GetOrDefault returns the current value, or def if unset.
func (s *Store) GetOrDefault(id Identifier, def Value) Value {
	if v, ok := s.values[id]; ok {
		return v
	}
	return def
}

// Set writes value to id and returns the (sorted) indices of every event
// registered as depending on id, so the interpreter can re-check their
// conditions.
func (s *Store) Set(id Identifier, value Value) []int {
	s.values[id] = value
	triggered := s.triggers[id]
	out := make([]int, len(triggered))
	copy(out, triggered)
	sort.Ints(out)
	return out
}

// SetWithoutTriggers writes value to id without reporting dependent events,
// used by the seed compiler's `store_without_triggers` action.
func (s *Store) SetWithoutTriggers(id Identifier, value Value) {
	s.values[id] = value
}
