// Package command implements the typed expression/effect tree the seed
// compiler lowers Seed DSL actions into, and the per-snippet event list the
// simulation interpreter executes against a world state.
package command

import "github.com/oriwisp/seedgen/pkg/uberstate"

// ValueType discriminates the Command<T> instantiations. Go has no
// first-class generics-over-interface dispatch convenient for a tagged
// arena like this one, so Command carries its own type tag the way the
// teacher's embedding package tags its Pose/Rect variants by field
// presence rather than by a type parameter.
type ValueType int

const (
	TypeBoolean ValueType = iota
	TypeInteger
	TypeFloat
	TypeString
	TypeZone
	TypeVoid
)

// Op discriminates the operation a Command node performs. Only the fields
// relevant to Op and Type are populated on a given Command.
type Op int

const (
	OpConstant Op = iota
	OpMulti           // side effects in Children[:len-1], value = Children[len-1]
	OpArithmetic      // Add/Sub/Mul/Div per Arith
	OpCompare         // ==, !=, <=, <, >=, > per Cmp
	OpAnd
	OpOr
	OpFetch // Fetch<T>(uber_id)
	OpGet   // Get<T>(slot_id)
	OpToType

	// CommandVoid-only ops.
	OpLookup // invoke a shared action by index into the arena
	OpIf
	OpStoreUberState
	OpStoreUberStateWithoutTriggers
	OpSetSlot
	OpQueueMessage
	OpFreeMessage
	OpWarpIcon
	OpShopItemData
	OpWheelItemData
	OpSave
	OpCheckpoint
	OpWarp
	OpEquip
	OpUnequip
	OpTriggerKeybind
	OpServerSync
	OpGrantItem
	OpRemoveItem
)

type Arith int

const (
	ArithAdd Arith = iota
	ArithSub
	ArithMul
	ArithDiv
)

type Cmp int

const (
	CmpEq Cmp = iota
	CmpNe
	CmpLe
	CmpLt
	CmpGe
	CmpGt
)

// Command is one node of the typed expression/effect forest. Type is
// TypeVoid for effect nodes (CommandVoid in spec terms); any other Type
// marks an expression node (CommandBoolean/Integer/Float/String/Zone).
type Command struct {
	Type ValueType
	Op   Op

	// OpConstant payload, one field meaningful per Type.
	ConstBool   bool
	ConstInt    int32
	ConstFloat  float32
	ConstString string

	Arith Arith
	Cmp   Cmp

	UberID   uberstate.Identifier // OpFetch, OpStoreUberState*
	SlotID   int                  // OpGet, OpSetSlot
	LookupID int                  // OpLookup: index into an arena's command_lookup table

	// Children holds operands: two for arithmetic/compare/and/or, N for
	// Multi (all but the last are executed for side effects only), one for
	// If's condition followed by its guarded command, etc. The exact arity
	// is determined by Op.
	Children []*Command
}

func Constant(t ValueType) *Command { return &Command{Type: t, Op: OpConstant} }

func ConstantBool(b bool) *Command {
	c := Constant(TypeBoolean)
	c.ConstBool = b
	return c
}

func ConstantInt(i int32) *Command {
	c := Constant(TypeInteger)
	c.ConstInt = i
	return c
}

func ConstantFloat(f float32) *Command {
	c := Constant(TypeFloat)
	c.ConstFloat = f
	return c
}

func ConstantString(s string) *Command {
	c := Constant(TypeString)
	c.ConstString = s
	return c
}

// Multi builds a Multi node: every command in effects runs in order purely
// for its side effects, then value (which may be TypeVoid) is the node's
// own value.
func Multi(effects []*Command, value *Command) *Command {
	return &Command{Type: value.Type, Op: OpMulti, Children: append(append([]*Command{}, effects...), value)}
}

func Arithmetic(t ValueType, op Arith, lhs, rhs *Command) *Command {
	return &Command{Type: t, Op: OpArithmetic, Arith: op, Children: []*Command{lhs, rhs}}
}

func Compare(op Cmp, lhs, rhs *Command) *Command {
	return &Command{Type: TypeBoolean, Op: OpCompare, Cmp: op, Children: []*Command{lhs, rhs}}
}

func And(lhs, rhs *Command) *Command {
	return &Command{Type: TypeBoolean, Op: OpAnd, Children: []*Command{lhs, rhs}}
}

func Or(lhs, rhs *Command) *Command {
	return &Command{Type: TypeBoolean, Op: OpOr, Children: []*Command{lhs, rhs}}
}

// CurrentZoneGroup is the reserved uber-state group the `current_zone`
// builtin fetches from; the placement driver keeps it in sync with the
// player's last-entered zone boundary.
const CurrentZoneGroup int32 = 8

func Fetch(t ValueType, id uberstate.Identifier) *Command {
	return &Command{Type: t, Op: OpFetch, UberID: id}
}

func Get(t ValueType, slot int) *Command {
	return &Command{Type: t, Op: OpGet, SlotID: slot}
}

// Void builds a CommandVoid effect node with the given op and children.
func Void(op Op, children ...*Command) *Command {
	return &Command{Type: TypeVoid, Op: op, Children: children}
}

func If(cond, then *Command) *Command {
	return &Command{Type: TypeVoid, Op: OpIf, Children: []*Command{cond, then}}
}

func StoreUberState(id uberstate.Identifier, value *Command, withTriggers bool) *Command {
	op := OpStoreUberStateWithoutTriggers
	if withTriggers {
		op = OpStoreUberState
	}
	return &Command{Type: TypeVoid, Op: op, UberID: id, Children: []*Command{value}}
}

func LookupRef(id int) *Command {
	return &Command{Type: TypeVoid, Op: OpLookup, LookupID: id}
}

// TriggerKind discriminates what causes an Event's Command to run.
type TriggerKind int

const (
	TriggerClientEvent TriggerKind = iota
	TriggerBinding
	TriggerCondition
)

// Trigger is spec.md's Trigger ∈ {ClientEvent, Binding(uber_id), Condition(cond)}.
type Trigger struct {
	Kind      TriggerKind
	EventName string               // TriggerClientEvent
	UberID    uberstate.Identifier // TriggerBinding
	Condition *Command             // TriggerCondition, Type == TypeBoolean
}

// Event pairs a trigger with the command that runs when it fires.
type Event struct {
	Trigger Trigger
	Command *Command
}

// Lookup is the shared-subtree arena spec.md's Design Notes call for:
// callbacks, wheel-item actions, and repeated fragments are stored once and
// referenced by index from multiple Events or OpLookup nodes.
type Lookup struct {
	entries []*Command
}

// Add appends cmd to the arena and returns its index.
func (l *Lookup) Add(cmd *Command) int {
	l.entries = append(l.entries, cmd)
	return len(l.entries) - 1
}

// Get returns the command stored at index.
func (l *Lookup) Get(index int) *Command {
	return l.entries[index]
}

func (l *Lookup) Len() int { return len(l.entries) }

// Entries returns the arena's backing slice, in index order, for callers
// that need to serialize or walk every shared subtree (e.g. JSON export).
func (l *Lookup) Entries() []*Command { return l.entries }
