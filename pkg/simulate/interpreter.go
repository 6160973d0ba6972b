package simulate

import "github.com/oriwisp/seedgen/pkg/command"

// Interpreter executes a Program's command trees against a World, one
// goroutine, start to finish, per spec.md §5's single-threaded engine
// requirement.
type Interpreter struct {
	World   *World
	Program *Program

	currentLookup *command.Lookup
}

// NewInterpreter returns an Interpreter ready to dispatch events from
// program against world.
func NewInterpreter(world *World, program *Program) *Interpreter {
	return &Interpreter{World: world, Program: program}
}

// DispatchClientEvent runs the command of every event bound to the named
// client event, in program declaration order, satisfying spec.md §8's
// event-ordering-stability invariant.
func (in *Interpreter) DispatchClientEvent(name string) {
	for idx := 0; idx < in.Program.Len(); idx++ {
		ev := in.Program.Event(idx)
		if ev.Trigger.Kind == command.TriggerClientEvent && ev.Trigger.EventName == name {
			in.runEvent(idx)
		}
	}
}

func (in *Interpreter) runEvent(idx int) {
	ev := in.Program.Event(idx)
	in.currentLookup = in.Program.lookups[idx]
	in.Exec(ev.Command)
}

// runTriggered implements spec.md §4.8's batch-ordering rule: every
// triggered event's condition is evaluated against the store as it stood
// right after the write that triggered the batch, before any of their
// commands run, so a later event in the batch can never observe an earlier
// event's side effects and decide differently than it would have if they'd
// all been snapshotted simultaneously.
func (in *Interpreter) runTriggered(indices []int) {
	run := make([]bool, len(indices))
	for i, idx := range indices {
		ev := in.Program.Event(idx)
		switch ev.Trigger.Kind {
		case command.TriggerBinding:
			run[i] = true
		case command.TriggerCondition:
			in.currentLookup = in.Program.lookups[idx]
			run[i] = in.EvalBool(ev.Trigger.Condition)
		}
	}
	for i, idx := range indices {
		if run[i] {
			in.runEvent(idx)
		}
	}
}

// Eval evaluates an expression node (Type != TypeVoid) to its runtime Value.
func (in *Interpreter) Eval(cmd *command.Command) Value {
	switch cmd.Op {
	case command.OpConstant:
		return in.evalConstant(cmd)
	case command.OpMulti:
		for _, effect := range cmd.Children[:len(cmd.Children)-1] {
			in.Exec(effect)
		}
		return in.Eval(cmd.Children[len(cmd.Children)-1])
	case command.OpArithmetic:
		lhs := in.Eval(cmd.Children[0])
		rhs := in.Eval(cmd.Children[1])
		return arithmetic(cmd.Type, cmd.Arith, lhs, rhs)
	case command.OpCompare:
		lhs := in.Eval(cmd.Children[0])
		rhs := in.Eval(cmd.Children[1])
		return BoolValue(compare(cmd.Cmp, lhs, rhs))
	case command.OpAnd:
		return BoolValue(in.EvalBool(cmd.Children[0]) && in.EvalBool(cmd.Children[1]))
	case command.OpOr:
		return BoolValue(in.EvalBool(cmd.Children[0]) || in.EvalBool(cmd.Children[1]))
	case command.OpFetch:
		if cmd.UberID.Group == command.CurrentZoneGroup {
			return ZoneValue(in.World.Zone())
		}
		if v, ok := in.World.Store.Get(cmd.UberID); ok {
			return fromUberValue(v)
		}
		return zeroValue(cmd.Type)
	case command.OpGet:
		return in.World.Slot(cmd.SlotID, cmd.Type)
	case command.OpToType:
		return convert(in.Eval(cmd.Children[0]), cmd.Type)
	default:
		return zeroValue(cmd.Type)
	}
}

// EvalBool evaluates a boolean expression, coercing through convert if the
// node somehow carries a non-boolean type (it never should for well-formed
// trees, but this keeps the interpreter total).
func (in *Interpreter) EvalBool(cmd *command.Command) bool {
	v := in.Eval(cmd)
	if v.Kind != command.TypeBoolean {
		v = convert(v, command.TypeBoolean)
	}
	return v.Bool
}

func (in *Interpreter) evalConstant(cmd *command.Command) Value {
	switch cmd.Type {
	case command.TypeBoolean:
		return BoolValue(cmd.ConstBool)
	case command.TypeInteger:
		return IntValue(cmd.ConstInt)
	case command.TypeFloat:
		return FloatValue(cmd.ConstFloat)
	case command.TypeZone:
		return ZoneValue(cmd.ConstString)
	default:
		return StringValue(cmd.ConstString)
	}
}

// Exec runs a void-effect node for its side effects.
func (in *Interpreter) Exec(cmd *command.Command) {
	switch cmd.Op {
	case command.OpMulti:
		for _, child := range cmd.Children {
			in.Exec(child)
		}
	case command.OpLookup:
		in.Exec(in.currentLookup.Get(cmd.LookupID))
	case command.OpIf:
		if in.EvalBool(cmd.Children[0]) {
			in.Exec(cmd.Children[1])
		}
	case command.OpStoreUberState:
		value := in.Eval(cmd.Children[0])
		triggered := in.World.StoreUberState(cmd.UberID, toUberValue(value), true)
		in.runTriggered(triggered)
	case command.OpStoreUberStateWithoutTriggers:
		value := in.Eval(cmd.Children[0])
		in.World.StoreUberState(cmd.UberID, toUberValue(value), false)
	case command.OpSetSlot:
		in.World.SetSlot(int(cmd.Children[0].ConstInt), in.Eval(cmd.Children[1]))
	case command.OpQueueMessage:
		in.execQueueMessage(cmd)
	case command.OpFreeMessage:
		in.execFreeMessage(cmd)
	case command.OpWarpIcon:
		in.execWarpIcon(cmd)
	case command.OpShopItemData:
		in.execItemFields(cmd, in.World.ShopItems)
	case command.OpWheelItemData:
		in.execItemFields(cmd, in.World.WheelItems)
	case command.OpSave:
		in.World.LastAction = "save"
	case command.OpCheckpoint:
		in.World.LastAction = "checkpoint"
	case command.OpWarp:
		in.World.LastAction = "warp"
	case command.OpEquip:
		in.execEquip(cmd, true)
	case command.OpUnequip:
		in.execEquip(cmd, false)
	case command.OpTriggerKeybind:
		if len(cmd.Children) > 0 {
			in.World.Keybinds = append(in.World.Keybinds, in.Eval(cmd.Children[0]).Int)
		}
	case command.OpServerSync:
		id := cmd.Children[0].UberID
		enabled := in.EvalBool(cmd.Children[1])
		in.World.ServerSync[id] = enabled
	case command.OpGrantItem:
		in.execGrant(cmd, true)
	case command.OpRemoveItem:
		in.execGrant(cmd, false)
	}
}
