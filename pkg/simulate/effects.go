package simulate

import (
	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/inventory"
)

// execQueueMessage implements item_message/priority_message: every argument
// is evaluated and appended to a new queued Message keyed by an
// auto-incrementing id, since the compiled arguments carry positional text
// and formatting values rather than a caller-supplied id.
func (in *Interpreter) execQueueMessage(cmd *command.Command) {
	args := in.evalChildren(cmd.Children)
	msg := Message{Args: args}
	if len(args) > 0 && args[0].Kind == command.TypeString {
		msg.Text = args[0].String
	}
	id := in.World.nextMsgID
	in.World.nextMsgID++
	in.World.Messages[id] = msg
}

// execFreeMessage implements free_message: its first argument names the
// message id (as an integer) to tear down.
func (in *Interpreter) execFreeMessage(cmd *command.Command) {
	args := in.evalChildren(cmd.Children)
	if len(args) == 0 {
		return
	}
	delete(in.World.Messages, int(args[0].Int))
}

// execWarpIcon implements add_warp_icon/remove_warp_icon. Children[0] is a
// literal true/false flag the compiler attaches (see
// pkg/seedcompile/calls.go's lowerVoidBuiltin) distinguishing create from
// destroy; the remaining children are (id, x, y, label?).
func (in *Interpreter) execWarpIcon(cmd *command.Command) {
	if len(cmd.Children) == 0 {
		return
	}
	add := in.Eval(cmd.Children[0]).Bool
	rest := in.evalChildren(cmd.Children[1:])
	if len(rest) == 0 {
		return
	}
	id := int(rest[0].Int)
	if !add {
		delete(in.World.WarpIcons, id)
		return
	}
	icon := WarpIcon{}
	if len(rest) > 1 {
		icon.X = rest[1].Float
	}
	if len(rest) > 2 {
		icon.Y = rest[2].Float
	}
	if len(rest) > 3 {
		icon.Label = rest[3].String
	}
	in.World.WarpIcons[id] = icon
}

// execItemFields implements set_shop_item_data/set_wheel_item_data: the
// pointwise (id, field, value) triple the compiler lowers those calls to,
// per spec.md §4.7's !item_data semantics — a later partial update only
// overwrites the field it names.
func (in *Interpreter) execItemFields(cmd *command.Command, store map[int]ItemFields) {
	args := in.evalChildren(cmd.Children)
	if len(args) < 3 {
		return
	}
	id := int(args[0].Int)
	field := args[1].String
	fields, ok := store[id]
	if !ok {
		fields = make(ItemFields)
		store[id] = fields
	}
	fields[field] = args[2]
}

// execEquip implements equip/unequip: (slot, skill) for equip, (slot,) for
// unequip.
func (in *Interpreter) execEquip(cmd *command.Command, equip bool) {
	args := in.evalChildren(cmd.Children)
	if len(args) == 0 {
		return
	}
	slot := args[0].Int
	if !equip {
		delete(in.World.Equipped, slot)
		return
	}
	if len(args) < 2 {
		return
	}
	in.World.Equipped[slot] = args[1].Int
}

// execGrant implements the item-grant helpers and their remove_ inverses
// (spirit_light, gorlek_ore, skill, shard, health_fragment, energy_fragment,
// keystone, mapstone, ore, teleporter); Children[0] names the kind,
// Children[1:] are its arguments (an amount for stackables, an id for
// single-instance items).
func (in *Interpreter) execGrant(cmd *command.Command, grant bool) {
	if len(cmd.Children) == 0 {
		return
	}
	kind := cmd.Children[0].ConstString
	args := in.evalChildren(cmd.Children[1:])

	item, amount, ok := grantItem(kind, args)
	if !ok {
		return
	}
	if grant {
		in.World.Inventory.Grant(item, amount)
	} else {
		in.World.Inventory.Remove(item, amount)
	}
}

func grantItem(kind string, args []Value) (inventory.Item, uint32, bool) {
	amountOf := func(i int) uint32 {
		if i >= len(args) {
			return 1
		}
		return uint32(args[i].Int)
	}
	switch kind {
	case "spirit_light":
		return inventory.SpiritLightItem, amountOf(0), true
	case "gorlek_ore", "ore":
		return inventory.ResourceItem(inventory.GorlekOre), amountOf(0), true
	case "keystone", "mapstone":
		return inventory.ResourceItem(inventory.Keystone), amountOf(0), true
	case "health_fragment":
		return inventory.ResourceItem(inventory.HealthFragment), amountOf(0), true
	case "energy_fragment":
		return inventory.ResourceItem(inventory.EnergyFragment), amountOf(0), true
	case "skill":
		if len(args) == 0 {
			return inventory.Item{}, 0, false
		}
		return inventory.SkillItem(inventory.Skill(args[0].Int)), 1, true
	case "shard":
		if len(args) == 0 {
			return inventory.Item{}, 0, false
		}
		return inventory.ShardItem(inventory.Shard(args[0].Int)), 1, true
	case "teleporter":
		if len(args) == 0 {
			return inventory.Item{}, 0, false
		}
		return inventory.TeleporterItem(args[0].String), 1, true
	default:
		return inventory.Item{}, 0, false
	}
}

func (in *Interpreter) evalChildren(children []*command.Command) []Value {
	out := make([]Value, len(children))
	for i, child := range children {
		out[i] = in.Eval(child)
	}
	return out
}
