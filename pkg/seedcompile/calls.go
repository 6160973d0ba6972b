package seedcompile

import (
	"fmt"
	"strings"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/seedlang"
	"github.com/oriwisp/seedgen/pkg/uberstate"
)

// lowerPlaceholderCall recognizes `!zone_of(ident, item)`, `!item_on(ident,
// trigger)`, and `!count_in_zone("zone", "item", ...)` — parsed as a Unary
// "!" wrapping a Call, since the grammar has no separate placeholder
// syntax — and captures a Placeholder the caller resolves later.
// count_in_zone takes a literal zone string followed by literal item
// strings; an `ident = zone` binding form is not accepted. handled is
// false for any other call, so the caller falls through to ordinary unary
// "!" (boolean not).
func (lc *loweringCtx) lowerPlaceholderCall(call *seedlang.Call) (cmd *command.Command, handled bool, err error) {
	switch call.Name {
	case "zone_of", "item_on":
		if len(call.Args) != 2 {
			return nil, true, fmt.Errorf("seedcompile: %s: %s requires (ident, arg)", atLine(call.Line), call.Name)
		}
		ident, ok := identArg(call.Args, 0)
		if !ok {
			return nil, true, fmt.Errorf("seedcompile: %s: %s: first argument must be an identifier", atLine(call.Line), call.Name)
		}
		node := command.Constant(command.TypeString)
		kind := PlaceholderZoneOf
		if call.Name == "item_on" {
			kind = PlaceholderItemOn
		}
		lc.c.placeholders = append(lc.c.placeholders, &Placeholder{Kind: kind, Node: node, Ident: ident})
		return node, true, nil
	case "count_in_zone":
		if len(call.Args) < 2 {
			return nil, true, fmt.Errorf("seedcompile: %s: count_in_zone requires (zone, items...)", atLine(call.Line))
		}
		zone, ok := literalStringArg(call.Args, 0)
		if !ok {
			return nil, true, fmt.Errorf("seedcompile: %s: count_in_zone: zone must be a literal string", atLine(call.Line))
		}
		var items []string
		for _, a := range call.Args[1:] {
			s, ok := a.(*seedlang.LitString)
			if !ok {
				return nil, true, fmt.Errorf("seedcompile: %s: count_in_zone: items must be literal strings", atLine(call.Line))
			}
			items = append(items, s.Value)
		}
		node := command.Constant(command.TypeInteger)
		lc.c.placeholders = append(lc.c.placeholders, &Placeholder{Kind: PlaceholderCountInZone, Node: node, Zone: zone, Items: items})
		return node, true, nil
	default:
		return nil, false, nil
	}
}

// resolveUberIdent resolves an expression used as an UberIdentifier
// argument (get_<t>, fetch, store, server_sync, ...): either a bare 6|2000
// literal or an identifier bound by !state/!timer.
func (lc *loweringCtx) resolveUberIdent(expr seedlang.Expr) (uberstate.Identifier, error) {
	switch e := expr.(type) {
	case *seedlang.LitUberIdent:
		return uberstate.Identifier{Group: e.Group, Member: e.Member}, nil
	case *seedlang.Ident:
		lit, ok := lc.sc.sharedLiteral(e.Name)
		if !ok || !lit.IsUberIdent {
			return uberstate.Identifier{}, fmt.Errorf("%q is not an UberIdentifier", e.Name)
		}
		return lit.UberID, nil
	default:
		return uberstate.Identifier{}, fmt.Errorf("expected an UberIdentifier literal or !state/!timer-bound identifier")
	}
}

// lowerExprCall lowers a function call used as a value: fetch, get_<t>,
// to_<t>, current_zone, or a bare reference to a value-returning builtin.
func (lc *loweringCtx) lowerExprCall(call *seedlang.Call) (*command.Command, error) {
	if suffix, ok := prefixedReturnType(call.Name); ok {
		t, err := suffixType(suffix)
		if err != nil {
			return nil, fmt.Errorf("seedcompile: %s: %w", atLine(call.Line), err)
		}
		if len(call.Args) != 1 {
			return nil, fmt.Errorf("seedcompile: %s: %s requires exactly one argument", atLine(call.Line), call.Name)
		}
		if strings.HasPrefix(call.Name, "get_") {
			id, err := lc.resolveUberIdent(call.Args[0])
			if err != nil {
				return nil, fmt.Errorf("seedcompile: %s: %s: %w", atLine(call.Line), call.Name, err)
			}
			return command.Fetch(t, id), nil
		}
		value, err := lc.lowerExpr(call.Args[0])
		if err != nil {
			return nil, err
		}
		return &command.Command{Type: t, Op: command.OpToType, Children: []*command.Command{value}}, nil
	}

	switch call.Name {
	case "fetch":
		if len(call.Args) != 1 {
			return nil, fmt.Errorf("seedcompile: %s: fetch requires exactly one argument", atLine(call.Line))
		}
		id, err := lc.resolveUberIdent(call.Args[0])
		if err != nil {
			return nil, fmt.Errorf("seedcompile: %s: fetch: %w", atLine(call.Line), err)
		}
		return command.Fetch(command.TypeFloat, id), nil
	case "current_zone":
		return command.Fetch(command.TypeZone, uberstate.Identifier{Group: command.CurrentZoneGroup, Member: 0}), nil
	default:
		return nil, fmt.Errorf("seedcompile: %s: %q does not produce a value", atLine(call.Line), call.Name)
	}
}

// lowerVoidBuiltin lowers a function call used as a statement: messages,
// state stores, slot setters, game actions, server sync, warp-icon CRUD,
// shop/wheel item data, and item-grant helpers (with their remove_ inverses).
func (lc *loweringCtx) lowerVoidBuiltin(name string, rawArgs []seedlang.Expr, line int) (*command.Command, error) {
	args, err := lc.lowerExprs(rawArgs)
	if err != nil {
		return nil, err
	}

	if kind, remove, ok := isGrantHelper(name); ok {
		op := command.OpGrantItem
		if remove {
			op = command.OpRemoveItem
		}
		children := append([]*command.Command{command.ConstantString(kind)}, args...)
		return command.Void(op, children...), nil
	}

	if suffix, ok := isSetBuiltin(name); ok {
		t, err := suffixType(suffix)
		if err != nil {
			return nil, fmt.Errorf("seedcompile: %s: %w", atLine(line), err)
		}
		if len(rawArgs) != 2 {
			return nil, fmt.Errorf("seedcompile: %s: %s requires (slot, value)", atLine(line), name)
		}
		slotLit, ok := rawArgs[0].(*seedlang.LitInt)
		if !ok {
			return nil, fmt.Errorf("seedcompile: %s: %s: slot must be an integer literal", atLine(line), name)
		}
		_ = t
		return command.Void(command.OpSetSlot, command.ConstantInt(int32(slotLit.Value)), args[1]), nil
	}

	switch name {
	case "store", "store_without_triggers":
		if len(rawArgs) != 2 {
			return nil, fmt.Errorf("seedcompile: %s: %s requires (uber_id, value)", atLine(line), name)
		}
		id, err := lc.resolveUberIdent(rawArgs[0])
		if err != nil {
			return nil, fmt.Errorf("seedcompile: %s: %s: %w", atLine(line), name, err)
		}
		return command.StoreUberState(id, args[1], name == "store"), nil
	case "item_message", "priority_message":
		return command.Void(command.OpQueueMessage, args...), nil
	case "free_message":
		return command.Void(command.OpFreeMessage, args...), nil
	case "save":
		return command.Void(command.OpSave), nil
	case "checkpoint":
		return command.Void(command.OpCheckpoint), nil
	case "warp":
		return command.Void(command.OpWarp, args...), nil
	case "equip":
		return command.Void(command.OpEquip, args...), nil
	case "unequip":
		return command.Void(command.OpUnequip, args...), nil
	case "trigger_keybind":
		return command.Void(command.OpTriggerKeybind, args...), nil
	case "server_sync":
		if len(rawArgs) != 2 {
			return nil, fmt.Errorf("seedcompile: %s: server_sync requires (uber_id, enabled)", atLine(line))
		}
		id, err := lc.resolveUberIdent(rawArgs[0])
		if err != nil {
			return nil, fmt.Errorf("seedcompile: %s: server_sync: %w", atLine(line), err)
		}
		return command.Void(command.OpServerSync, command.Fetch(command.TypeInteger, id), args[1]), nil
	case "add_warp_icon":
		return command.Void(command.OpWarpIcon, append([]*command.Command{command.ConstantBool(true)}, args...)...), nil
	case "remove_warp_icon":
		return command.Void(command.OpWarpIcon, append([]*command.Command{command.ConstantBool(false)}, args...)...), nil
	case "set_shop_item_data":
		return command.Void(command.OpShopItemData, args...), nil
	case "set_wheel_item_data":
		return command.Void(command.OpWheelItemData, args...), nil
	default:
		return nil, fmt.Errorf("seedcompile: %s: unknown function %q", atLine(line), name)
	}
}

func (lc *loweringCtx) lowerExprs(exprs []seedlang.Expr) ([]*command.Command, error) {
	out := make([]*command.Command, len(exprs))
	for i, e := range exprs {
		cmd, err := lc.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = cmd
	}
	return out, nil
}
