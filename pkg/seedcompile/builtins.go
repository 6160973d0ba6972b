package seedcompile

import "strings"

// grantKinds enumerates the item-grant helper names spec.md §4.7 lists
// (spirit_light, gorlek_ore, skill, shard, …); each also has a `remove_`
// inverse lowered to OpRemoveItem instead of OpGrantItem.
var grantKinds = map[string]bool{
	"spirit_light":    true,
	"gorlek_ore":      true,
	"skill":           true,
	"shard":           true,
	"health_fragment": true,
	"energy_fragment": true,
	"keystone":        true,
	"mapstone":        true,
	"ore":             true,
	"teleporter":      true,
}

// voidBuiltins enumerates CommandVoid-producing call names that take no
// type-suffix and aren't item-grant helpers. The lowerer does not read this
// map; lowerVoidBuiltin's switch routes these calls to their Ops.
var voidBuiltins = map[string]bool{
	"item_message": true, "priority_message": true, "free_message": true,
	"store": true, "store_without_triggers": true,
	"save": true, "checkpoint": true, "warp": true,
	"equip": true, "unequip": true, "trigger_keybind": true,
	"server_sync": true, "add_warp_icon": true, "remove_warp_icon": true,
	"set_shop_item_data": true, "set_wheel_item_data": true,
}

func isGrantHelper(name string) (kind string, remove bool, ok bool) {
	if grantKinds[name] {
		return name, false, true
	}
	if strings.HasPrefix(name, "remove_") {
		base := strings.TrimPrefix(name, "remove_")
		if grantKinds[base] {
			return base, true, true
		}
	}
	return "", false, false
}

func prefixedReturnType(name string) (valueTypeName string, ok bool) {
	for _, prefix := range []string{"get_", "to_"} {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimPrefix(name, prefix), true
		}
	}
	return "", false
}

func isSetBuiltin(name string) (suffix string, ok bool) {
	if strings.HasPrefix(name, "set_") {
		suf := strings.TrimPrefix(name, "set_")
		if suf == "shop_item_data" || suf == "wheel_item_data" {
			return "", false // handled by lowerVoidBuiltin's switch, not a typed slot setter
		}
		return suf, true
	}
	return "", false
}
