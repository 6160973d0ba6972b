package seedcompile

import (
	"fmt"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/seedlang"
	"github.com/oriwisp/seedgen/pkg/uberstate"
)

// compileDirective dispatches a top-level `!name(args) { body? }` to its
// handler. Unknown directive names are an error: spec.md §7 requires
// compile errors to be explicit, never silently ignored.
func (c *Compiler) compileDirective(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	switch dir.Name {
	case "include":
		return c.directiveInclude(sc, dir)
	case "share":
		return c.directiveShare(sc, dir)
	case "use":
		return c.directiveUse(sc, dir)
	case "callback":
		return c.directiveCallback(sc, dir)
	case "on_callback":
		return c.directiveOnCallback(sc, dir)
	case "if":
		return c.directiveIf(sc, dir)
	case "repeat":
		return c.directiveRepeat(sc, dir)
	case "random_integer":
		return c.directiveRandomIntFloat(sc, dir, true)
	case "random_float":
		return c.directiveRandomIntFloat(sc, dir, false)
	case "random_pool":
		return c.directiveRandomPool(sc, dir)
	case "random_from_pool":
		return c.directiveRandomFromPool(sc, dir)
	case "state":
		return c.directiveState(sc, dir)
	case "timer":
		return c.directiveTimer(sc, dir)
	case "item_data":
		return c.directiveItemData(sc, dir)
	case "preplace":
		return c.directivePreplace(sc, dir)
	default:
		return fmt.Errorf("seedcompile: %s: unknown directive !%s", atLine(dir.Line), dir.Name)
	}
}

func (c *Compiler) directiveInclude(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	name, ok := literalStringArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !include requires a literal snippet name", atLine(dir.Line))
	}
	_, err := c.compileSnippet(name)
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !include(%s): %w", atLine(dir.Line), name, err)
	}
	return nil
}

func (c *Compiler) directiveShare(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	ident, ok := identArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !share requires an identifier", atLine(dir.Line))
	}
	ns := c.shared[sc.name]
	if ns == nil {
		ns = make(map[string]Literal)
		c.shared[sc.name] = ns
	}
	if lit, ok := sc.sharedLiteral(ident); ok {
		ns[ident] = lit
		return nil
	}
	return fmt.Errorf("seedcompile: %s: !share(%s): %q is not a known literal in this snippet", atLine(dir.Line), ident, ident)
}

func (c *Compiler) directiveUse(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	owner, ok := literalStringArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !use requires a literal snippet name", atLine(dir.Line))
	}
	ident, ok := identArg(dir.Args, 1)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !use requires an identifier", atLine(dir.Line))
	}
	if _, err := c.compileSnippet(owner); err != nil {
		return fmt.Errorf("seedcompile: %s: !use(%s, %s): %w", atLine(dir.Line), owner, ident, err)
	}
	lit, ok := c.shared[owner][ident]
	if !ok {
		return fmt.Errorf("seedcompile: %s: !use(%s, %s): %s never !share'd %s", atLine(dir.Line), owner, ident, owner, ident)
	}
	sc.shared[ident] = lit
	return nil
}

func (c *Compiler) directiveCallback(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	ident, ok := identArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !callback requires an identifier", atLine(dir.Line))
	}
	slot := command.Void(command.OpMulti)
	idx := sc.lookup.Add(slot)
	sc.callbacks[ident] = idx
	return nil
}

func (c *Compiler) directiveOnCallback(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	owner, ok := literalStringArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !on_callback requires a literal snippet name", atLine(dir.Line))
	}
	ident, ok := identArg(dir.Args, 1)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !on_callback requires an identifier", atLine(dir.Line))
	}
	ownerSC, err := c.compileSnippet(owner)
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !on_callback(%s, %s): %w", atLine(dir.Line), owner, ident, err)
	}
	idx, ok := ownerSC.callbacks[ident]
	if !ok {
		return fmt.Errorf("seedcompile: %s: !on_callback(%s, %s): %s never declared !callback(%s)", atLine(dir.Line), owner, ident, owner, ident)
	}
	effects, err := c.lowerDirectiveBody(sc, dir.Body)
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !on_callback(%s, %s): %w", atLine(dir.Line), owner, ident, err)
	}
	slot := ownerSC.lookup.Get(idx)
	slot.Children = append(slot.Children, effects...)
	return nil
}

// lowerDirectiveBody lowers a directive's { ... } body — used by
// !on_callback; !if and !repeat bodies go through compileContentList
// instead — as an ordered action sequence. Each body
// Content must itself be a CommandDirective: the bang-prefixed call syntax
// doubles as an action statement in this position (the grammar has no
// separate bare-statement form).
func (c *Compiler) lowerDirectiveBody(sc *snippetCompile, body []seedlang.Content) ([]*command.Command, error) {
	lc := newLoweringCtx(c, sc)
	var out []*command.Command
	for _, item := range body {
		switch node := item.(type) {
		case *seedlang.CommandDirective:
			if isMetaDirective(node.Name) {
				if err := c.compileDirective(sc, node); err != nil {
					return nil, err
				}
				continue
			}
			action := &seedlang.CallAction{Name: node.Name, Args: node.Args, Line: node.Line}
			effects, err := lc.lowerAction(action)
			if err != nil {
				return nil, err
			}
			out = append(out, effects...)
		case *seedlang.OnDecl:
			if err := c.compileOnDecl(sc, node); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("seedcompile: unexpected content %T inside directive body", item)
		}
	}
	return out, nil
}

func isMetaDirective(name string) bool {
	switch name {
	case "include", "share", "use", "callback", "on_callback", "if", "repeat",
		"random_integer", "random_float", "random_pool", "random_from_pool",
		"state", "timer", "item_data", "preplace":
		return true
	default:
		return false
	}
}

func (c *Compiler) directiveIf(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	if len(dir.Args) != 1 {
		return fmt.Errorf("seedcompile: %s: !if requires exactly one condition", atLine(dir.Line))
	}
	lit, err := evalConstExpr(sc, dir.Args[0])
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !if: %w", atLine(dir.Line), err)
	}
	cond, err := lit.AsBool()
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !if: %w", atLine(dir.Line), err)
	}
	if !cond {
		return nil
	}
	return c.compileContentList(sc, dir.Body)
}

func (c *Compiler) directiveRepeat(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	if len(dir.Args) != 1 {
		return fmt.Errorf("seedcompile: %s: !repeat requires exactly one count", atLine(dir.Line))
	}
	lit, err := evalConstExpr(sc, dir.Args[0])
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !repeat: %w", atLine(dir.Line), err)
	}
	n, err := lit.AsInt()
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !repeat: %w", atLine(dir.Line), err)
	}
	for i := 0; i < n; i++ {
		if err := c.compileContentList(sc, dir.Body); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileContentList(sc *snippetCompile, items []seedlang.Content) error {
	for _, item := range items {
		if err := c.compileContent(sc, item); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) directiveRandomIntFloat(sc *snippetCompile, dir *seedlang.CommandDirective, isInt bool) error {
	if len(dir.Args) != 3 {
		return fmt.Errorf("seedcompile: %s: !random_%s requires (id, min, max)", atLine(dir.Line), kindWord(isInt))
	}
	id, ok := identArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !random_%s: id must be an identifier", atLine(dir.Line), kindWord(isInt))
	}
	minLit, err := evalConstExpr(sc, dir.Args[1])
	if err != nil {
		return err
	}
	maxLit, err := evalConstExpr(sc, dir.Args[2])
	if err != nil {
		return err
	}
	r := c.poolRNG(sc, id)
	if isInt {
		minI, err := minLit.AsInt()
		if err != nil {
			return err
		}
		maxI, err := maxLit.AsInt()
		if err != nil {
			return err
		}
		sc.shared[id] = IntLiteral(int32(r.IntRange(minI, maxI)))
		return nil
	}
	sc.shared[id] = FloatLiteral(float32(r.Float64Range(float64(minLit.Float), float64(maxLit.Float))))
	return nil
}

func kindWord(isInt bool) string {
	if isInt {
		return "integer"
	}
	return "float"
}

func (c *Compiler) directiveRandomPool(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	if len(dir.Args) != 3 {
		return fmt.Errorf("seedcompile: %s: !random_pool requires (id, type, values)", atLine(dir.Line))
	}
	id, ok := identArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !random_pool: id must be an identifier", atLine(dir.Line))
	}
	list, ok := dir.Args[2].(*seedlang.ListLit)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !random_pool: values must be a list literal", atLine(dir.Line))
	}
	values := make([]Literal, len(list.Items))
	for i, item := range list.Items {
		lit, err := evalConstExpr(sc, item)
		if err != nil {
			return err
		}
		values[i] = lit
	}
	c.randomPools[sc.name+"::"+id] = values
	return nil
}

func (c *Compiler) directiveRandomFromPool(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	if len(dir.Args) != 2 {
		return fmt.Errorf("seedcompile: %s: !random_from_pool requires (id, pool_id)", atLine(dir.Line))
	}
	id, ok := identArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !random_from_pool: id must be an identifier", atLine(dir.Line))
	}
	poolID, ok := identArg(dir.Args, 1)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !random_from_pool: pool_id must be an identifier", atLine(dir.Line))
	}
	pool, ok := c.randomPools[sc.name+"::"+poolID]
	if !ok || len(pool) == 0 {
		return fmt.Errorf("seedcompile: %s: !random_from_pool: unknown or empty pool %q", atLine(dir.Line), poolID)
	}
	r := c.poolRNG(sc, id)
	sc.shared[id] = pool[r.Intn(len(pool))]
	return nil
}

func (c *Compiler) directiveState(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	if len(dir.Args) != 2 {
		return fmt.Errorf("seedcompile: %s: !state requires (id, type)", atLine(dir.Line))
	}
	id, ok := identArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !state: id must be an identifier", atLine(dir.Line))
	}
	typeName, ok := literalStringArg(dir.Args, 1)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !state: type must be a literal string", atLine(dir.Line))
	}
	kind, err := uberstateKind(typeName)
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !state: %w", atLine(dir.Line), err)
	}
	uid, err := c.alloc.AllocByKind(kind)
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !state(%s): %w", atLine(dir.Line), id, err)
	}
	sc.shared[id] = UberIdentLiteral(uid)
	return nil
}

func (c *Compiler) directiveTimer(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	if len(dir.Args) != 2 {
		return fmt.Errorf("seedcompile: %s: !timer requires (toggle, timer)", atLine(dir.Line))
	}
	toggle, ok := identArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !timer: toggle must be an identifier", atLine(dir.Line))
	}
	timer, ok := identArg(dir.Args, 1)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !timer: timer must be an identifier", atLine(dir.Line))
	}
	toggleID, err := c.alloc.AllocBool()
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !timer(%s): %w", atLine(dir.Line), toggle, err)
	}
	timerID, err := c.alloc.AllocFloat()
	if err != nil {
		return fmt.Errorf("seedcompile: %s: !timer(%s): %w", atLine(dir.Line), timer, err)
	}
	sc.shared[toggle] = UberIdentLiteral(toggleID)
	sc.shared[timer] = UberIdentLiteral(timerID)
	return nil
}

func (c *Compiler) directiveItemData(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	if len(dir.Args) < 1 {
		return fmt.Errorf("seedcompile: %s: !item_data requires at least an item", atLine(dir.Line))
	}
	item, ok := literalStringArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !item_data: item must be a literal string", atLine(dir.Line))
	}
	data, ok := c.itemData[item]
	if !ok {
		data = newItemData(item)
		c.itemData[item] = data
	}
	fields := []struct {
		name string
		idx  int
	}{{"name", 1}, {"price", 2}, {"description", 3}, {"icon", 4}, {"map_icon", 5}}
	for _, f := range fields {
		if f.idx >= len(dir.Args) {
			continue
		}
		lit, err := evalConstExpr(sc, dir.Args[f.idx])
		if err != nil {
			return fmt.Errorf("seedcompile: %s: !item_data(%s): %w", atLine(dir.Line), item, err)
		}
		if err := applyItemDataField(data, f.name, lit); err != nil {
			return fmt.Errorf("seedcompile: %s: %w", atLine(dir.Line), err)
		}
	}
	return nil
}

func applyItemDataField(data *ItemData, field string, lit Literal) error {
	switch field {
	case "name":
		return data.setField(field, func() { s := lit.String; data.Name = &s })
	case "price":
		return data.setField(field, func() { v := lit.Int; data.Price = &v })
	case "description":
		return data.setField(field, func() { s := lit.String; data.Description = &s })
	case "icon":
		return data.setField(field, func() { s := lit.String; data.Icon = &s })
	case "map_icon":
		return data.setField(field, func() { s := lit.String; data.MapIcon = &s })
	default:
		return fmt.Errorf("!item_data: unknown field %q", field)
	}
}

func (c *Compiler) directivePreplace(sc *snippetCompile, dir *seedlang.CommandDirective) error {
	item, ok := literalStringArg(dir.Args, 0)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !preplace requires a literal item name", atLine(dir.Line))
	}
	zone, ok := literalStringArg(dir.Args, 1)
	if !ok {
		return fmt.Errorf("seedcompile: %s: !preplace requires a literal zone name", atLine(dir.Line))
	}
	c.preplacements = append(c.preplacements, Preplacement{Item: item, Zone: zone})
	return nil
}

func uberstateKind(name string) (uberstate.ValueKind, error) {
	switch name {
	case "bool", "boolean":
		return uberstate.KindBool, nil
	case "int", "integer":
		return uberstate.KindInt, nil
	case "float":
		return uberstate.KindFloat, nil
	default:
		return 0, fmt.Errorf("unknown state type %q", name)
	}
}

func identArg(args []seedlang.Expr, idx int) (string, bool) {
	if idx >= len(args) {
		return "", false
	}
	ident, ok := args[idx].(*seedlang.Ident)
	if !ok {
		return "", false
	}
	return ident.Name, true
}
