package seedcompile

import (
	"fmt"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/seedlang"
	"github.com/oriwisp/seedgen/pkg/uberstate"
)

// loweringCtx carries the per-action-sequence state stage 3 needs: the
// compiler (for reserved-range allocation, random pools, item data, and
// placeholder capture), the snippet being compiled, the type scope built in
// stage 2, and the `let`-bound local substitutions collected so far.
type loweringCtx struct {
	c      *Compiler
	sc     *snippetCompile
	ts     *typeScope
	locals map[string]*command.Command
}

func newLoweringCtx(c *Compiler, sc *snippetCompile) *loweringCtx {
	return &loweringCtx{c: c, sc: sc, ts: newTypeScope(sc), locals: make(map[string]*command.Command)}
}

func (lc *loweringCtx) child() *loweringCtx {
	child := &loweringCtx{c: lc.c, sc: lc.sc, ts: lc.ts.child(), locals: make(map[string]*command.Command, len(lc.locals))}
	for k, v := range lc.locals {
		child.locals[k] = v
	}
	return child
}

func (lc *loweringCtx) lowerTrigger(trig seedlang.Trigger) (command.Trigger, error) {
	switch trig.Kind {
	case seedlang.TriggerClientEvent:
		return command.Trigger{Kind: command.TriggerClientEvent, EventName: trig.EventName}, nil
	case seedlang.TriggerBinding:
		return command.Trigger{Kind: command.TriggerBinding, UberID: uberstate.Identifier{Group: trig.Group, Member: trig.Member}}, nil
	case seedlang.TriggerCondition:
		cond, err := lc.lowerExpr(trig.Condition)
		if err != nil {
			return command.Trigger{}, err
		}
		return command.Trigger{Kind: command.TriggerCondition, Condition: cond}, nil
	default:
		return command.Trigger{}, fmt.Errorf("seedcompile: unknown trigger kind %v", trig.Kind)
	}
}

// lowerActionSequence lowers a flat sequence of actions (a fun body, or the
// block under an `on`) into one effect Command, in order.
func (lc *loweringCtx) lowerActionSequence(actions []seedlang.Action) (*command.Command, error) {
	var effects []*command.Command
	for _, a := range actions {
		out, err := lc.lowerAction(a)
		if err != nil {
			return nil, err
		}
		effects = append(effects, out...)
	}
	if len(effects) == 0 {
		return command.Constant(command.TypeVoid), nil
	}
	return command.Multi(effects[:len(effects)-1], effects[len(effects)-1]), nil
}

// lowerAction lowers one Action node to zero or more ordered effect
// commands (LetAction emits none, only extends lc.locals for later actions
// in the same sequence).
func (lc *loweringCtx) lowerAction(action seedlang.Action) ([]*command.Command, error) {
	switch a := action.(type) {
	case *seedlang.BlockAction:
		var out []*command.Command
		for _, child := range a.Actions {
			lowered, err := lc.lowerAction(child)
			if err != nil {
				return nil, err
			}
			out = append(out, lowered...)
		}
		return out, nil
	case *seedlang.IfAction:
		cond, err := lc.lowerExpr(a.Cond)
		if err != nil {
			return nil, err
		}
		thenEffects, err := lc.lowerAction(a.Then)
		if err != nil {
			return nil, err
		}
		var then *command.Command
		if len(thenEffects) == 0 {
			then = command.Constant(command.TypeVoid)
		} else {
			then = command.Multi(thenEffects[:len(thenEffects)-1], thenEffects[len(thenEffects)-1])
		}
		return []*command.Command{command.If(cond, then)}, nil
	case *seedlang.LetAction:
		val, err := lc.lowerExpr(a.Value)
		if err != nil {
			return nil, err
		}
		t, err := inferType(lc.ts, a.Value)
		if err != nil {
			return nil, err
		}
		lc.locals[a.Name] = val
		lc.ts.locals[a.Name] = t
		return nil, nil
	case *seedlang.CallAction:
		return lc.lowerCallAction(a)
	default:
		return nil, fmt.Errorf("seedcompile: unhandled action %T", action)
	}
}

func (lc *loweringCtx) lowerCallAction(call *seedlang.CallAction) ([]*command.Command, error) {
	if fn, ok := lc.sc.function(call.Name); ok {
		if len(call.Args) != 0 {
			return nil, fmt.Errorf("seedcompile: %s: fun %q takes no arguments", atLine(call.Line), call.Name)
		}
		child := lc.child()
		var out []*command.Command
		for _, bodyAction := range fn.Body {
			lowered, err := child.lowerAction(bodyAction)
			if err != nil {
				return nil, err
			}
			out = append(out, lowered...)
		}
		return out, nil
	}

	effect, err := lc.lowerVoidBuiltin(call.Name, call.Args, call.Line)
	if err != nil {
		return nil, err
	}
	return []*command.Command{effect}, nil
}

func atLine(line int) string { return fmt.Sprintf("line %d", line) }

// lowerExpr lowers an expression node, threading lc.locals substitutions so
// a `let`-bound identifier inlines the expression it was bound to.
func (lc *loweringCtx) lowerExpr(expr seedlang.Expr) (*command.Command, error) {
	switch e := expr.(type) {
	case *seedlang.LitInt:
		return command.ConstantInt(int32(e.Value)), nil
	case *seedlang.LitFloat:
		return command.ConstantFloat(float32(e.Value)), nil
	case *seedlang.LitString:
		return command.ConstantString(e.Value), nil
	case *seedlang.LitBool:
		return command.ConstantBool(e.Value), nil
	case *seedlang.LitUberIdent:
		return command.ConstantInt(0), nil // a bare identifier literal as a value names a slot elsewhere, not a value itself
	case *seedlang.Ident:
		if cmd, ok := lc.locals[e.Name]; ok {
			return cmd, nil
		}
		if lit, ok := lc.sc.sharedLiteral(e.Name); ok {
			return lit.Command(), nil
		}
		return nil, fmt.Errorf("seedcompile: undefined identifier %q", e.Name)
	case *seedlang.Unary:
		return lc.lowerUnary(e)
	case *seedlang.Binary:
		return lc.lowerBinary(e)
	case *seedlang.Call:
		return lc.lowerExprCall(e)
	default:
		return nil, fmt.Errorf("seedcompile: cannot lower expression %T", expr)
	}
}

func (lc *loweringCtx) lowerUnary(e *seedlang.Unary) (*command.Command, error) {
	if call, ok := e.Operand.(*seedlang.Call); ok && e.Op == "!" {
		if ph, handled, err := lc.lowerPlaceholderCall(call); handled {
			return ph, err
		}
	}
	operand, err := lc.lowerExpr(e.Operand)
	if err != nil {
		return nil, err
	}
	if e.Op == "!" {
		return command.Compare(command.CmpEq, operand, command.ConstantBool(false)), nil
	}
	// unary minus: 0 - operand, typed to match the operand.
	t, err := inferType(lc.ts, e.Operand)
	if err != nil {
		return nil, err
	}
	zero := command.ConstantInt(0)
	if t == command.TypeFloat {
		zero = command.ConstantFloat(0)
	}
	return command.Arithmetic(t, command.ArithSub, zero, operand), nil
}

func (lc *loweringCtx) lowerBinary(e *seedlang.Binary) (*command.Command, error) {
	left, err := lc.lowerExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := lc.lowerExpr(e.Right)
	if err != nil {
		return nil, err
	}
	resultType, err := inferBinaryType(lc.ts, e)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "&&":
		return command.And(left, right), nil
	case "||":
		return command.Or(left, right), nil
	case "==":
		return command.Compare(command.CmpEq, left, right), nil
	case "!=":
		return command.Compare(command.CmpNe, left, right), nil
	case "<=":
		return command.Compare(command.CmpLe, left, right), nil
	case "<":
		return command.Compare(command.CmpLt, left, right), nil
	case ">=":
		return command.Compare(command.CmpGe, left, right), nil
	case ">":
		return command.Compare(command.CmpGt, left, right), nil
	case "+":
		return command.Arithmetic(resultType, command.ArithAdd, left, right), nil
	case "-":
		return command.Arithmetic(resultType, command.ArithSub, left, right), nil
	case "*":
		return command.Arithmetic(resultType, command.ArithMul, left, right), nil
	case "/":
		return command.Arithmetic(resultType, command.ArithDiv, left, right), nil
	default:
		return nil, fmt.Errorf("seedcompile: unknown operator %q", e.Op)
	}
}
