package seedcompile

import (
	"fmt"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/seedlang"
)

// typeScope is the per-action type-checking environment: local `let`
// bindings (by inferred type only — lowering re-resolves the actual
// expression) layered over the snippet's shared scope.
type typeScope struct {
	locals map[string]command.ValueType
	snip   *snippetCompile
}

func newTypeScope(s *snippetCompile) *typeScope {
	return &typeScope{locals: make(map[string]command.ValueType), snip: s}
}

func (ts *typeScope) child() *typeScope {
	c := newTypeScope(ts.snip)
	for k, v := range ts.locals {
		c.locals[k] = v
	}
	return c
}

// inferType recursively infers the type of expr per spec.md §4.7 stage 2:
// literals are self-typed, identifiers resolve against the scope, and
// function calls resolve against the builtin table (falling back to
// user-defined `fun` bodies, which are untyped action sequences and
// therefore only valid as statements, not values).
func inferType(ts *typeScope, expr seedlang.Expr) (command.ValueType, error) {
	switch e := expr.(type) {
	case *seedlang.LitInt:
		return command.TypeInteger, nil
	case *seedlang.LitFloat:
		return command.TypeFloat, nil
	case *seedlang.LitString:
		return command.TypeString, nil
	case *seedlang.LitBool:
		return command.TypeBoolean, nil
	case *seedlang.LitUberIdent:
		return command.TypeInteger, nil // a bare UberIdentifier literal names a slot, not a fetched value
	case *seedlang.Ident:
		if t, ok := ts.locals[e.Name]; ok {
			return t, nil
		}
		if lit, ok := ts.snip.sharedLiteral(e.Name); ok {
			if lit.IsUberIdent {
				return command.TypeInteger, nil
			}
			return lit.Type, nil
		}
		return 0, fmt.Errorf("seedcompile: undefined identifier %q", e.Name)
	case *seedlang.Call:
		return inferCallType(ts, e)
	case *seedlang.Unary:
		operandType, err := inferType(ts, e.Operand)
		if err != nil {
			return 0, err
		}
		if e.Op == "!" {
			if operandType != command.TypeBoolean {
				return 0, fmt.Errorf("seedcompile: operator ! requires bool, got %s", typeName(operandType))
			}
			return command.TypeBoolean, nil
		}
		return operandType, nil
	case *seedlang.Binary:
		return inferBinaryType(ts, e)
	default:
		return 0, fmt.Errorf("seedcompile: cannot infer type of %T", expr)
	}
}

func inferBinaryType(ts *typeScope, e *seedlang.Binary) (command.ValueType, error) {
	lt, err := inferType(ts, e.Left)
	if err != nil {
		return 0, err
	}
	rt, err := inferType(ts, e.Right)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case "&&", "||":
		if lt != command.TypeBoolean || rt != command.TypeBoolean {
			return 0, fmt.Errorf("seedcompile: %s requires bool operands, got %s/%s", e.Op, typeName(lt), typeName(rt))
		}
		return command.TypeBoolean, nil
	case "==", "!=", "<=", "<", ">=", ">":
		return command.TypeBoolean, nil
	case "+":
		if lt == command.TypeString || rt == command.TypeString {
			return command.TypeString, nil
		}
		return arithResultType(lt, rt)
	case "-", "*", "/":
		return arithResultType(lt, rt)
	default:
		return 0, fmt.Errorf("seedcompile: unknown binary operator %q", e.Op)
	}
}

// arithResultType implements spec.md §4.7's arithmetic promotion rule:
// (Int,Int)->Int, (Float,*)->Float.
func arithResultType(lt, rt command.ValueType) (command.ValueType, error) {
	if lt == command.TypeFloat || rt == command.TypeFloat {
		return command.TypeFloat, nil
	}
	if lt == command.TypeInteger && rt == command.TypeInteger {
		return command.TypeInteger, nil
	}
	return 0, fmt.Errorf("seedcompile: arithmetic requires numeric operands, got %s/%s", typeName(lt), typeName(rt))
}

var exprBuiltins = map[string]command.ValueType{
	"fetch":        command.TypeFloat,
	"current_zone": command.TypeZone,
}

func inferCallType(ts *typeScope, call *seedlang.Call) (command.ValueType, error) {
	if suffix, ok := prefixedReturnType(call.Name); ok {
		return suffixType(suffix)
	}
	if t, ok := exprBuiltins[call.Name]; ok {
		return t, nil
	}
	if _, ok := ts.snip.function(call.Name); ok {
		return command.TypeVoid, nil // user functions are action sequences; never produce a value
	}
	return 0, fmt.Errorf("seedcompile: unknown function %q", call.Name)
}

func suffixType(suf string) (command.ValueType, error) {
	switch suf {
	case "bool":
		return command.TypeBoolean, nil
	case "int":
		return command.TypeInteger, nil
	case "float":
		return command.TypeFloat, nil
	case "string":
		return command.TypeString, nil
	default:
		return 0, fmt.Errorf("seedcompile: unknown type suffix %q", suf)
	}
}
