package seedcompile

import (
	"fmt"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/seedlang"
)

// evalConstExpr evaluates expr down to a Literal without emitting any
// Command: the compile-time directives (!if, !repeat, !random_*'s bounds,
// !item_data's fields, ...) all require, per spec.md §4.7, "pure literal
// values" — no uber-state fetches, no runtime branches.
func evalConstExpr(sc *snippetCompile, expr seedlang.Expr) (Literal, error) {
	switch e := expr.(type) {
	case *seedlang.LitInt:
		return IntLiteral(int32(e.Value)), nil
	case *seedlang.LitFloat:
		return FloatLiteral(float32(e.Value)), nil
	case *seedlang.LitString:
		return StringLiteral(e.Value), nil
	case *seedlang.LitBool:
		return BoolLiteral(e.Value), nil
	case *seedlang.Ident:
		if lit, ok := sc.sharedLiteral(e.Name); ok {
			return lit, nil
		}
		return Literal{}, fmt.Errorf("undefined compile-time identifier %q", e.Name)
	case *seedlang.Unary:
		operand, err := evalConstExpr(sc, e.Operand)
		if err != nil {
			return Literal{}, err
		}
		return applyConstUnary(e.Op, operand)
	case *seedlang.Binary:
		left, err := evalConstExpr(sc, e.Left)
		if err != nil {
			return Literal{}, err
		}
		right, err := evalConstExpr(sc, e.Right)
		if err != nil {
			return Literal{}, err
		}
		return applyConstBinary(e.Op, left, right)
	default:
		return Literal{}, fmt.Errorf("expected a compile-time constant, got %T", expr)
	}
}

func applyConstUnary(op string, v Literal) (Literal, error) {
	switch op {
	case "!":
		b, err := v.AsBool()
		if err != nil {
			return Literal{}, err
		}
		return BoolLiteral(!b), nil
	case "-":
		if v.Type == command.TypeFloat {
			return FloatLiteral(-v.Float), nil
		}
		return IntLiteral(-v.Int), nil
	default:
		return Literal{}, fmt.Errorf("unknown unary operator %q", op)
	}
}

func applyConstBinary(op string, l, r Literal) (Literal, error) {
	switch op {
	case "&&":
		lb, err := l.AsBool()
		if err != nil {
			return Literal{}, err
		}
		rb, err := r.AsBool()
		if err != nil {
			return Literal{}, err
		}
		return BoolLiteral(lb && rb), nil
	case "||":
		lb, err := l.AsBool()
		if err != nil {
			return Literal{}, err
		}
		rb, err := r.AsBool()
		if err != nil {
			return Literal{}, err
		}
		return BoolLiteral(lb || rb), nil
	case "==", "!=", "<=", "<", ">=", ">":
		return compareConst(op, l, r)
	case "+":
		if l.Type == command.TypeString || r.Type == command.TypeString {
			return StringLiteral(l.asDisplayString() + r.asDisplayString()), nil
		}
		return arithConst(op, l, r)
	case "-", "*", "/":
		return arithConst(op, l, r)
	default:
		return Literal{}, fmt.Errorf("unknown binary operator %q", op)
	}
}

func arithConst(op string, l, r Literal) (Literal, error) {
	if l.Type == command.TypeFloat || r.Type == command.TypeFloat {
		lf, rf := l.asFloat(), r.asFloat()
		switch op {
		case "+":
			return FloatLiteral(lf + rf), nil
		case "-":
			return FloatLiteral(lf - rf), nil
		case "*":
			return FloatLiteral(lf * rf), nil
		case "/":
			return FloatLiteral(lf / rf), nil
		}
	}
	li, ri, err := requireInts(l, r)
	if err != nil {
		return Literal{}, err
	}
	switch op {
	case "+":
		return IntLiteral(li + ri), nil
	case "-":
		return IntLiteral(li - ri), nil
	case "*":
		return IntLiteral(li * ri), nil
	case "/":
		if ri == 0 {
			return Literal{}, fmt.Errorf("division by zero")
		}
		return IntLiteral(li / ri), nil
	}
	return Literal{}, fmt.Errorf("unreachable arithmetic operator %q", op)
}

func compareConst(op string, l, r Literal) (Literal, error) {
	var cmp int
	switch {
	case l.Type == command.TypeString || r.Type == command.TypeString:
		ls, rs := l.asDisplayString(), r.asDisplayString()
		switch {
		case ls < rs:
			cmp = -1
		case ls > rs:
			cmp = 1
		}
	case l.Type == command.TypeBoolean && r.Type == command.TypeBoolean:
		if op != "==" && op != "!=" {
			return Literal{}, fmt.Errorf("operator %q not defined for bool", op)
		}
		if l.Bool == r.Bool {
			cmp = 0
		} else {
			cmp = 1
		}
	default:
		lf, rf := l.asFloat(), r.asFloat()
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		}
	}
	switch op {
	case "==":
		return BoolLiteral(cmp == 0), nil
	case "!=":
		return BoolLiteral(cmp != 0), nil
	case "<":
		return BoolLiteral(cmp < 0), nil
	case "<=":
		return BoolLiteral(cmp <= 0), nil
	case ">":
		return BoolLiteral(cmp > 0), nil
	case ">=":
		return BoolLiteral(cmp >= 0), nil
	default:
		return Literal{}, fmt.Errorf("unknown comparison operator %q", op)
	}
}

func requireInts(l, r Literal) (int32, int32, error) {
	if l.Type != command.TypeInteger || r.Type != command.TypeInteger {
		return 0, 0, fmt.Errorf("expected integer operands")
	}
	return l.Int, r.Int, nil
}

func (l Literal) asFloat() float64 {
	if l.Type == command.TypeFloat {
		return float64(l.Float)
	}
	return float64(l.Int)
}

func (l Literal) asDisplayString() string {
	switch l.Type {
	case command.TypeString:
		return l.String
	case command.TypeInteger:
		return fmt.Sprintf("%d", l.Int)
	case command.TypeFloat:
		return fmt.Sprintf("%g", l.Float)
	case command.TypeBoolean:
		return fmt.Sprintf("%t", l.Bool)
	default:
		return l.String
	}
}
