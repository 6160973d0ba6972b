package seedcompile

import (
	"fmt"

	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/uberstate"
)

// Literal is a compile-time-known value: the payload `let` bindings and
// compile-time directive arguments (!if, !repeat, !random_pool's value
// list, ...) carry once evaluated down to a constant.
//
// IsUberIdent marks a value produced by !state/!timer: it doesn't lower to
// a constant expression itself, only to an argument slot (get_<t>, fetch,
// store, ...) that expects an uberstate.Identifier.
type Literal struct {
	Type        command.ValueType
	Bool        bool
	Int         int32
	Float       float32
	String      string
	IsUberIdent bool
	UberID      uberstate.Identifier
}

func UberIdentLiteral(id uberstate.Identifier) Literal {
	return Literal{IsUberIdent: true, UberID: id}
}

func BoolLiteral(b bool) Literal     { return Literal{Type: command.TypeBoolean, Bool: b} }
func IntLiteral(i int32) Literal     { return Literal{Type: command.TypeInteger, Int: i} }
func FloatLiteral(f float32) Literal { return Literal{Type: command.TypeFloat, Float: f} }
func StringLiteral(s string) Literal { return Literal{Type: command.TypeString, String: s} }
func ZoneLiteral(name string) Literal {
	return Literal{Type: command.TypeZone, String: name}
}

// Command converts the literal to a constant expression node. IsUberIdent
// literals should normally be consumed through resolveUberIdent instead;
// this fallback keeps a stray reference from panicking.
func (l Literal) Command() *command.Command {
	if l.IsUberIdent {
		return command.ConstantInt(l.UberID.Member)
	}
	switch l.Type {
	case command.TypeBoolean:
		return command.ConstantBool(l.Bool)
	case command.TypeInteger:
		return command.ConstantInt(l.Int)
	case command.TypeFloat:
		return command.ConstantFloat(l.Float)
	case command.TypeString, command.TypeZone:
		c := command.Constant(l.Type)
		c.ConstString = l.String
		return c
	default:
		return command.Constant(command.TypeVoid)
	}
}

// AsInt returns the literal's value coerced to int, for compile-time
// directive arguments (!repeat(n), !random_integer bounds, ...) that must be
// pure integer literals.
func (l Literal) AsInt() (int, error) {
	switch l.Type {
	case command.TypeInteger:
		return int(l.Int), nil
	case command.TypeFloat:
		return int(l.Float), nil
	default:
		return 0, fmt.Errorf("seedcompile: expected an integer literal, got %s", typeName(l.Type))
	}
}

// AsBool returns the literal's value coerced to bool, for !if(expr)'s
// compile-time condition.
func (l Literal) AsBool() (bool, error) {
	if l.Type != command.TypeBoolean {
		return false, fmt.Errorf("seedcompile: expected a boolean literal, got %s", typeName(l.Type))
	}
	return l.Bool, nil
}

func typeName(t command.ValueType) string {
	switch t {
	case command.TypeBoolean:
		return "bool"
	case command.TypeInteger:
		return "int"
	case command.TypeFloat:
		return "float"
	case command.TypeString:
		return "string"
	case command.TypeZone:
		return "zone"
	case command.TypeVoid:
		return "void"
	default:
		return "unknown"
	}
}
