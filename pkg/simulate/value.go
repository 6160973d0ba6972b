package simulate

import "github.com/oriwisp/seedgen/pkg/command"

// Value is a runtime-typed payload carried through expression evaluation:
// the interpreter's counterpart to command.Command's static ValueType tag.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind   command.ValueType
	Bool   bool
	Int    int32
	Float  float32
	String string
}

func BoolValue(b bool) Value     { return Value{Kind: command.TypeBoolean, Bool: b} }
func IntValue(i int32) Value     { return Value{Kind: command.TypeInteger, Int: i} }
func FloatValue(f float32) Value { return Value{Kind: command.TypeFloat, Float: f} }
func StringValue(s string) Value { return Value{Kind: command.TypeString, String: s} }
func ZoneValue(z string) Value   { return Value{Kind: command.TypeZone, String: z} }

// zeroValue is what Fetch/Get return for a never-written uber-state or
// scratchpad slot.
func zeroValue(t command.ValueType) Value {
	switch t {
	case command.TypeBoolean:
		return BoolValue(false)
	case command.TypeInteger:
		return IntValue(0)
	case command.TypeFloat:
		return FloatValue(0)
	case command.TypeZone:
		return ZoneValue("")
	default:
		return StringValue("")
	}
}
