package simulate

import (
	"fmt"
	"strconv"

	"github.com/oriwisp/seedgen/pkg/command"
)

// arithmetic implements command.OpArithmetic: Int/Float follow the usual
// four operators, String only supports Add (concatenation) per spec.md
// §4.7's type-inference rule that `+` on strings concatenates.
func arithmetic(t command.ValueType, op command.Arith, lhs, rhs Value) Value {
	switch t {
	case command.TypeInteger:
		l, r := lhs.Int, rhs.Int
		switch op {
		case command.ArithAdd:
			return IntValue(l + r)
		case command.ArithSub:
			return IntValue(l - r)
		case command.ArithMul:
			return IntValue(l * r)
		case command.ArithDiv:
			if r == 0 {
				return IntValue(0)
			}
			return IntValue(l / r)
		}
	case command.TypeFloat:
		l, r := lhs.Float, rhs.Float
		switch op {
		case command.ArithAdd:
			return FloatValue(l + r)
		case command.ArithSub:
			return FloatValue(l - r)
		case command.ArithMul:
			return FloatValue(l * r)
		case command.ArithDiv:
			if r == 0 {
				return FloatValue(0)
			}
			return FloatValue(l / r)
		}
	case command.TypeString:
		return StringValue(lhs.String + rhs.String)
	}
	return Value{Kind: t}
}

// compare implements command.OpCompare across every value kind the typed
// command tree can carry.
func compare(op command.Cmp, lhs, rhs Value) bool {
	switch lhs.Kind {
	case command.TypeBoolean:
		return compareOrdered(op, boolOrd(lhs.Bool), boolOrd(rhs.Bool))
	case command.TypeInteger:
		return compareOrdered(op, int64(lhs.Int), int64(rhs.Int))
	case command.TypeFloat:
		return compareOrdered(op, float64(lhs.Float), float64(rhs.Float))
	default:
		return compareStrings(op, lhs.String, rhs.String)
	}
}

func boolOrd(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func compareOrdered[T int64 | float64](op command.Cmp, l, r T) bool {
	switch op {
	case command.CmpEq:
		return l == r
	case command.CmpNe:
		return l != r
	case command.CmpLe:
		return l <= r
	case command.CmpLt:
		return l < r
	case command.CmpGe:
		return l >= r
	case command.CmpGt:
		return l > r
	default:
		return false
	}
}

func compareStrings(op command.Cmp, l, r string) bool {
	switch op {
	case command.CmpEq:
		return l == r
	case command.CmpNe:
		return l != r
	case command.CmpLe:
		return l <= r
	case command.CmpLt:
		return l < r
	case command.CmpGe:
		return l >= r
	case command.CmpGt:
		return l > r
	default:
		return false
	}
}

// convert implements command.OpToType (the compiler's to_<t> builtins),
// matching the original source's CommandInteger::FromFloat
// (round), CommandFloat::FromInteger (cast), and CommandString::From*
// (Display) conversions.
func convert(v Value, target command.ValueType) Value {
	if v.Kind == target {
		return v
	}
	switch target {
	case command.TypeBoolean:
		switch v.Kind {
		case command.TypeInteger:
			return BoolValue(v.Int != 0)
		case command.TypeFloat:
			return BoolValue(v.Float != 0)
		case command.TypeString:
			return BoolValue(v.String == "true")
		}
	case command.TypeInteger:
		switch v.Kind {
		case command.TypeBoolean:
			return IntValue(int32(boolOrd(v.Bool)))
		case command.TypeFloat:
			return IntValue(int32(roundHalfAwayFromZero(v.Float)))
		case command.TypeString:
			n, _ := strconv.Atoi(v.String)
			return IntValue(int32(n))
		}
	case command.TypeFloat:
		switch v.Kind {
		case command.TypeBoolean:
			return FloatValue(float32(boolOrd(v.Bool)))
		case command.TypeInteger:
			return FloatValue(float32(v.Int))
		case command.TypeString:
			f, _ := strconv.ParseFloat(v.String, 32)
			return FloatValue(float32(f))
		}
	case command.TypeString, command.TypeZone:
		switch v.Kind {
		case command.TypeBoolean:
			return StringValue(fmt.Sprintf("%t", v.Bool))
		case command.TypeInteger:
			return StringValue(strconv.Itoa(int(v.Int)))
		case command.TypeFloat:
			return StringValue(strconv.FormatFloat(float64(v.Float), 'g', -1, 32))
		}
	}
	return zeroValue(target)
}

func roundHalfAwayFromZero(f float32) float32 {
	if f >= 0 {
		return float32(int64(f + 0.5))
	}
	return float32(int64(f - 0.5))
}
