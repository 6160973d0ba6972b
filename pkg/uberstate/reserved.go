package uberstate

import "fmt"

// Reserved group 9 holds the compiler-allocated identifiers for `!state`
// and `!timer` directives, split into three disjoint member ranges by
// value type.
const ReservedGroup int32 = 9

const (
	reservedIntStart   int32 = 0
	reservedIntEnd     int32 = 99
	reservedBoolStart  int32 = 100
	reservedBoolEnd    int32 = 149
	reservedFloatStart int32 = 150
	reservedFloatEnd   int32 = 174
)

// Allocator hands out identifiers from the three reserved group-9 ranges in
// order, returning an error once a range is exhausted rather than wrapping
// or silently reusing a member.
type Allocator struct {
	nextInt, nextBool, nextFloat int32
}

// NewAllocator returns an allocator starting at the bottom of each range.
func NewAllocator() *Allocator {
	return &Allocator{
		nextInt:   reservedIntStart,
		nextBool:  reservedBoolStart,
		nextFloat: reservedFloatStart,
	}
}

func (a *Allocator) AllocInt() (Identifier, error) {
	if a.nextInt > reservedIntEnd {
		return Identifier{}, fmt.Errorf("uberstate: reserved integer range (9/%d..%d) exhausted", reservedIntStart, reservedIntEnd)
	}
	id := Identifier{Group: ReservedGroup, Member: a.nextInt}
	a.nextInt++
	return id, nil
}

func (a *Allocator) AllocBool() (Identifier, error) {
	if a.nextBool > reservedBoolEnd {
		return Identifier{}, fmt.Errorf("uberstate: reserved boolean range (9/%d..%d) exhausted", reservedBoolStart, reservedBoolEnd)
	}
	id := Identifier{Group: ReservedGroup, Member: a.nextBool}
	a.nextBool++
	return id, nil
}

func (a *Allocator) AllocFloat() (Identifier, error) {
	if a.nextFloat > reservedFloatEnd {
		return Identifier{}, fmt.Errorf("uberstate: reserved float range (9/%d..%d) exhausted", reservedFloatStart, reservedFloatEnd)
	}
	id := Identifier{Group: ReservedGroup, Member: a.nextFloat}
	a.nextFloat++
	return id, nil
}

// AllocByKind dispatches to the range matching kind.
func (a *Allocator) AllocByKind(kind ValueKind) (Identifier, error) {
	switch kind {
	case KindInt:
		return a.AllocInt()
	case KindBool:
		return a.AllocBool()
	case KindFloat:
		return a.AllocFloat()
	default:
		return Identifier{}, fmt.Errorf("uberstate: unknown value kind %d", kind)
	}
}
