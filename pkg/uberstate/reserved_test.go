package uberstate

import "testing"

func TestAllocatorExhaustion(t *testing.T) {
	a := NewAllocator()
	for i := reservedBoolStart; i <= reservedBoolEnd; i++ {
		if _, err := a.AllocBool(); err != nil {
			t.Fatalf("unexpected exhaustion at %d: %v", i, err)
		}
	}
	if _, err := a.AllocBool(); err == nil {
		t.Fatalf("expected exhaustion error after allocating the full boolean range")
	}
}

func TestAllocatorRangesDisjoint(t *testing.T) {
	a := NewAllocator()
	i, _ := a.AllocInt()
	b, _ := a.AllocBool()
	f, _ := a.AllocFloat()
	if i == b || b == f || i == f {
		t.Fatalf("expected disjoint identifiers, got %v %v %v", i, b, f)
	}
}
