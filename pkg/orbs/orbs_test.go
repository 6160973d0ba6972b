package orbs

import (
	"sort"
	"testing"

	"pgregory.net/rapid"
)

func variantsEqual(a, b Variants) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append(Variants{}, a...)
	sb := append(Variants{}, b...)
	less := func(s Variants) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].Health != s[j].Health {
				return s[i].Health < s[j].Health
			}
			return s[i].Energy < s[j].Energy
		}
	}
	sort.Slice(sa, less(sa))
	sort.Slice(sb, less(sb))
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

func TestEitherScenarios(t *testing.T) {
	got := Either(Variants{{0, 2}}, Variants{{30, 0}})
	want := Variants{{0, 2}, {30, 0}}
	if !variantsEqual(got, want) {
		t.Fatalf("either #1: got %v, want %v", got, want)
	}

	got = Either(Variants{{30, 1}, {10, 3}}, Variants{{30, 3}})
	want = Variants{{30, 3}}
	if !variantsEqual(got, want) {
		t.Fatalf("either #2: got %v, want %v", got, want)
	}
}

func TestBothScenarios(t *testing.T) {
	got := Both(Variants{{0, 2}}, Variants{{30, 0}})
	want := Variants{{30, 2}}
	if !variantsEqual(got, want) {
		t.Fatalf("both #1: got %v, want %v", got, want)
	}

	got = Both(Variants{{10, 3}, {20, 0}}, Variants{{30, 0}})
	want = Variants{{40, 3}, {50, 0}}
	if !variantsEqual(got, want) {
		t.Fatalf("both #2: got %v, want %v", got, want)
	}
}

func TestEitherEmptyIdentity(t *testing.T) {
	got := Either(nil, nil)
	want := Variants{{0, 0}}
	if !variantsEqual(got, want) {
		t.Fatalf("either empty/empty: got %v, want %v", got, want)
	}
}

func TestBothEmptyIdentity(t *testing.T) {
	b := Variants{{1, 2}, {3, 4}}
	got := Both(nil, b)
	if !variantsEqual(got, b) {
		t.Fatalf("both nil/b: got %v, want %v", got, b)
	}
}

// TestParetoInvariant checks that Either and Both always return a
// dominance-free frontier, regardless of how much redundant or dominated
// input they are fed.
func TestParetoInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(t, "n")
		m := rapid.IntRange(0, 6).Draw(t, "m")
		gen := rapid.Float64Range(0, 100)
		a := make(Variants, n)
		for i := range a {
			a[i] = Orbs{Health: gen.Draw(t, "ah"), Energy: gen.Draw(t, "ae")}
		}
		b := make(Variants, m)
		for i := range b {
			b[i] = Orbs{Health: gen.Draw(t, "bh"), Energy: gen.Draw(t, "be")}
		}

		for _, result := range []Variants{Either(a, b), Both(a, b)} {
			for i, x := range result {
				for j, y := range result {
					if i == j {
						continue
					}
					if y.Dominates(x) {
						t.Fatalf("pareto violation: %v dominates %v in %v", y, x, result)
					}
				}
			}
		}
	})
}
