package inventory

import (
	"math"
	"testing"

	"github.com/oriwisp/seedgen/pkg/worldsettings"
)

func settingsAt(d worldsettings.Difficulty, hard bool) *worldsettings.WorldSettings {
	w := worldsettings.DefaultWorldSettings()
	w.Difficulty = d
	w.Hard = hard
	return w
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDestroyCostNoWeapon(t *testing.T) {
	inv := New()
	_, ok := inv.DestroyCost(10, false, false, settingsAt(worldsettings.Moki, false))
	if ok {
		t.Fatalf("expected no weapon to attack with, got ok=true")
	}
}

func TestDestroyCostSpearAlone(t *testing.T) {
	inv := New()
	inv.Grant(SkillItem(Spear), 1)
	cost, ok := inv.DestroyCost(10, false, true, settingsAt(worldsettings.Moki, false))
	if !ok || !almostEqual(cost, 4.0) {
		t.Fatalf("got (%v, %v), want (4.0, true)", cost, ok)
	}

	zero, ok := inv.DestroyCost(0, false, false, settingsAt(worldsettings.Moki, false))
	if !ok || !almostEqual(zero, 0.0) {
		t.Fatalf("got (%v, %v), want (0.0, true)", zero, ok)
	}
}

func TestDestroyCostSpearAndBow(t *testing.T) {
	inv := New()
	inv.Grant(SkillItem(Spear), 1)
	inv.Grant(SkillItem(Bow), 1)
	cost, ok := inv.DestroyCost(10, false, false, settingsAt(worldsettings.Moki, false))
	if !ok || !almostEqual(cost, 1.5) {
		t.Fatalf("got (%v, %v), want (1.5, true)", cost, ok)
	}
}

func TestDestroyCostUnsafeWithShards(t *testing.T) {
	inv := New()
	inv.Grant(SkillItem(Spear), 1)
	w := settingsAt(worldsettings.Unsafe, false)
	inv.Grant(SkillItem(GladesAncestralLight), 1)
	inv.Grant(SkillItem(InkwaterAncestralLight), 1)
	inv.Grant(ShardItem(Wingclip), 1)
	inv.Grant(ResourceItem(ShardSlot), 1)

	cost, ok := inv.DestroyCost(1, false, false, w)
	if !ok || !almostEqual(cost, 2.0) {
		t.Fatalf("spear-only under shard buffs: got (%v, %v), want (2.0, true)", cost, ok)
	}

	inv.Grant(SkillItem(Bow), 1)
	cost, ok = inv.DestroyCost(10, false, true, w)
	if !ok || !almostEqual(cost, 0.25) {
		t.Fatalf("spear+bow flying under shard buffs: got (%v, %v), want (0.25, true)", cost, ok)
	}
}

func TestDestroyCostGrenadeAndShuriken(t *testing.T) {
	inv := New()
	inv.Grant(SkillItem(Grenade), 1)
	inv.Grant(SkillItem(Shuriken), 1)
	w := settingsAt(worldsettings.Unsafe, false)

	cost, ok := inv.DestroyCost(20, false, false, w)
	if !ok || !almostEqual(cost, 1.5) {
		t.Fatalf("got (%v, %v), want (1.5, true)", cost, ok)
	}
}

func TestInventoryMonoid(t *testing.T) {
	a := New()
	a.Grant(ResourceItem(GorlekOre), 3)
	b := New()
	b.Grant(ResourceItem(GorlekOre), 2)
	b.Grant(SkillItem(Bash), 1)

	merged := a.Clone()
	merged.Merge(b)
	if !merged.Has(ResourceItem(GorlekOre), 5) {
		t.Fatalf("expected merged ore count 5, got %d", merged.Get(ResourceItem(GorlekOre)))
	}
	if !merged.Contains(a) || !merged.Contains(b) {
		t.Fatalf("merged inventory must contain both operands")
	}
}

func TestSingleInstanceIdempotence(t *testing.T) {
	inv := New()
	inv.Grant(SkillItem(Bash), 1)
	inv.Grant(SkillItem(Bash), 1)
	if inv.Get(SkillItem(Bash)) != 1 {
		t.Fatalf("granting a skill twice should saturate at 1, got %d", inv.Get(SkillItem(Bash)))
	}
}

func TestSpiritLightCanonicalization(t *testing.T) {
	inv := New()
	inv.Grant(SpiritLightItem, 50)
	inv.Grant(SpiritLightItem, 50)
	if inv.Get(SpiritLightItem) != 100 {
		t.Fatalf("expected 100 spirit light, got %d", inv.Get(SpiritLightItem))
	}
}
