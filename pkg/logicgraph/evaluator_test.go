package logicgraph

import (
	"testing"

	"github.com/oriwisp/seedgen/pkg/inventory"
	"github.com/oriwisp/seedgen/pkg/orbs"
	"github.com/oriwisp/seedgen/pkg/uberstate"
	"github.com/oriwisp/seedgen/pkg/worldsettings"
)

func testContext(inv *inventory.Inventory, d worldsettings.Difficulty) *Context {
	w := worldsettings.DefaultWorldSettings()
	w.Difficulty = d
	return &Context{
		Inventory:     inv,
		Settings:      w,
		HasReached:    func(int) bool { return false },
		NodeUberState: func(int) (uberstate.Identifier, bool) { return uberstate.Identifier{}, false },
	}
}

func TestFreeAndImpossible(t *testing.T) {
	ctx := testContext(inventory.New(), worldsettings.Moki)
	variants := orbs.Variants{{}}
	if m := IsMet(ctx, ReqFree(), &variants); m != nil {
		t.Fatalf("Free should always be met, got %v", m)
	}
	if m := IsMet(ctx, ReqImpossible(), &variants); m == nil {
		t.Fatalf("Impossible should never be met")
	}
}

func TestSkillRequirement(t *testing.T) {
	inv := inventory.New()
	ctx := testContext(inv, worldsettings.Moki)
	variants := orbs.Variants{{}}
	if m := IsMet(ctx, ReqSkill(inventory.Bash), &variants); m == nil {
		t.Fatalf("expected missing Bash")
	}

	inv.Grant(inventory.SkillItem(inventory.Bash), 1)
	variants = orbs.Variants{{}}
	if m := IsMet(ctx, ReqSkill(inventory.Bash), &variants); m != nil {
		t.Fatalf("expected Bash requirement met, got %v", m)
	}
}

func TestAndRequiresAllChildren(t *testing.T) {
	inv := inventory.New()
	inv.Grant(inventory.SkillItem(inventory.Bash), 1)
	ctx := testContext(inv, worldsettings.Moki)

	req := ReqAnd(ReqSkill(inventory.Bash), ReqSkill(inventory.Launch))
	variants := orbs.Variants{{}}
	if m := IsMet(ctx, req, &variants); m == nil {
		t.Fatalf("expected missing Launch to fail the And")
	}
}

func TestOrPrefersCheaperBranch(t *testing.T) {
	inv := inventory.New()
	inv.Grant(inventory.SkillItem(inventory.Bash), 1)
	inv.Grant(inventory.SkillItem(inventory.Launch), 1)
	ctx := testContext(inv, worldsettings.Moki)

	req := ReqOr(ReqSkill(inventory.Bash), ReqSkill(inventory.Launch))
	variants := orbs.Variants{{}}
	if m := IsMet(ctx, req, &variants); m != nil {
		t.Fatalf("expected Or to succeed when either branch holds, got %v", m)
	}
}

func TestDamageRequirementConsumesHealth(t *testing.T) {
	inv := inventory.New()
	ctx := testContext(inv, worldsettings.Moki)
	variants := orbs.Variants{{Health: 20}}
	if m := IsMet(ctx, ReqDamage(10), &variants); m != nil {
		t.Fatalf("expected 20hp to survive 10 damage, got %v", m)
	}
	if len(variants) != 1 || variants[0].Health != 10 {
		t.Fatalf("expected remaining health 10, got %+v", variants)
	}
}

func TestDamageRequirementInsufficientHealth(t *testing.T) {
	inv := inventory.New()
	ctx := testContext(inv, worldsettings.Moki)
	variants := orbs.Variants{{Health: 5}}
	if m := IsMet(ctx, ReqDamage(10), &variants); m == nil {
		t.Fatalf("expected 5hp to fail 10 damage")
	}
}

func TestBreakWallRequiresWeapon(t *testing.T) {
	inv := inventory.New()
	ctx := testContext(inv, worldsettings.Moki)
	variants := orbs.Variants{{Energy: 10}}
	if m := IsMet(ctx, ReqBreakWall(10), &variants); m == nil {
		t.Fatalf("expected missing weapon for wall break")
	}

	inv.Grant(inventory.SkillItem(inventory.Spear), 1)
	variants = orbs.Variants{{Energy: 10}}
	if m := IsMet(ctx, ReqBreakWall(10), &variants); m != nil {
		t.Fatalf("expected Spear to break a 10hp wall, got %v", m)
	}
}
