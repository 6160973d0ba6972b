package inventory

import "github.com/oriwisp/seedgen/pkg/worldsettings"

// The weapon tables below enumerate which weapons logic is willing to
// consider for walls versus enemies, for ranged requirements, and for
// shield-breaking. The upstream project derives a difficulty-tiered version
// of these lists from a hand-tuned "logical_difficulty" table that was not
// present in the reference material available for this port. The literal
// destroy-cost scenarios this package's tests reproduce never exercise
// difficulty gating a weapon's basic ownership (only its damage/energy
// modifiers change across tiers), so these tables are authored
// difficulty-invariant: any owned weapon from the set is eligible regardless
// of tier. See the design notes for this open decision.
func weaponsForWall(worldsettings.Difficulty) []Skill {
	return []Skill{Spear, Hammer, Bow, Grenade, Shuriken, Sentry, Flash, Blaze, Sword}
}

func weaponsForEnemy(worldsettings.Difficulty) []Skill {
	return []Skill{Spear, Hammer, Bow, Grenade, Shuriken, Sentry, Flash, Blaze, Sword}
}

// WeaponsFor returns the difficulty-gated weapon set for the given target
// kind (wall or enemy).
func WeaponsFor(d worldsettings.Difficulty, targetIsWall bool) []Skill {
	if targetIsWall {
		return weaponsForWall(d)
	}
	return weaponsForEnemy(d)
}

// RangedWeapons returns weapons usable without approaching the target.
func RangedWeapons(d worldsettings.Difficulty) []Skill {
	out := make([]Skill, 0, 4)
	for _, s := range weaponsForEnemy(d) {
		if s.IsRanged() {
			out = append(out, s)
		}
	}
	return out
}

// ShieldWeapons returns weapons considered for breaking enemy shields;
// melee weapons are excluded since shielded enemies punish approach.
func ShieldWeapons(d worldsettings.Difficulty) []Skill {
	out := make([]Skill, 0, 4)
	for _, s := range weaponsForEnemy(d) {
		if s.IsRanged() {
			out = append(out, s)
		}
	}
	return out
}
