package inventory

import "fmt"

// Skill enumerates the acquirable abilities, including the subset treated as
// weapons by the damage model. Values follow the source game's naming, not
// its numeric ids (this port has no use for the UberState group/member
// encoding beyond pkg/uberstate, which assigns its own identifiers).
type Skill int

const (
	Bash Skill = iota
	WallJump
	DoubleJump
	Launch
	Glide
	SpiritFlame
	WaterBreath
	Grenade
	Grapple
	Flash
	Spear
	Regenerate
	Bow
	Hammer
	Sword
	Burrow
	Dash
	WaterDash
	Shuriken
	Sentry
	Blaze
	GladesAncestralLight
	InkwaterAncestralLight
)

var skillNames = map[Skill]string{
	Bash: "Bash", WallJump: "WallJump", DoubleJump: "DoubleJump", Launch: "Launch",
	Glide: "Glide", SpiritFlame: "SpiritFlame", WaterBreath: "WaterBreath",
	Grenade: "Grenade", Grapple: "Grapple", Flash: "Flash", Spear: "Spear",
	Regenerate: "Regenerate", Bow: "Bow", Hammer: "Hammer", Sword: "Sword",
	Burrow: "Burrow", Dash: "Dash", WaterDash: "WaterDash", Shuriken: "Shuriken",
	Sentry: "Sentry", Blaze: "Blaze",
	GladesAncestralLight: "GladesAncestralLight", InkwaterAncestralLight: "InkwaterAncestralLight",
}

func (s Skill) String() string {
	if name, ok := skillNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Skill(%d)", int(s))
}

// EnergyCost returns the raw (pre energy_mod) energy spent per use.
func (s Skill) EnergyCost() float64 {
	switch s {
	case Bow:
		return 0.25
	case Shuriken:
		return 0.5
	case Grenade, Flash, Regenerate, Blaze, Sentry:
		return 1.0
	case Spear:
		return 2.0
	default:
		return 0.0
	}
}

// Damage returns the immediate (pre damage_mod) hit damage, excluding burn.
// chargeGrenade selects the charged Grenade throw's higher damage.
func (s Skill) Damage(chargeGrenade bool) float64 {
	switch s {
	case Bow, Sword:
		return 4.0
	case Launch:
		return 5.0
	case Hammer, Flash:
		return 12.0
	case Shuriken:
		return 7.0
	case Grenade:
		if chargeGrenade {
			return 8.0
		}
		return 4.0
	case Spear:
		return 20.0
	case Blaze:
		return 3.0
	case Sentry:
		return 8.8
	default:
		return 0.0
	}
}

// BurnDamage returns the additional damage this skill's hit inflicts over
// time, applied independently of damage_mod.
func (s Skill) BurnDamage() float64 {
	switch s {
	case Grenade:
		return 9.0
	case Blaze:
		return 10.8
	default:
		return 0.0
	}
}

// IsWeapon reports whether this skill can be used to deal damage in combat.
func (s Skill) IsWeapon() bool {
	return s.EnergyCost() > 0 || s == Sword
}

// IsRanged reports whether this weapon can hit a target without closing
// distance, relevant to the sub-Unsafe ranged-weapon requirement on fleeing
// or aerial enemies.
func (s Skill) IsRanged() bool {
	switch s {
	case Bow, Spear, Shuriken, Grenade, Sentry, Flash:
		return true
	default:
		return false
	}
}

// IsWallWeapon reports whether this weapon can be used against breakable
// walls in addition to enemies. Sword's melee swing cannot reach walls from
// range, but can still strike them; this mirrors the default weapon table.
func (s Skill) IsWallWeapon() bool {
	return s.IsWeapon()
}
