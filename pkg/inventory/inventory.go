package inventory

import (
	"math"

	"github.com/oriwisp/seedgen/pkg/orbs"
	"github.com/oriwisp/seedgen/pkg/worldsettings"
)

// Inventory is a mapping from Item to count. The zero value is an empty
// inventory ready to use.
type Inventory struct {
	items map[Item]uint32
}

// New returns an empty inventory.
func New() *Inventory {
	return &Inventory{items: make(map[Item]uint32)}
}

// Grant adds amount of item, folding SpiritLight(k) into the canonical
// SpiritLight(1) key with its count multiplied by k, and saturating
// single-instance items at 1.
func (inv *Inventory) Grant(item Item, amount uint32) {
	if amount == 0 {
		return
	}
	if inv.items == nil {
		inv.items = make(map[Item]uint32)
	}
	single := item.IsSingleInstance()
	if item.Kind == KindSpiritLight {
		// The call site encodes the stacked amount as `amount`; callers that
		// want to grant k spirit light n times should call Grant(SpiritLightItem, k*n)
		// directly, matching the canonical single-key storage.
	}
	if single {
		inv.items[item] = 1
		return
	}
	inv.items[item] += amount
}

// Remove subtracts amount of item, deleting the key if it would go to zero
// or below.
func (inv *Inventory) Remove(item Item, amount uint32) {
	prior, ok := inv.items[item]
	if !ok {
		return
	}
	if amount >= prior {
		delete(inv.items, item)
		return
	}
	inv.items[item] = prior - amount
}

// Has reports whether the inventory holds at least amount of item.
func (inv *Inventory) Has(item Item, amount uint32) bool {
	return inv.items[item] >= amount
}

// Get returns the owned count of item (0 if absent).
func (inv *Inventory) Get(item Item) uint32 {
	return inv.items[item]
}

// Contains reports whether inv holds at least as much of every item that
// other holds (pointwise >=).
func (inv *Inventory) Contains(other *Inventory) bool {
	for item, amount := range other.items {
		if !inv.Has(item, amount) {
			return false
		}
	}
	return true
}

// Merge folds other's counts into inv via Grant, preserving single-instance
// saturation and Spirit Light canonicalization.
func (inv *Inventory) Merge(other *Inventory) {
	for item, amount := range other.items {
		inv.Grant(item, amount)
	}
}

// Clone returns an independent copy.
func (inv *Inventory) Clone() *Inventory {
	out := New()
	for item, amount := range inv.items {
		out.items[item] = amount
	}
	return out
}

// MaxHealth returns 5 per health fragment, +10 with Vitality at or above its
// unlock tier.
func (inv *Inventory) MaxHealth(d worldsettings.Difficulty) float64 {
	health := float64(inv.Get(ResourceItem(HealthFragment))) * 5
	if d >= worldsettings.Vitality && inv.Has(ShardItem(Vitality), 1) {
		health += 10
	}
	return health
}

// MaxEnergy returns 0.5 per energy fragment, +1 with the Energy shard at or
// above its unlock tier.
func (inv *Inventory) MaxEnergy(d worldsettings.Difficulty) float64 {
	energy := float64(inv.Get(ResourceItem(EnergyFragment))) * 0.5
	if d >= worldsettings.EnergyShard && inv.Has(ShardItem(Energy), 1) {
		energy += 1
	}
	return energy
}

// MaxOrbs bundles MaxHealth/MaxEnergy as a single Orbs pair.
func (inv *Inventory) MaxOrbs(d worldsettings.Difficulty) orbs.Orbs {
	return orbs.Orbs{Health: inv.MaxHealth(d), Energy: inv.MaxEnergy(d)}
}

// Heal increases o.Health by amount, clamped to MaxHealth.
func (inv *Inventory) Heal(o *orbs.Orbs, amount float64, d worldsettings.Difficulty) {
	o.Health = math.Min(o.Health+amount, inv.MaxHealth(d))
}

// Recharge increases o.Energy by amount, clamped to MaxEnergy.
func (inv *Inventory) Recharge(o *orbs.Orbs, amount float64, d worldsettings.Difficulty) {
	o.Energy = math.Min(o.Energy+amount, inv.MaxEnergy(d))
}

// DamageMod computes the multiplier applied to a weapon's base damage.
// flyingTarget enables the Wingclip bonus; bow indicates the weapon being
// priced is Bow, enabling Splinter's multiplicative bonus. Shard bonuses
// below Gorlek's DamageBuffs threshold never activate.
func (inv *Inventory) DamageMod(flyingTarget, bow bool, w *worldsettings.WorldSettings) float64 {
	mod := 1.0
	if w.Difficulty < worldsettings.DamageBuffs {
		return mod
	}
	if inv.Has(SkillItem(GladesAncestralLight), 1) {
		mod += 0.25
	}
	if inv.Has(SkillItem(InkwaterAncestralLight), 1) {
		mod += 0.25
	}

	slots := inv.Get(ResourceItem(ShardSlot))
	splinter := false

	if flyingTarget && slots > 0 && inv.Has(ShardItem(Wingclip), 1) {
		mod += 1.0
		slots--
	}
	if slots > 0 && bow && inv.Has(ShardItem(Splinter), 1) {
		splinter = true
		slots--
	}
	if slots > 0 && inv.Has(ShardItem(SpiritSurge), 1) {
		mod += float64(inv.Get(SpiritLightItem) / 10000)
		slots--
	}
	if slots > 0 && inv.Has(ShardItem(LastStand), 1) {
		mod += 0.2
		slots--
	}
	if slots > 0 && inv.Has(ShardItem(Reckless), 1) {
		mod += 0.15
		slots--
	}
	if slots > 0 && inv.Has(ShardItem(Lifeforce), 1) {
		mod += 0.1
		slots--
	}
	if slots > 0 && inv.Has(ShardItem(Finesse), 1) {
		mod += 0.05
	}
	if splinter {
		mod *= 1.5 // Splinter stacks multiplicatively where everything else stacks additively.
	}
	return mod
}

// EnergyMod doubles energy costs below Unsafe (the game halves skill energy
// cost display at Unsafe logic). At Unsafe, Overcharge halves them instead;
// the doubling and Overcharge's halving never combine.
func (inv *Inventory) EnergyMod(w *worldsettings.WorldSettings) float64 {
	if w.Difficulty < worldsettings.Unsafe {
		return 2.0
	}
	if inv.Has(ShardItem(Overcharge), 1) {
		return 0.5
	}
	return 1.0
}

// DefenseMod scales incoming damage: Resilience softens it, hard mode
// doubles it.
func (inv *Inventory) DefenseMod(w *worldsettings.WorldSettings) float64 {
	mod := 1.0
	if w.Difficulty >= worldsettings.Resilience && inv.Has(ShardItem(Resilience), 1) {
		mod = 0.9
	}
	if w.Hard {
		mod *= 2.0
	}
	return mod
}

// UseCost returns the energy spent using weapon once, after EnergyMod.
func (inv *Inventory) UseCost(weapon Skill, w *worldsettings.WorldSettings) float64 {
	return weapon.EnergyCost() * inv.EnergyMod(w)
}

// WeaponStats returns (damage, cost) for weapon after all modifiers.
func (inv *Inventory) WeaponStats(weapon Skill, flyingTarget bool, w *worldsettings.WorldSettings) (damage, cost float64) {
	mod := inv.DamageMod(flyingTarget, weapon == Bow, w)
	damage = weapon.Damage(false)*mod + weapon.BurnDamage()
	cost = weapon.EnergyCost() * inv.EnergyMod(w)
	return damage, cost
}

// DestroyCostWith returns the energy required to destroy targetHealth using
// only weapon.
func (inv *Inventory) DestroyCostWith(targetHealth float64, weapon Skill, flyingTarget bool, w *worldsettings.WorldSettings) float64 {
	damage, cost := inv.WeaponStats(weapon, flyingTarget, w)
	return math.Ceil(targetHealth/damage) * cost
}

// destroyCostWithAnyOf implements the greedy weapon-selection heuristic: use
// the best damage-per-energy weapon for as many "perfect" hits as possible,
// then finish the remainder with whichever available weapon is cheapest for
// that last partial hit. It is not claimed optimal for arbitrary weapon
// tables, only for the default numbers the game ships with.
func (inv *Inventory) destroyCostWithAnyOf(targetHealth float64, weapons []Skill, flyingTarget bool, w *worldsettings.WorldSettings) (float64, bool) {
	if len(weapons) == 0 {
		return 0, false
	}
	if weapons[0].EnergyCost() == 0 {
		return 0, true
	}

	type stat struct {
		damage, cost, dpe float64
	}
	stats := make([]stat, len(weapons))
	bestIdx := 0
	for i, weapon := range weapons {
		damage, cost := inv.WeaponStats(weapon, flyingTarget, w)
		dpe := damage / cost
		stats[i] = stat{damage, cost, dpe}
		if dpe > stats[bestIdx].dpe {
			bestIdx = i
		}
	}

	best := stats[bestIdx]
	optimalHits := math.Floor(targetHealth / best.damage)
	remaining := targetHealth - optimalHits*best.damage
	cost := optimalHits * best.cost

	finish := math.Inf(1)
	for _, s := range stats {
		c := math.Ceil(remaining/s.damage) * s.cost
		if c < finish {
			finish = c
		}
	}
	return cost + finish, true
}

func (inv *Inventory) ownedFrom(candidates []Skill) []Skill {
	out := make([]Skill, 0, len(candidates))
	for _, s := range candidates {
		if inv.Has(SkillItem(s), 1) {
			out = append(out, s)
		}
	}
	return out
}

// OwnedWeapons returns the owned subset of the difficulty-gated weapon table
// for the given target kind.
func (inv *Inventory) OwnedWeapons(targetIsWall bool, w *worldsettings.WorldSettings) []Skill {
	return inv.ownedFrom(WeaponsFor(w.Difficulty, targetIsWall))
}

// OwnedRangedWeapons returns the owned subset of ranged weapons.
func (inv *Inventory) OwnedRangedWeapons(w *worldsettings.WorldSettings) []Skill {
	return inv.ownedFrom(RangedWeapons(w.Difficulty))
}

// OwnedShieldWeapons returns the owned subset of shield-breaking weapons.
func (inv *Inventory) OwnedShieldWeapons(w *worldsettings.WorldSettings) []Skill {
	return inv.ownedFrom(ShieldWeapons(w.Difficulty))
}

// DestroyCost returns the energy required to destroy a target of the given
// health, or false if no weapon is available to attack it.
func (inv *Inventory) DestroyCost(targetHealth float64, targetIsWall, flyingTarget bool, w *worldsettings.WorldSettings) (float64, bool) {
	return inv.destroyCostWithAnyOf(targetHealth, inv.OwnedWeapons(targetIsWall, w), flyingTarget, w)
}

// DestroyCostRanged is DestroyCost restricted to ranged weapons.
func (inv *Inventory) DestroyCostRanged(targetHealth float64, flyingTarget bool, w *worldsettings.WorldSettings) (float64, bool) {
	return inv.destroyCostWithAnyOf(targetHealth, inv.OwnedRangedWeapons(w), flyingTarget, w)
}

// DestroyCostWithAnyOf exposes the shield-weapon cost computation used by
// the combat requirement evaluator, given an explicit weapon list (e.g. a
// single shield-breaking weapon).
func (inv *Inventory) DestroyCostWithAnyOf(targetHealth float64, weapons []Skill, flyingTarget bool, w *worldsettings.WorldSettings) (float64, bool) {
	return inv.destroyCostWithAnyOf(targetHealth, weapons, flyingTarget, w)
}

// ProgressionWeapons returns the weapons worth acquiring next at this
// difficulty: the owned+candidate weapon table sorted by damage-per-energy
// ascending, truncated at the tier the player already owns (so only
// strictly cheaper-tier upgrades are suggested).
func (inv *Inventory) ProgressionWeapons(targetIsWall bool, w *worldsettings.WorldSettings) []Skill {
	return inv.progressionWeaponsFrom(WeaponsFor(w.Difficulty, targetIsWall), w)
}

func (inv *Inventory) progressionWeaponsFrom(weapons []Skill, w *worldsettings.WorldSettings) []Skill {
	type dpeWeapon struct {
		skill Skill
		dpe   int
	}
	list := make([]dpeWeapon, len(weapons))
	for i, skill := range weapons {
		damage, cost := inv.WeaponStats(skill, false, w)
		list[i] = dpeWeapon{skill, int(damage / cost * 10)}
	}
	// Stable ascending sort by dpe.
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j].dpe < list[j-1].dpe; j-- {
			list[j], list[j-1] = list[j-1], list[j]
		}
	}

	ownedIdx := -1
	for i, e := range list {
		if inv.Has(SkillItem(e.skill), 1) {
			ownedIdx = i
			break
		}
	}
	if ownedIdx < 0 {
		out := make([]Skill, len(list))
		for i, e := range list {
			out[i] = e.skill
		}
		return out
	}

	ownedDPE := list[ownedIdx].dpe
	list = list[:ownedIdx+1]
	list[0], list[ownedIdx] = list[ownedIdx], list[0]

	removeAfter := 0
	for i, e := range list {
		if e.dpe != ownedDPE {
			removeAfter = i
		}
	}
	list = list[:removeAfter+1]
	list[0], list[removeAfter] = list[removeAfter], list[0]

	out := make([]Skill, len(list))
	for i, e := range list {
		out[i] = e.skill
	}
	return out
}
