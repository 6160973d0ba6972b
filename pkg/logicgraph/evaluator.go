package logicgraph

import (
	"math"

	"github.com/oriwisp/seedgen/pkg/inventory"
	"github.com/oriwisp/seedgen/pkg/orbs"
	"github.com/oriwisp/seedgen/pkg/uberstate"
	"github.com/oriwisp/seedgen/pkg/worldsettings"
)

// Context bundles everything IsMet needs to know about the player's current
// state besides the requirement being checked and the orb variants it is
// threading through. HasReached and NodeUberState are supplied by the
// compiled graph so this package does not need to depend on its node layout
// directly.
type Context struct {
	Inventory *inventory.Inventory
	Settings  *worldsettings.WorldSettings

	// HasReached reports whether the node at the given index is already in
	// the reached set.
	HasReached func(node int) bool
	// NodeUberState returns the uber-state identifier gating the given node,
	// if the node is itself a pickup/state rather than a plain anchor.
	NodeUberState func(node int) (uberstate.Identifier, bool)
}

// IsMet evaluates req against ctx, threading variants (the Pareto frontier
// of orb states available along the path so far) through any cost the
// requirement imposes. A nil return means the requirement is satisfied,
// possibly after variants has been narrowed or extended in place; a non-nil
// return explains what was missing and leaves variants unspecified.
func IsMet(ctx *Context, req Requirement, variants *orbs.Variants) *Missing {
	switch req.Kind {
	case Free:
		return nil
	case Impossible:
		m := missingImpossible()
		return &m
	case DifficultyAtLeast:
		return settingMet(ctx.Settings.Difficulty >= req.Difficulty)
	case NormalGameDifficulty:
		return settingMet(!ctx.Settings.Hard)
	case Trick:
		return settingMet(ctx.Settings.HasTrick(req.TrickName))
	case SkillReq:
		return skillMet(ctx, req.Skill)
	case EnergySkill:
		if m := skillMet(ctx, req.Skill); m != nil {
			return m
		}
		cost := ctx.Inventory.UseCost(req.Skill, ctx.Settings) * float64(req.Count)
		return costIsMet(ctx, cost, true, variants)
	case NonConsumingEnergySkill:
		if m := skillMet(ctx, req.Skill); m != nil {
			return m
		}
		cost := ctx.Inventory.UseCost(req.Skill, ctx.Settings)
		return costIsMet(ctx, cost, false, variants)
	case SpiritLightReq:
		have := int(ctx.Inventory.Get(inventory.SpiritLightItem))
		return uberStateMet(have >= req.Count, spiritLightUberID)
	case GorlekOreReq:
		have := int(ctx.Inventory.Get(inventory.ResourceItem(inventory.GorlekOre)))
		return uberStateMet(have >= req.Count, gorlekOreUberID)
	case KeystoneReq:
		have := int(ctx.Inventory.Get(inventory.ResourceItem(inventory.Keystone)))
		return uberStateMet(have >= req.Count, keystoneUberID)
	case ShardReq:
		return shardMet(ctx, req.Shard)
	case TeleporterReq:
		return uberStateMet(ctx.Inventory.Has(inventory.TeleporterItem(req.Teleporter), 1), teleporterUberID(req.Teleporter))
	case Water:
		return uberStateMet(ctx.Inventory.Has(inventory.WaterItem, 1), cleanWaterUberID)
	case StateReq:
		if ctx.HasReached(req.StateNode) {
			return nil
		}
		if ctx.NodeUberState != nil {
			if id, ok := ctx.NodeUberState(req.StateNode); ok {
				m := missingUberState(id)
				return &m
			}
		}
		m := missingLogicalState(req.StateNode)
		return &m
	case Damage:
		cost := req.Amount * ctx.Inventory.DefenseMod(ctx.Settings)
		return healthIsMet(ctx, cost, true, variants)
	case Danger:
		cost := req.Amount * ctx.Inventory.DefenseMod(ctx.Settings)
		return healthIsMet(ctx, cost, false, variants)
	case BreakWall:
		return destroyCostMet(ctx, req.Amount, true, false, variants)
	case Boss:
		return destroyCostMet(ctx, req.Amount, false, false, variants)
	case ShurikenBreak:
		if m := skillMet(ctx, inventory.Shuriken); m != nil {
			return m
		}
		clipMod := 3.0
		if ctx.Settings.Difficulty >= worldsettings.Unsafe {
			clipMod = 2.0
		}
		cost := ctx.Inventory.DestroyCostWith(req.Amount, inventory.Shuriken, false, ctx.Settings) * clipMod
		return costIsMet(ctx, cost, true, variants)
	case SentryBreak:
		if m := skillMet(ctx, inventory.Sentry); m != nil {
			return m
		}
		cost := ctx.Inventory.DestroyCostWith(req.Amount, inventory.Sentry, false, ctx.Settings) * 6.25
		return costIsMet(ctx, cost, true, variants)
	case CombatReq:
		return combatMet(ctx, req.Combat, variants)
	case And:
		for _, child := range req.Children {
			if m := IsMet(ctx, child, variants); m != nil {
				return m
			}
		}
		return nil
	case Or:
		return orMet(ctx, req.Children, variants)
	default:
		m := missingImpossible()
		return &m
	}
}

func settingMet(condition bool) *Missing {
	if condition {
		return nil
	}
	m := missingImpossible()
	return &m
}

func skillMet(ctx *Context, s inventory.Skill) *Missing {
	return uberStateMet(ctx.Inventory.Has(inventory.SkillItem(s), 1), skillUberID(s))
}

func shardMet(ctx *Context, s inventory.Shard) *Missing {
	return uberStateMet(ctx.Inventory.Has(inventory.ShardItem(s), 1), shardUberID(s))
}

func uberStateMet(condition bool, id uberstate.Identifier) *Missing {
	if condition {
		return nil
	}
	m := missingUberState(id)
	return &m
}

func anySkillMet(ctx *Context, skills []inventory.Skill) *Missing {
	for _, s := range skills {
		if ctx.Inventory.Has(inventory.SkillItem(s), 1) {
			return nil
		}
	}
	return missingAnySkill(skills)
}

func missingAnySkill(skills []inventory.Skill) *Missing {
	reasons := make([]Missing, len(skills))
	for i, s := range skills {
		reasons[i] = missingUberState(skillUberID(s))
	}
	m := missingAny(reasons)
	return &m
}

func destroyCostMet(ctx *Context, targetHealth float64, targetIsWall, flyingTarget bool, variants *orbs.Variants) *Missing {
	cost, ok := ctx.Inventory.DestroyCost(targetHealth, targetIsWall, flyingTarget, ctx.Settings)
	if !ok {
		return missingAnySkill(inventory.WeaponsFor(ctx.Settings.Difficulty, targetIsWall))
	}
	return costIsMet(ctx, cost, true, variants)
}

// enemyMovementMet checks the precondition that the player can actually
// engage enemies with aerial, dangerous, or Bat-only movement requirements,
// before pricing the fight itself. Below Unsafe logic the game assumes these
// movement options are necessary; at Unsafe logic, any approach is assumed
// possible.
func enemyMovementMet(ctx *Context, entries []CombatEntry) *Missing {
	if ctx.Settings.Difficulty >= worldsettings.Unsafe {
		return nil
	}
	var aerial, dangerous, bat bool
	for _, e := range entries {
		aerial = aerial || e.Enemy.Aerial
		dangerous = dangerous || e.Enemy.Dangerous
		bat = bat || e.Enemy.IsBat()
	}
	if aerial {
		if m := aerialMet(ctx); m != nil {
			return m
		}
	}
	if dangerous {
		if m := dangerousMet(ctx); m != nil {
			return m
		}
	}
	if bat {
		if m := skillMet(ctx, inventory.Bash); m != nil {
			return m
		}
	}
	return nil
}

func aerialMet(ctx *Context) *Missing {
	if ctx.Settings.Difficulty < worldsettings.Gorlek {
		return anySkillMet(ctx, []inventory.Skill{inventory.DoubleJump, inventory.Launch})
	}
	return anySkillMet(ctx, []inventory.Skill{inventory.DoubleJump, inventory.Launch, inventory.Bash})
}

func dangerousMet(ctx *Context) *Missing {
	return anySkillMet(ctx, []inventory.Skill{inventory.DoubleJump, inventory.Dash, inventory.Bash, inventory.Launch})
}

// combatMet prices a sequence of enemy (or pseudo-enemy) encounters,
// charging weapon-use energy for each one in turn and flushing the running
// cost whenever an EnergyRefill entry is reached (since the refill can only
// be banked after everything before it has actually been paid for).
func combatMet(ctx *Context, entries []CombatEntry, variants *orbs.Variants) *Missing {
	if m := enemyMovementMet(ctx, entries); m != nil {
		return m
	}

	shieldWeapons := ctx.Inventory.OwnedShieldWeapons(ctx.Settings)
	var shieldWeapon *inventory.Skill
	if len(shieldWeapons) > 0 {
		shieldWeapon = &shieldWeapons[0]
	}

	cost := 0.0
	for _, entry := range entries {
		enemy := entry.Enemy
		amount := float64(entry.Count)

		if enemy.IsEnergyRefill() {
			if m := costIsMet(ctx, cost, true, variants); m != nil {
				return m
			}
			for i := range *variants {
				ctx.Inventory.Recharge(&(*variants)[i], enemy.EnergyRefill, ctx.Settings.Difficulty)
			}
			cost = 0.0
			continue
		}
		if enemy.Sandworm {
			if ctx.Inventory.Has(inventory.SkillItem(inventory.Burrow), 1) {
				continue
			} else if ctx.Settings.Difficulty < worldsettings.Unsafe {
				m := missingUberState(skillUberID(inventory.Burrow))
				return &m
			}
		}

		health := enemy.HP
		if enemy.Shielded {
			if shieldWeapon == nil {
				return missingAnySkill(inventory.ShieldWeapons(ctx.Settings.Difficulty))
			}
			cost += ctx.Inventory.UseCost(*shieldWeapon, ctx.Settings) * amount
			health = math.Max(health-shieldWeapon.BurnDamage(), 0)
		} else if enemy.Armored && ctx.Settings.Difficulty < worldsettings.Unsafe {
			health *= 2.0
		}

		rangedWeapon := enemy.Ranged && ctx.Settings.Difficulty < worldsettings.Unsafe
		var enemyCost float64
		var ok bool
		if rangedWeapon {
			enemyCost, ok = ctx.Inventory.DestroyCostRanged(health, enemy.Flying, ctx.Settings)
		} else {
			enemyCost, ok = ctx.Inventory.DestroyCost(health, false, enemy.Flying, ctx.Settings)
		}
		if !ok {
			if rangedWeapon {
				return missingAnySkill(inventory.RangedWeapons(ctx.Settings.Difficulty))
			}
			return missingAnySkill(inventory.WeaponsFor(ctx.Settings.Difficulty, false))
		}
		cost += enemyCost * amount
	}

	return costIsMet(ctx, cost, true, variants)
}

func orMet(ctx *Context, children []Requirement, variants *orbs.Variants) *Missing {
	var cheapest orbs.Variants
	var missingList []Missing

	for _, child := range children {
		branch := append(orbs.Variants{}, (*variants)...)
		if m := IsMet(ctx, child, &branch); m == nil {
			if len(cheapest) == 0 {
				cheapest = branch
			} else {
				cheapest = orbs.Either(cheapest, branch)
			}
			if len(cheapest) > 0 && cheapest[0] == (orbs.Orbs{}) {
				break
			}
		} else if !missingContains(missingList, *m) {
			missingList = append(missingList, *m)
		}
	}

	*variants = cheapest
	if len(cheapest) == 0 {
		m := missingAny(missingList)
		return &m
	}
	return nil
}

func missingContains(list []Missing, m Missing) bool {
	for _, existing := range list {
		if missingEqual(existing, m) {
			return true
		}
	}
	return false
}

func missingEqual(a, b Missing) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case MissingUberState:
		return a.Uber == b.Uber
	case MissingLogicalState:
		return a.Node == b.Node
	case MissingAny:
		if len(a.Any) != len(b.Any) {
			return false
		}
		for i := range a.Any {
			if !missingEqual(a.Any[i], b.Any[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// costIsMet narrows variants to those that can afford cost, consuming it
// from energy when consuming is true. Life Pact can open up a Regenerate
// branch that trades health for the missing energy; any such branch is
// appended to the surviving set rather than replacing it, since both the
// unregenerated and regenerated outcomes remain valid continuations.
func costIsMet(ctx *Context, cost float64, consuming bool, variants *orbs.Variants) *Missing {
	var added []orbs.Orbs
	kept := make(orbs.Variants, 0, len(*variants))
	for _, o := range *variants {
		candidate := o
		if orbsMeetCost(ctx, &candidate, &added, cost, consuming) {
			kept = append(kept, candidate)
		}
	}
	kept = append(kept, added...)
	*variants = kept
	if len(kept) == 0 {
		m := missingOrbs()
		return &m
	}
	return nil
}

func hasLifePact(ctx *Context) bool {
	return ctx.Settings.Difficulty >= worldsettings.LifePactTier && ctx.Inventory.Has(inventory.ShardItem(inventory.LifePact), 1)
}

// orbsMeetCost is the innermost affordability check, including the Life
// Pact regeneration spiral: below Unsafe logic this never triggers, but with
// Life Pact equipped at or above its threshold, missing energy can be paid
// for with health instead, looping through Regenerate if even that health
// isn't available yet.
func orbsMeetCost(ctx *Context, o *orbs.Orbs, added *[]orbs.Orbs, cost float64, consuming bool) bool {
	pact := hasLifePact(ctx)

	if pact && consuming && ctx.Inventory.Has(inventory.SkillItem(inventory.Regenerate), 1) {
		gameThinksRegenCost := inventory.Regenerate.EnergyCost()
		regenCost := ctx.Inventory.UseCost(inventory.Regenerate, ctx.Settings)
		higherCost := math.Max(regenCost, gameThinksRegenCost)

		if o.Energy >= higherCost && ctx.Inventory.MaxHealth(ctx.Settings.Difficulty)-o.Health > regenCost {
			newOrbs := *o
			newOrbs.Energy -= regenCost
			ctx.Inventory.Heal(&newOrbs, 30.0, ctx.Settings.Difficulty)
			if orbsMeetCost(ctx, &newOrbs, added, cost, consuming) {
				*added = append(*added, newOrbs)
			}
		}
	}

	if o.Energy >= cost {
		if consuming {
			o.Energy -= cost
		}
		return true
	}
	if !pact {
		return false
	}

	for {
		missingEnergy := cost - o.Energy
		gameThinksHealthCost := missingEnergy * 10.0
		healthCost := gameThinksHealthCost * ctx.Inventory.DefenseMod(ctx.Settings)
		higherCost := math.Max(healthCost, gameThinksHealthCost)

		if o.Health > higherCost {
			o.Health -= healthCost
			if consuming {
				o.Energy = 0.0
			} else {
				ctx.Inventory.Recharge(o, missingEnergy, ctx.Settings.Difficulty)
			}
			return true
		}
		if !regenerateAsNeeded(ctx, higherCost, o) {
			return false
		}
	}
}

func healthIsMet(ctx *Context, cost float64, consuming bool, variants *orbs.Variants) *Missing {
	kept := make(orbs.Variants, 0, len(*variants))
	for _, o := range *variants {
		candidate := o
		met := candidate.Health > cost ||
			(ctx.Inventory.Has(inventory.SkillItem(inventory.Regenerate), 1) &&
				ctx.Inventory.MaxHealth(ctx.Settings.Difficulty) > cost &&
				regenerateAsNeeded(ctx, cost, &candidate))
		if consuming {
			candidate.Health -= cost
		}
		if met {
			kept = append(kept, candidate)
		}
	}
	*variants = kept
	if len(kept) == 0 {
		m := missingOrbs()
		return &m
	}
	return nil
}

// regenerateAsNeeded heals o in 30-HP chunks (the in-game Regenerate amount)
// until cost is affordable, spending energy for each chunk and reporting
// whether the game's own affordability check over that final chunk still
// holds.
func regenerateAsNeeded(ctx *Context, cost float64, o *orbs.Orbs) bool {
	regens := math.Ceil((cost - o.Health) / 30.0)
	if o.Health+30.0*regens <= cost {
		regens++
	}
	ctx.Inventory.Heal(o, 30.0*regens, ctx.Settings.Difficulty)

	gameThinksRegenCost := inventory.Regenerate.EnergyCost()
	regenCost := ctx.Inventory.UseCost(inventory.Regenerate, ctx.Settings)
	o.Energy -= regenCost * regens
	return o.Energy >= 0 && o.Energy+regenCost-gameThinksRegenCost >= 0
}
