// Package logicgraph implements the compiled reachability graph: the
// Requirement sum type, the orb-variant-threading is_met evaluator, and the
// node/edge structure produced by compiling a Logic DSL source file.
package logicgraph

import (
	"github.com/oriwisp/seedgen/pkg/inventory"
	"github.com/oriwisp/seedgen/pkg/worldsettings"
)

// Kind discriminates the Requirement variants.
type Kind int

const (
	Free Kind = iota
	Impossible
	DifficultyAtLeast
	NormalGameDifficulty
	Trick
	SkillReq
	EnergySkill
	NonConsumingEnergySkill
	SpiritLightReq
	GorlekOreReq
	KeystoneReq
	ShardReq
	TeleporterReq
	Water
	StateReq
	Damage
	Danger
	BreakWall
	Boss
	ShurikenBreak
	SentryBreak
	CombatReq
	And
	Or
)

// CombatEntry pairs an enemy with how many of it must be defeated.
type CombatEntry struct {
	Enemy Enemy
	Count int
}

// Requirement is a node in the recursive Requirement sum type described by
// the logic graph's data model. Only the fields relevant to Kind are
// meaningful; zero-value fields elsewhere are ignored.
type Requirement struct {
	Kind Kind

	Difficulty worldsettings.Difficulty // DifficultyAtLeast
	TrickName  string                   // Trick
	Skill      inventory.Skill          // SkillReq, EnergySkill, NonConsumingEnergySkill
	Count      int                      // EnergySkill use count; SpiritLight/GorlekOre/Keystone amount
	Shard      inventory.Shard          // ShardReq
	Teleporter string                   // TeleporterReq
	StateNode  int                      // StateReq: index of the referenced node
	Amount     float64                  // Damage/Danger/BreakWall/Boss/ShurikenBreak/SentryBreak hp
	Combat     []CombatEntry            // CombatReq
	Children   []Requirement            // And, Or
}

// Constructors. These keep call sites in the parser and tests readable
// without repeating the Requirement{Kind: ...} boilerplate everywhere.

func ReqFree() Requirement       { return Requirement{Kind: Free} }
func ReqImpossible() Requirement { return Requirement{Kind: Impossible} }

func ReqDifficulty(d worldsettings.Difficulty) Requirement {
	return Requirement{Kind: DifficultyAtLeast, Difficulty: d}
}
func ReqNormalGameDifficulty() Requirement { return Requirement{Kind: NormalGameDifficulty} }
func ReqTrick(name string) Requirement     { return Requirement{Kind: Trick, TrickName: name} }
func ReqSkill(s inventory.Skill) Requirement {
	return Requirement{Kind: SkillReq, Skill: s}
}
func ReqEnergySkill(s inventory.Skill, count int) Requirement {
	return Requirement{Kind: EnergySkill, Skill: s, Count: count}
}
func ReqNonConsumingEnergySkill(s inventory.Skill) Requirement {
	return Requirement{Kind: NonConsumingEnergySkill, Skill: s}
}
func ReqSpiritLight(n int) Requirement { return Requirement{Kind: SpiritLightReq, Count: n} }
func ReqGorlekOre(n int) Requirement   { return Requirement{Kind: GorlekOreReq, Count: n} }
func ReqKeystone(n int) Requirement    { return Requirement{Kind: KeystoneReq, Count: n} }
func ReqShard(s inventory.Shard) Requirement {
	return Requirement{Kind: ShardReq, Shard: s}
}
func ReqTeleporter(name string) Requirement {
	return Requirement{Kind: TeleporterReq, Teleporter: name}
}
func ReqWater() Requirement           { return Requirement{Kind: Water} }
func ReqState(nodeIdx int) Requirement { return Requirement{Kind: StateReq, StateNode: nodeIdx} }
func ReqDamage(amount float64) Requirement { return Requirement{Kind: Damage, Amount: amount} }
func ReqDanger(amount float64) Requirement { return Requirement{Kind: Danger, Amount: amount} }
func ReqBreakWall(hp float64) Requirement  { return Requirement{Kind: BreakWall, Amount: hp} }
func ReqBoss(hp float64) Requirement       { return Requirement{Kind: Boss, Amount: hp} }
func ReqShurikenBreak(hp float64) Requirement {
	return Requirement{Kind: ShurikenBreak, Amount: hp}
}
func ReqSentryBreak(hp float64) Requirement {
	return Requirement{Kind: SentryBreak, Amount: hp}
}
func ReqCombat(entries ...CombatEntry) Requirement {
	return Requirement{Kind: CombatReq, Combat: entries}
}
func ReqAnd(children ...Requirement) Requirement { return Requirement{Kind: And, Children: children} }
func ReqOr(children ...Requirement) Requirement  { return Requirement{Kind: Or, Children: children} }
