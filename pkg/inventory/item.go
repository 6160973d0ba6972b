// Package inventory implements the Item → count inventory monoid and the
// weapon-cost / damage-modifier model used to price combat requirements.
package inventory

import "fmt"

// Kind discriminates the broad categories of grantable item.
type Kind int

const (
	KindSpiritLight Kind = iota
	KindResource
	KindSkill
	KindShard
	KindTeleporter
	KindWater
)

// Resource is a stackable world resource other than Spirit Light.
type Resource int

const (
	HealthFragment Resource = iota
	EnergyFragment
	GorlekOre
	Keystone
	ShardSlot
)

func (r Resource) String() string {
	switch r {
	case HealthFragment:
		return "HealthFragment"
	case EnergyFragment:
		return "EnergyFragment"
	case GorlekOre:
		return "GorlekOre"
	case Keystone:
		return "Keystone"
	case ShardSlot:
		return "ShardSlot"
	default:
		return fmt.Sprintf("Resource(%d)", int(r))
	}
}

// Item identifies a single grantable thing. Only the field matching Kind is
// meaningful; Item is comparable so it can key an Inventory map directly.
type Item struct {
	Kind       Kind
	Resource   Resource
	Skill      Skill
	Shard      Shard
	Teleporter string
}

// SpiritLightItem is the canonical Spirit Light item key. Granting
// SpiritLight(k) n times always folds into this single key with an amount of
// k*n — see Inventory.Grant.
var SpiritLightItem = Item{Kind: KindSpiritLight}

// WaterItem represents having drunk from Clean Water (a single-instance
// world flag gating Water-tagged requirements).
var WaterItem = Item{Kind: KindWater}

func ResourceItem(r Resource) Item { return Item{Kind: KindResource, Resource: r} }
func SkillItem(s Skill) Item       { return Item{Kind: KindSkill, Skill: s} }
func ShardItem(s Shard) Item       { return Item{Kind: KindShard, Shard: s} }
func TeleporterItem(name string) Item {
	return Item{Kind: KindTeleporter, Teleporter: name}
}

// IsSingleInstance reports whether granting this item more than once must
// saturate at a count of 1 rather than accumulate (skills, shards,
// teleporters, clean water: you either have the thing or you don't).
func (i Item) IsSingleInstance() bool {
	switch i.Kind {
	case KindSkill, KindShard, KindTeleporter, KindWater:
		return true
	case KindResource:
		return false
	default:
		return false
	}
}

func (i Item) String() string {
	switch i.Kind {
	case KindSpiritLight:
		return "SpiritLight"
	case KindResource:
		return i.Resource.String()
	case KindSkill:
		return i.Skill.String()
	case KindShard:
		return i.Shard.String()
	case KindTeleporter:
		return "Teleporter(" + i.Teleporter + ")"
	case KindWater:
		return "Water"
	default:
		return "Item(?)"
	}
}
