package inventory

import "fmt"

// Shard is an equipable passive modifier. Owning a shard is single-instance;
// whether it is "active" in the damage model also depends on available
// shard slots, consumed greedily in the priority order DamageMod applies.
type Shard int

const (
	Overcharge Shard = iota
	Wingclip
	Splinter
	SpiritSurge
	LastStand
	Reckless
	Lifeforce
	Finesse
	Resilience
	Vitality
	Energy
	LifePact
)

var shardNames = map[Shard]string{
	Overcharge: "Overcharge", Wingclip: "Wingclip", Splinter: "Splinter",
	SpiritSurge: "SpiritSurge", LastStand: "LastStand", Reckless: "Reckless",
	Lifeforce: "Lifeforce", Finesse: "Finesse", Resilience: "Resilience",
	Vitality: "Vitality", Energy: "Energy", LifePact: "LifePact",
}

func (s Shard) String() string {
	if name, ok := shardNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shard(%d)", int(s))
}
