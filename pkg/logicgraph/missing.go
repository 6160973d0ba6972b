package logicgraph

import (
	"fmt"

	"github.com/oriwisp/seedgen/pkg/inventory"
	"github.com/oriwisp/seedgen/pkg/uberstate"
)

// MissingKind discriminates the reasons is_met can fail. Missing is
// diagnostic only — the placement driver consuming this engine uses it to
// decide which items to consider acquiring next; it never surfaces as a Go
// error.
type MissingKind int

const (
	MissingImpossible MissingKind = iota
	MissingUberState
	MissingLogicalState
	MissingOrbs
	MissingAny
)

// Missing explains why a requirement was not met.
type Missing struct {
	Kind  MissingKind
	Uber  uberstate.Identifier // MissingUberState
	Node  int                  // MissingLogicalState
	Any   []Missing            // MissingAny
}

func missingImpossible() Missing          { return Missing{Kind: MissingImpossible} }
func missingOrbs() Missing                { return Missing{Kind: MissingOrbs} }
func missingUberState(id uberstate.Identifier) Missing {
	return Missing{Kind: MissingUberState, Uber: id}
}
func missingLogicalState(node int) Missing { return Missing{Kind: MissingLogicalState, Node: node} }
func missingAny(reasons []Missing) Missing  { return Missing{Kind: MissingAny, Any: reasons} }

func (m Missing) String() string {
	switch m.Kind {
	case MissingImpossible:
		return "impossible"
	case MissingUberState:
		return fmt.Sprintf("missing uber-state %s", m.Uber)
	case MissingLogicalState:
		return fmt.Sprintf("missing logical state #%d", m.Node)
	case MissingOrbs:
		return "insufficient orbs"
	case MissingAny:
		return fmt.Sprintf("any of %v", m.Any)
	default:
		return "missing(?)"
	}
}

// Skills, shards, and teleporters each live in their own reserved
// UberIdentifier group so Missing values can point back at the specific
// flag a requirement needed. Groups mirror the source game's convention of
// one fixed group per concept (skills use group 24); the shard/teleporter
// groups are authored for this port since those tables were not present in
// the retrieval pack.
const (
	skillGroup      = 24
	shardGroup      = 25
	teleporterGroup = 26
	resourceGroup   = 27
)

const (
	spiritLightMember int32 = iota
	gorlekOreMember
	keystoneMember
	cleanWaterMember
)

var (
	spiritLightUberID = uberstate.Identifier{Group: resourceGroup, Member: spiritLightMember}
	gorlekOreUberID    = uberstate.Identifier{Group: resourceGroup, Member: gorlekOreMember}
	keystoneUberID     = uberstate.Identifier{Group: resourceGroup, Member: keystoneMember}
	cleanWaterUberID   = uberstate.Identifier{Group: resourceGroup, Member: cleanWaterMember}
)

func skillUberID(s inventory.Skill) uberstate.Identifier {
	return uberstate.Identifier{Group: skillGroup, Member: int32(s)}
}

func shardUberID(s inventory.Shard) uberstate.Identifier {
	return uberstate.Identifier{Group: shardGroup, Member: int32(s)}
}

func teleporterUberID(name string) uberstate.Identifier {
	// Teleporters are string-named; the member slot hashes the name into a
	// stable small integer purely for diagnostic display.
	var h int32
	for _, r := range name {
		h = h*31 + int32(r)
	}
	return uberstate.Identifier{Group: teleporterGroup, Member: h}
}
