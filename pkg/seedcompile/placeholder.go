package seedcompile

import (
	"fmt"

	"github.com/oriwisp/seedgen/pkg/command"
)

// PlaceholderKind discriminates the three late-bound placeholder forms
// spec.md §4.7 names.
type PlaceholderKind int

const (
	PlaceholderZoneOf PlaceholderKind = iota
	PlaceholderItemOn
	PlaceholderCountInZone
)

// Placeholder is one !zone_of/!item_on/!count_in_zone reference captured
// during lowering. Node is the exact Command the placeholder lowered to;
// ResolvePlaceholders mutates it in place once placements are known, so no
// second lowering pass over the event tree is needed.
type Placeholder struct {
	Kind  PlaceholderKind
	Node  *command.Command
	Ident string   // ZoneOf, ItemOn: the placement ident to look up
	Zone  string   // CountInZone: the zone name to match
	Items []string // CountInZone: the item names to count
}

// Placement is one resolved (ident -> zone, item) record the external
// placer supplies after running placement, the input ResolvePlaceholders
// needs.
type Placement struct {
	Ident string
	Zone  string
	Item  string
}

// ResolvePlaceholders fills in every captured placeholder's Command node
// from the final placement list. Unresolvable zone_of/item_on references
// (an ident with no matching placement) are a hard error, matching spec.md
// §7's "no placement failure is silently swallowed" posture for anything
// the engine itself can detect.
func ResolvePlaceholders(placeholders []*Placeholder, placements []Placement) error {
	byIdent := make(map[string]Placement, len(placements))
	for _, p := range placements {
		byIdent[p.Ident] = p
	}

	for _, ph := range placeholders {
		switch ph.Kind {
		case PlaceholderZoneOf:
			p, ok := byIdent[ph.Ident]
			if !ok {
				return fmt.Errorf("seedcompile: !zone_of(%s): no placement found", ph.Ident)
			}
			ph.Node.ConstString = p.Zone
		case PlaceholderItemOn:
			p, ok := byIdent[ph.Ident]
			if !ok {
				return fmt.Errorf("seedcompile: !item_on(%s): no placement found", ph.Ident)
			}
			ph.Node.ConstString = p.Item
		case PlaceholderCountInZone:
			wanted := make(map[string]bool, len(ph.Items))
			for _, it := range ph.Items {
				wanted[it] = true
			}
			var count int32
			for _, p := range placements {
				if p.Zone == ph.Zone && wanted[p.Item] {
					count++
				}
			}
			ph.Node.ConstInt = count
		}
	}
	return nil
}
