package simulate

import (
	"github.com/oriwisp/seedgen/pkg/command"
	"github.com/oriwisp/seedgen/pkg/inventory"
	"github.com/oriwisp/seedgen/pkg/uberstate"
	"github.com/oriwisp/seedgen/pkg/worldsettings"
)

// Message is one queued or free-floating in-world message, keyed by the id
// the compiled seed assigned it.
type Message struct {
	Text string
	Args []Value
}

// ShopItemData/WheelItemData hold the pointwise fields set_shop_item_data /
// set_wheel_item_data writes, keyed by field name so repeated partial
// updates only ever overwrite the field named, mirroring spec.md §4.7's
// !item_data pointwise-setter semantics at the seed-item level.
type ItemFields map[string]Value

// WarpIcon is a player-visible map marker created/destroyed by
// add_warp_icon/remove_warp_icon.
type WarpIcon struct {
	X, Y  float32
	Label string
}

// sideEffect fires additional writes when id is stored with a value
// matching predicate, mirroring the original source's hardcoded
// uber_state_side_effects cascade (quest chains that flip a second flag
// once a cutscene/arena uber-state reaches some value).
type sideEffect struct {
	predicate func(Value) bool
	apply     func(w *World)
}

// World is the mutable state one simulated player's events run against:
// inventory, uber-state store, a fixed-size scratchpad of Get/SetSlot
// values, and the ambient client-visible stores (messages, shop/wheel item
// data, warp icons, equipped skills, server-sync toggles) the compiled
// seed's CommandVoid effects write into.
type World struct {
	Inventory *inventory.Inventory
	Settings  *worldsettings.WorldSettings
	Store     *uberstate.Store

	slots map[int]Value
	zone  string

	Messages   map[int]Message
	nextMsgID  int
	ShopItems  map[int]ItemFields
	WheelItems map[int]ItemFields
	WarpIcons  map[int]WarpIcon
	Equipped   map[int32]int32 // equip slot -> skill id
	ServerSync map[uberstate.Identifier]bool
	Keybinds   []int32
	LastAction string

	monotone    map[uberstate.Identifier]func(old, next uberstate.Value) bool
	sideEffects map[uberstate.Identifier][]sideEffect

	// OnUberStateChange, if set, is called after every successful (not
	// dropped) uber-state write, letting a caller re-run logic-graph
	// reachability (pkg/logicgraph.UpdateReached) without this package
	// depending on that one.
	OnUberStateChange func(id uberstate.Identifier)
}

// NewWorld returns a World backed by inv/settings/store, with the two
// monotone quest states and the Voice/Strength/Memory/Eyes/Heart
// max-health/max-energy side effect pre-registered exactly as the source
// game's client hardcodes them.
func NewWorld(inv *inventory.Inventory, settings *worldsettings.WorldSettings, store *uberstate.Store) *World {
	w := &World{
		Inventory:   inv,
		Settings:    settings,
		Store:       store,
		slots:       make(map[int]Value),
		Messages:    make(map[int]Message),
		ShopItems:   make(map[int]ItemFields),
		WheelItems:  make(map[int]ItemFields),
		WarpIcons:   make(map[int]WarpIcon),
		Equipped:    make(map[int32]int32),
		ServerSync:  make(map[uberstate.Identifier]bool),
		monotone:    make(map[uberstate.Identifier]func(old, next uberstate.Value) bool),
		sideEffects: make(map[uberstate.Identifier][]sideEffect),
	}
	registerDefaultQuestStates(w)
	return w
}

// Slot returns the scratchpad value at index, or t's zero value if unset.
func (w *World) Slot(index int, t command.ValueType) Value {
	if v, ok := w.slots[index]; ok {
		return v
	}
	return zeroValue(t)
}

// SetSlot writes the scratchpad value at index.
func (w *World) SetSlot(index int, v Value) {
	w.slots[index] = v
}

// Zone returns the player's current zone name, fetched by the
// current_zone builtin through the reserved uber-state group
// command.CurrentZoneGroup.
func (w *World) Zone() string { return w.zone }

// SetZone updates the player's current zone, as the placement driver does
// on every zone-boundary crossing.
func (w *World) SetZone(z string) { w.zone = z }

// RegisterMonotone marks id as a monotone quest state: a write only takes
// effect if regresses(old, next) returns false, matching spec.md §4's
// prevent-change policy. regresses is evaluated against the state's current
// value (uberstate.Value{} if never written).
func (w *World) RegisterMonotone(id uberstate.Identifier, regresses func(old, next uberstate.Value) bool) {
	w.monotone[id] = regresses
}

// RegisterSideEffect fires apply(w) whenever id is stored with a value for
// which predicate returns true, generalizing the source client's hardcoded
// quest-chain cascade (see registerDefaultQuestStates).
func (w *World) RegisterSideEffect(id uberstate.Identifier, predicate func(Value) bool, apply func(w *World)) {
	w.sideEffects[id] = append(w.sideEffects[id], sideEffect{predicate, apply})
}

// StoreUberState writes value to id, honoring the monotone-state policy and
// firing any registered side effects and OnUberStateChange hook. It returns
// the event indices the store reports as triggered (nil if withTriggers is
// false, the write was a no-op monotone regression, or no events depend on
// id).
func (w *World) StoreUberState(id uberstate.Identifier, value uberstate.Value, withTriggers bool) []int {
	if regresses, ok := w.monotone[id]; ok {
		old, _ := w.Store.Get(id)
		if regresses(old, value) {
			return nil
		}
	}

	var triggered []int
	if withTriggers {
		triggered = w.Store.Set(id, value)
	} else {
		w.Store.SetWithoutTriggers(id, value)
	}

	w.applySideEffects(id, value)
	if w.OnUberStateChange != nil {
		w.OnUberStateChange(id)
	}
	return triggered
}

func (w *World) applySideEffects(id uberstate.Identifier, value uberstate.Value) {
	v := fromUberValue(value)
	for _, effect := range w.sideEffects[id] {
		if effect.predicate(v) {
			effect.apply(w)
		}
	}
}

// ModifyMaxHealth/ModifyMaxEnergy grant the health/energy fragments that
// back Inventory.MaxHealth/MaxEnergy's derived totals, the same mechanism
// the source client uses (it mutates a `max_health`/`max_energy` field
// directly; this port instead grants the fragments the formula already
// reads, since pkg/inventory has no separate max-stat field to mutate).
func (w *World) ModifyMaxHealth(amount int32) {
	w.Inventory.Grant(inventory.ResourceItem(inventory.HealthFragment), uint32(amount/5))
}

func (w *World) ModifyMaxEnergy(amount float32) {
	w.Inventory.Grant(inventory.ResourceItem(inventory.EnergyFragment), uint32(amount/0.5))
}

func fromUberValue(v uberstate.Value) Value {
	switch v.Kind {
	case uberstate.KindBool:
		return BoolValue(v.Bool)
	case uberstate.KindInt:
		return IntValue(v.Int)
	default:
		return FloatValue(v.Float)
	}
}

func toUberValue(v Value) uberstate.Value {
	switch v.Kind {
	case command.TypeBoolean:
		return uberstate.BoolValue(v.Bool)
	case command.TypeInteger:
		return uberstate.IntValue(v.Int)
	default:
		return uberstate.FloatValue(v.Float)
	}
}

// registerDefaultQuestStates wires the two monotone quest states and the
// Voice/Strength/Memory/Eyes/Heart side effect straight from
// wotw_seedgen/src/world/simulate.rs's set_uber_state/uber_state_side_effects:
// the Wellspring quest counter never regresses, the Ku quest counter can't
// drop below 4 once reached, and unlocking any of the five memory states
// grants +10 max health and +1 max energy.
func registerDefaultQuestStates(w *World) {
	wellspringQuest := uberstate.Identifier{Group: 937, Member: 34641}
	kuQuest := uberstate.Identifier{Group: 14019, Member: 34504}

	w.RegisterMonotone(wellspringQuest, func(old, next uberstate.Value) bool {
		return old.Int >= next.Int
	})
	w.RegisterMonotone(kuQuest, func(_, next uberstate.Value) bool {
		return next.Int <= 4
	})

	memoryStates := []uberstate.Identifier{
		{Group: 46462, Member: 59806}, // Voice
		{Group: 945, Member: 49747},   // Strength
		{Group: 28895, Member: 25522}, // Memory
		{Group: 18793, Member: 63291}, // Eyes
		{Group: 10289, Member: 22102}, // Heart
	}
	grantsMemoryBonus := func(v Value) bool { return v.Kind == command.TypeBoolean && v.Bool }
	for _, id := range memoryStates {
		w.RegisterSideEffect(id, grantsMemoryBonus, func(w *World) {
			w.ModifyMaxHealth(10)
			w.ModifyMaxEnergy(1)
		})
	}
}
