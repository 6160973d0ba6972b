// Package simulate executes a compiled seed's command tree and event list
// against a world state, implementing spec.md §4.8's interpreter: client
// event routing, single-threaded store/scratchpad mutation, the
// snapshot-before-run batching rule for cascading uber-state triggers, and
// the max-health/max-energy recompute side effect that certain quest-state
// writes trigger.
//
// Ported from the simulation pass in
// original_source/wotw_seedgen/src/world/simulate.rs: the Go encoding keeps
// the same split between a pure expression evaluator and a void-effect
// executor that the Rust `Simulate` trait implements per Command variant,
// generalizing its hardcoded per-uber-identifier side-effect table into a
// registrable one (see World.RegisterSideEffect) while keeping the source's
// own Voice/Strength/Memory/Eyes/Heart → +10 health/+1 energy rule and its
// two monotone quest states as the built-in defaults.
package simulate
