// Package rng provides deterministic random number generation for the seed
// generator.
//
// # Overview
//
// The RNG type ensures reproducible seeds by deriving call-site-specific
// seeds from a master seed. This allows each place the engine needs
// randomness (door-loop partitioning per world, compile-time random pools in
// the seed DSL, graph-layout embedding) to have an independent random
// sequence while the whole run stays a pure function of the universe's seed
// string.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_label = H(masterSeed, label, configHash)
//
// where:
//   - masterSeed: Top-level seed for the entire universe (worldsettings.Universe.Hash)
//   - label: Call-site identifier (e.g., "doors-0", "my_snippet::my_pool")
//   - configHash: Optional extra bytes distinguishing otherwise-identical labels
//
// This ensures:
//  1. Same inputs always produce same RNG sequence (determinism)
//  2. Different call sites get independent random sequences (isolation)
//  3. Extra config bytes change the sequence (sensitivity)
//
// # Usage
//
// Create an RNG for each independent random call site:
//
//	doorRNG := rng.NewRNG(masterSeed, fmt.Sprintf("doors-%d", worldIndex), nil)
//	layoutRNG := rng.NewRNG(masterSeed, "visualize", nil)
//
// Seed DSL compilation derives one RNG per snippet-qualified pool id so
// `!random_integer`/`!random_pool` stay reproducible across recompiles:
//
//	poolRNG := rng.NewRNG(masterSeed, snippetName+"::"+poolID, nil)
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own RNG
// instance. Create call-site-specific RNGs before spawning goroutines and
// pass them explicitly.
//
// # Performance
//
// The underlying math/rand.Rand is highly efficient:
//   - Uint64(): ~2ns per call
//   - Intn():   ~3ns per call
//   - Float64(): ~2ns per call
//
// Creating a new RNG costs ~8µs due to SHA-256 computation.
// Reuse RNG instances within a call site for best performance.
package rng
