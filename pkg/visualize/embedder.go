package visualize

import (
	"fmt"

	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/rng"
)

// Embedder turns a compiled logic graph into a spatial Layout. Embedders
// must be deterministic: given the same graph and RNG state, they must
// produce identical layouts.
type Embedder interface {
	// Embed positions every node of g and returns the resulting layout.
	// rng must be used for any randomness so runs stay reproducible.
	Embed(g *logicgraph.Graph, rng *rng.RNG) (*Layout, error)

	// Name returns this embedder's registry identifier.
	Name() string
}

// Config controls the force-directed simulation's spring/repulsion/damping
// parameters and the overall iteration budget.
type Config struct {
	MaxIterations      int
	SpringConstant     float64
	RepulsionConstant  float64
	DampingFactor      float64
	StabilityThreshold float64
	InitialSpread      float64
	GridQuantization   float64
}

// DefaultConfig returns sensible defaults for a graph of a few hundred
// nodes, the scale a single world's compiled areas.wotw produces.
func DefaultConfig() *Config {
	return &Config{
		MaxIterations:      500,
		SpringConstant:     0.5,
		RepulsionConstant:  500.0,
		DampingFactor:      0.8,
		StabilityThreshold: 0.1,
		InitialSpread:      100.0,
		GridQuantization:   1.0,
	}
}

// Validate checks that every parameter is in range.
func (c *Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("visualize: MaxIterations must be > 0, got %d", c.MaxIterations)
	}
	if c.DampingFactor < 0 || c.DampingFactor > 1 {
		return fmt.Errorf("visualize: DampingFactor must be in [0, 1], got %f", c.DampingFactor)
	}
	if c.StabilityThreshold < 0 {
		return fmt.Errorf("visualize: StabilityThreshold must be >= 0, got %f", c.StabilityThreshold)
	}
	if c.GridQuantization < 0 {
		return fmt.Errorf("visualize: GridQuantization must be >= 0, got %f", c.GridQuantization)
	}
	return nil
}

var registry = make(map[string]func(*Config) Embedder)

// Register adds an embedder factory under name. Called from each
// embedder's init().
func Register(name string, factory func(*Config) Embedder) {
	if factory == nil {
		panic(fmt.Sprintf("visualize: Register factory for %s is nil", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("visualize: Register called twice for %s", name))
	}
	registry[name] = factory
}

// Get retrieves a registered embedder by name, applying config (or
// DefaultConfig if nil).
func Get(name string, config *Config) (Embedder, error) {
	factory, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("visualize: embedder %q not registered", name)
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("visualize: invalid config: %w", err)
	}
	return factory(config), nil
}

// List returns the names of all registered embedders.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
