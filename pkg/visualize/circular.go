package visualize

import (
	"fmt"
	"math"

	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/rng"
)

// CircularEmbedder places every node evenly around a circle in node-index
// order. It ignores the RNG entirely (beyond recording its seed for the
// layout's provenance field) and is useful as a cheap, always-terminating
// fallback when the force-directed simulation's iteration budget is too
// costly for a quick preview.
type CircularEmbedder struct {
	radius float64
}

// NewCircularEmbedder returns a circular embedder. config.InitialSpread
// sets the circle's radius (DefaultConfig's 100 units if config is nil).
func NewCircularEmbedder(config *Config) *CircularEmbedder {
	if config == nil {
		config = DefaultConfig()
	}
	radius := config.InitialSpread
	if radius <= 0 {
		radius = 100.0
	}
	return &CircularEmbedder{radius: radius}
}

func (e *CircularEmbedder) Name() string { return "circular" }

func (e *CircularEmbedder) Embed(g *logicgraph.Graph, r *rng.RNG) (*Layout, error) {
	if g == nil {
		return nil, fmt.Errorf("visualize: cannot embed nil graph")
	}
	n := len(g.Nodes)
	if n == 0 {
		return nil, fmt.Errorf("visualize: cannot embed graph with no nodes")
	}

	layout := NewLayout()
	layout.Algorithm = e.Name()
	if r != nil {
		layout.Seed = r.Seed()
	}
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		angle := float64(i) * step
		layout.Set(i, Point{X: e.radius * math.Cos(angle), Y: e.radius * math.Sin(angle)})
	}
	layout.ComputeBounds()
	return layout, nil
}

func init() {
	Register("circular", func(c *Config) Embedder {
		return NewCircularEmbedder(c)
	})
}
