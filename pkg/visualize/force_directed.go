package visualize

import (
	"fmt"
	"math"

	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/rng"
)

// ForceDirectedEmbedder simulates spring forces (connected anchors attract)
// and a uniform repulsion (every anchor repels every other) to find a
// stable, readable layout for the compiled logic graph.
type ForceDirectedEmbedder struct {
	config *Config
}

// NewForceDirectedEmbedder returns a force-directed embedder using config,
// or DefaultConfig if config is nil.
func NewForceDirectedEmbedder(config *Config) *ForceDirectedEmbedder {
	if config == nil {
		config = DefaultConfig()
	}
	return &ForceDirectedEmbedder{config: config}
}

func (e *ForceDirectedEmbedder) Name() string { return "force_directed" }

type particle struct {
	x, y   float64
	vx, vy float64
}

type edge struct {
	from, to int
}

func graphEdges(g *logicgraph.Graph) []edge {
	var edges []edge
	for i, n := range g.Nodes {
		for _, c := range n.Connections {
			edges = append(edges, edge{i, c.Target})
		}
		for _, d := range n.Doors {
			edges = append(edges, edge{i, d.Target})
		}
	}
	return edges
}

// Embed runs the force-directed simulation over g's nodes, using its
// Connections/Doors as springs, and returns the resulting Layout.
func (e *ForceDirectedEmbedder) Embed(g *logicgraph.Graph, r *rng.RNG) (*Layout, error) {
	if g == nil {
		return nil, fmt.Errorf("visualize: cannot embed nil graph")
	}
	if r == nil {
		return nil, fmt.Errorf("visualize: cannot embed with nil rng")
	}
	n := len(g.Nodes)
	if n == 0 {
		return nil, fmt.Errorf("visualize: cannot embed graph with no nodes")
	}

	particles := make([]particle, n)
	for i := range particles {
		angle := r.Float64() * 2 * math.Pi
		radius := r.Float64() * e.config.InitialSpread
		particles[i] = particle{x: radius * math.Cos(angle), y: radius * math.Sin(angle)}
	}

	edges := graphEdges(g)
	dt := 0.1

	for iter := 0; iter < e.config.MaxIterations; iter++ {
		fx := make([]float64, n)
		fy := make([]float64, n)

		for _, ed := range edges {
			dx := particles[ed.to].x - particles[ed.from].x
			dy := particles[ed.to].y - particles[ed.from].y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist <= 0.001 {
				continue
			}
			mag := e.config.SpringConstant * dist
			sx, sy := mag*dx/dist, mag*dy/dist
			fx[ed.from] += sx
			fy[ed.from] += sy
			fx[ed.to] -= sx
			fy[ed.to] -= sy
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := particles[j].x - particles[i].x
				dy := particles[j].y - particles[i].y
				distSq := dx*dx + dy*dy
				if distSq <= 0.001 {
					continue
				}
				dist := math.Sqrt(distSq)
				mag := e.config.RepulsionConstant / distSq
				rx, ry := mag*dx/dist, mag*dy/dist
				fx[i] -= rx
				fy[i] -= ry
				fx[j] += rx
				fy[j] += ry
			}
		}

		maxMovement := 0.0
		for i := range particles {
			p := &particles[i]
			p.vx = p.vx*e.config.DampingFactor + fx[i]*dt
			p.vy = p.vy*e.config.DampingFactor + fy[i]*dt
			p.x += p.vx * dt
			p.y += p.vy * dt
			if movement := math.Sqrt(p.vx*p.vx + p.vy*p.vy); movement > maxMovement {
				maxMovement = movement
			}
		}

		if maxMovement < e.config.StabilityThreshold {
			break
		}
	}

	if e.config.GridQuantization > 0 {
		for i := range particles {
			particles[i].x = math.Round(particles[i].x/e.config.GridQuantization) * e.config.GridQuantization
			particles[i].y = math.Round(particles[i].y/e.config.GridQuantization) * e.config.GridQuantization
		}
	}

	layout := NewLayout()
	layout.Algorithm = e.Name()
	layout.Seed = r.Seed()
	for i, p := range particles {
		layout.Set(i, Point{X: p.x, Y: p.y})
	}
	layout.ComputeBounds()
	return layout, nil
}

func init() {
	Register("force_directed", func(c *Config) Embedder {
		return NewForceDirectedEmbedder(c)
	})
}
