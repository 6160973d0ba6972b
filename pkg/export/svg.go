package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/visualize"
)

// SVGOptions configures SVG rendering of a compiled logic graph.
type SVGOptions struct {
	Width       int
	Height      int
	ShowLabels  bool
	ColorByKind bool
	NodeRadius  int
	EdgeWidth   int
	Margin      int
	Title       string
}

// DefaultSVGOptions returns sensible defaults for a single-world logic
// graph render.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:       1200,
		Height:      900,
		ShowLabels:  true,
		ColorByKind: true,
		NodeRadius:  10,
		EdgeWidth:   2,
		Margin:      60,
		Title:       "Logic Graph",
	}
}

// ExportSVG renders g using the positions in layout. layout must already
// cover every node in g (see visualize.Layout.Validate).
func ExportSVG(g *logicgraph.Graph, layout *visualize.Layout, opts SVGOptions) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("export: graph cannot be nil")
	}
	if layout == nil {
		return nil, fmt.Errorf("export: layout cannot be nil")
	}
	if err := layout.Validate(len(g.Nodes)); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = 10
	}
	if opts.EdgeWidth <= 0 {
		opts.EdgeWidth = 2
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	screen := screenPositions(layout, opts)

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	drawEdges(canvas, g, screen, opts)
	drawNodes(canvas, g, screen, opts)
	if opts.ShowLabels {
		drawLabels(canvas, g, screen, opts)
	}
	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin/2, opts.Title, "fill:#f0f0f0;font-size:20px;font-family:sans-serif")
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders g to an SVG file at path.
func SaveSVGToFile(g *logicgraph.Graph, layout *visualize.Layout, path string, opts SVGOptions) error {
	data, err := ExportSVG(g, layout, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// screenPositions maps layout-space positions into the canvas's pixel
// space, preserving aspect ratio and leaving a margin on every side.
func screenPositions(layout *visualize.Layout, opts SVGOptions) map[int]visualize.Point {
	b := layout.Bounds
	width, height := b.Width(), b.Height()
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	drawWidth := float64(opts.Width - 2*opts.Margin)
	drawHeight := float64(opts.Height - 2*opts.Margin)
	scale := drawWidth / width
	if alt := drawHeight / height; alt < scale {
		scale = alt
	}

	out := make(map[int]visualize.Point, len(layout.Positions))
	for node, p := range layout.Positions {
		out[node] = visualize.Point{
			X: float64(opts.Margin) + (p.X-b.MinX)*scale,
			Y: float64(opts.Margin) + (p.Y-b.MinY)*scale,
		}
	}
	return out
}

func nodeColor(kind logicgraph.NodeKind) string {
	switch kind {
	case logicgraph.NodeAnchor:
		return "#4299e1"
	case logicgraph.NodePickup:
		return "#48bb78"
	case logicgraph.NodeState:
		return "#ed8936"
	case logicgraph.NodeQuest:
		return "#9f7aea"
	case logicgraph.NodeRefill:
		return "#f56565"
	default:
		return "#718096"
	}
}

func drawEdges(canvas *svg.SVG, g *logicgraph.Graph, screen map[int]visualize.Point, opts SVGOptions) {
	for i, n := range g.Nodes {
		from, ok := screen[i]
		if !ok {
			continue
		}
		for _, c := range n.Connections {
			to, ok := screen[c.Target]
			if !ok {
				continue
			}
			canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y),
				fmt.Sprintf("stroke:#4a5568;stroke-width:%d;opacity:0.8", opts.EdgeWidth))
		}
		for _, d := range n.Doors {
			to, ok := screen[d.Target]
			if !ok {
				continue
			}
			canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y),
				fmt.Sprintf("stroke:#48bb78;stroke-width:%d;stroke-dasharray:5,5;opacity:0.8", opts.EdgeWidth))
		}
	}
}

func drawNodes(canvas *svg.SVG, g *logicgraph.Graph, screen map[int]visualize.Point, opts SVGOptions) {
	for i, n := range g.Nodes {
		p, ok := screen[i]
		if !ok {
			continue
		}
		color := "#718096"
		if opts.ColorByKind {
			color = nodeColor(n.Kind)
		}
		canvas.Circle(int(p.X), int(p.Y), opts.NodeRadius, fmt.Sprintf("fill:%s;stroke:#1a1a2e;stroke-width:1", color))
	}
}

func drawLabels(canvas *svg.SVG, g *logicgraph.Graph, screen map[int]visualize.Point, opts SVGOptions) {
	for i, n := range g.Nodes {
		p, ok := screen[i]
		if !ok || n.Name == "" {
			continue
		}
		canvas.Text(int(p.X)+opts.NodeRadius+4, int(p.Y)+4, n.Name, "fill:#e2e8f0;font-size:11px;font-family:sans-serif")
	}
}
