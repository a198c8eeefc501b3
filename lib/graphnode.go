package lib

import (
	"fmt"
	"github.com/kpaschen/chromjoin/lib/chromatogram"
	"github.com/kpaschen/chromjoin/lib/datatypes"
	"github.com/kpaschen/chromjoin/lib/transitions"
)

// A GraphNode wraps one chromatogram for graph construction.
// Nodes are identified by their position in the input collection. The
// span and the center are computed once at construction so queries do
// not have to recompute them.
type GraphNode struct {
	Chromatogram *chromatogram.Chromatogram
	Index        int

	// Center is the intensity-weighted mean retention time.
	Center float64

	start float64
	end   float64

	// Positions of incident edges in the graph's edge arena.
	// The arena replaces edges in place when a node pair is rediscovered,
	// so these references never go stale.
	edgeRefs []int
}

func newGraphNode(c *chromatogram.Chromatogram, index int) (*GraphNode, error) {
	if len(c.Observations) == 0 {
		return nil, fmt.Errorf("chromatogram %d (%s) has no observations", index, c.Label)
	}
	start := c.Start()
	end := c.End()
	if start > end {
		return nil, fmt.Errorf("chromatogram %d (%s) has an inverted span [%f, %f]", index, c.Label, start, end)
	}
	center, err := c.Centroid()
	if err != nil {
		return nil, fmt.Errorf("cannot build graph node %d: %v", index, err)
	}
	return &GraphNode{
		Chromatogram: c,
		Index:        index,
		Center:       center,
		start:        start,
		end:          end,
	}, nil
}

// Start and End implement intervals.Spanning.
func (n *GraphNode) Start() float64 { return n.start }
func (n *GraphNode) End() float64   { return n.end }

func (n *GraphNode) NeutralMass() float64 {
	return n.Chromatogram.NeutralMass
}

// EdgeRefs lists the arena positions of the node's incident edges.
func (n *GraphNode) EdgeRefs() []int {
	return n.edgeRefs
}

// A GraphEdge relates two nodes whose neutral masses differ by a known
// transition. Edges refer to their endpoints by node index; the graph
// resolves them.
type GraphEdge struct {
	Pair       datatypes.NodePair
	Transition transitions.Transition
	Weight     float64

	// MassError is the relative error between the shifted source mass
	// and the mass actually found: (target - found) / found.
	MassError float64

	// RTError is the difference between the two nodes' centers.
	RTError float64
}
