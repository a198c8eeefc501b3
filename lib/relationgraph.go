package lib

import (
	"errors"
	"github.com/kpaschen/chromjoin/lib/chromatogram"
	"github.com/kpaschen/chromjoin/lib/datatypes"
	"github.com/kpaschen/chromjoin/lib/intervals"
	"github.com/kpaschen/chromjoin/lib/massindex"
	"github.com/kpaschen/chromjoin/lib/settings"
	"github.com/kpaschen/chromjoin/lib/transitions"
	"log"
	"time"
)

// ErrNoSeeds signals that the seed queue was popped while empty.
var ErrNoSeeds = errors.New("seed queue is empty")

// A TimeQuery is the retention time window probed around a chromatogram:
// its span widened by the query width on both sides.
type TimeQuery struct {
	Start float64
	End   float64
}

func NewTimeQuery(c *chromatogram.Chromatogram, width float64) TimeQuery {
	return TimeQuery{Start: c.Start() - width, End: c.End() + width}
}

// A RelationGraph links chromatograms whose neutral masses differ by a
// transition and whose retention time spans lie close together.
// The graph owns its edges in an arena. Nodes refer to edges by arena
// position and edges refer to nodes by index, so nodes and edges never
// point at each other directly.
type RelationGraph struct {
	Chromatograms []*chromatogram.Chromatogram
	Nodes         []*GraphNode

	rtTree *intervals.Tree

	// The edge arena. edgesByPair maps a node pair to its arena position.
	// Rediscovering a pair overwrites that position, so at most one edge
	// exists per pair and the last one constructed wins.
	edges       []*GraphEdge
	edgesByPair map[datatypes.NodePair]int

	// Composition-assigned nodes waiting for expansion, in input order.
	seedQueue []*GraphNode

	// assignments maps a composition to the node carrying it. When several
	// nodes claim the same composition, the latest in input order wins.
	assignments map[string]*GraphNode

	config settings.GraphSettings
}

// NewRelationGraph indexes a finalized chromatogram collection.
// Every chromatogram needs at least one observation, a proper span and
// nonzero total intensity; otherwise construction fails.
func NewRelationGraph(chromatograms []*chromatogram.Chromatogram, config settings.GraphSettings) (*RelationGraph, error) {
	config = config.ComputeSettingsFields()
	g := &RelationGraph{
		Chromatograms: chromatograms,
		Nodes:         make([]*GraphNode, 0, len(chromatograms)),
		edges:         make([]*GraphEdge, 0, len(chromatograms)),
		edgesByPair:   make(map[datatypes.NodePair]int),
		seedQueue:     make([]*GraphNode, 0, len(chromatograms)),
		assignments:   make(map[string]*GraphNode),
		config:        config,
	}
	for i, c := range chromatograms {
		node, err := newGraphNode(c, i)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, node)
		if c.Assigned() {
			g.EnqueueSeed(node)
			g.assignments[c.Composition] = node
		}
	}
	spans := make([]intervals.Spanning, len(g.Nodes))
	for i, n := range g.Nodes {
		spans[i] = n
	}
	g.rtTree = intervals.NewTree(spans)
	log.Printf("built relation graph over %d chromatograms with %d seeds\n",
		len(g.Nodes), len(g.seedQueue))
	graphNodes.Set(float64(len(g.Nodes)))
	graphSeedNodes.Set(float64(len(g.seedQueue)))
	return g, nil
}

// EnqueueSeed appends a node to the seed queue.
func (g *RelationGraph) EnqueueSeed(n *GraphNode) {
	g.seedQueue = append(g.seedQueue, n)
}

// PopSeed removes and returns the oldest seed.
func (g *RelationGraph) PopSeed() (*GraphNode, error) {
	if len(g.seedQueue) == 0 {
		return nil, ErrNoSeeds
	}
	n := g.seedQueue[0]
	g.seedQueue = g.seedQueue[1:]
	return n, nil
}

// DrainSeeds empties the seed queue and returns the seeds in queue order.
func (g *RelationGraph) DrainSeeds() []*GraphNode {
	seeds := g.seedQueue
	g.seedQueue = nil
	return seeds
}

func (g *RelationGraph) SeedCount() int {
	return len(g.seedQueue)
}

// AssignedNode returns the node holding the given composition, or nil.
func (g *RelationGraph) AssignedNode(composition string) *GraphNode {
	return g.assignments[composition]
}

// AddEdge records that two nodes are related by a transition; both nodes
// learn about the edge. A rediscovered pair has its previous edge replaced
// rather than accumulating duplicates.
func (g *RelationGraph) AddEdge(a *GraphNode, b *GraphNode, tr transitions.Transition, massError float64, rtError float64) *GraphEdge {
	pair := datatypes.NewNodePair(a.Index, b.Index)
	edge := &GraphEdge{
		Pair:       pair,
		Transition: tr,
		Weight:     1,
		MassError:  massError,
		RTError:    rtError,
	}
	edgesCreated.Inc()
	if pos, ok := g.edgesByPair[pair]; ok {
		g.edges[pos] = edge
		return edge
	}
	pos := len(g.edges)
	g.edges = append(g.edges, edge)
	g.edgesByPair[pair] = pos
	a.edgeRefs = append(a.edgeRefs, pos)
	b.edgeRefs = append(b.edgeRefs, pos)
	return edge
}

// Edges returns the live edge arena.
func (g *RelationGraph) Edges() []*GraphEdge {
	return g.edges
}

// IncidentEdges resolves a node's edge references.
func (g *RelationGraph) IncidentEdges(n *GraphNode) []*GraphEdge {
	ret := make([]*GraphEdge, 0, len(n.edgeRefs))
	for _, pos := range n.edgeRefs {
		ret = append(ret, g.edges[pos])
	}
	return ret
}

// Endpoints resolves an edge to its nodes.
func (g *RelationGraph) Endpoints(e *GraphEdge) (*GraphNode, *GraphNode) {
	return g.Nodes[e.Pair.A], g.Nodes[e.Pair.B]
}

// EdgeChromatograms returns the chromatograms behind an edge's endpoints.
func (g *RelationGraph) EdgeChromatograms(e *GraphEdge) (*chromatogram.Chromatogram, *chromatogram.Chromatogram) {
	a, b := g.Endpoints(e)
	return a.Chromatogram, b.Chromatogram
}

type match struct {
	source     *GraphNode
	target     *GraphNode
	transition transitions.Transition
	massError  float64
	rtError    float64
}

// collectMatches runs the candidate restriction for one node: first by
// time window, then by nearest mass among the survivors for each shifted
// target mass. It does not touch graph state.
func (g *RelationGraph) collectMatches(n *GraphNode) []match {
	query := NewTimeQuery(n.Chromatogram, g.config.QueryWidth)
	hits := g.rtTree.Overlaps(query.Start, query.End)
	index := massindex.NewIndex(g.config.MassErrorTolerance)
	byIndex := make(map[int]*GraphNode, len(hits))
	for _, h := range hits {
		cand := h.(*GraphNode)
		index.Add(cand.NeutralMass(), cand.Index)
		byIndex[cand.Index] = cand
	}
	var found []match
	for _, tr := range g.config.Transitions {
		target := n.NeutralMass() + tr.Mass()
		entry, ok := index.FindMass(target)
		if !ok {
			continue
		}
		cand := byIndex[entry.ID]
		found = append(found, match{
			source:     n,
			target:     cand,
			transition: tr,
			massError:  (target - cand.NeutralMass()) / cand.NeutralMass(),
			rtError:    n.Center - cand.Center,
		})
	}
	return found
}

// FindEdges connects a node to every chromatogram reachable from it by
// one transition mass within the configured tolerances. Finding nothing
// is normal and leaves the graph unchanged. Returns the number of edges
// recorded.
func (g *RelationGraph) FindEdges(n *GraphNode) int {
	matches := g.collectMatches(n)
	for _, m := range matches {
		g.AddEdge(m.source, m.target, m.transition, m.massError, m.rtError)
	}
	return len(matches)
}

// ExpandSeeds drains the seed queue and discovers edges for every seed in
// assignment order. Returns the number of edges recorded.
func (g *RelationGraph) ExpandSeeds() int {
	started := time.Now()
	seeds := g.DrainSeeds()
	total := 0
	for _, n := range seeds {
		total += g.FindEdges(n)
		seedsProcessed.Inc()
	}
	expansionDurationHist.Observe(float64(time.Since(started).Milliseconds()))
	log.Printf("expanded %d seeds into %d edges\n", len(seeds), total)
	return total
}

// ExpandAll runs edge discovery for every node regardless of seed status.
func (g *RelationGraph) ExpandAll() int {
	started := time.Now()
	total := 0
	for _, n := range g.Nodes {
		total += g.FindEdges(n)
	}
	expansionDurationHist.Observe(float64(time.Since(started).Milliseconds()))
	log.Printf("expanded all %d nodes into %d edges\n", len(g.Nodes), total)
	return total
}

// ExplodeNode walks the connected component around the given node and
// returns every member it finds. Traversal is breadth first, seeded with
// both endpoints of each of the node's incident edges; a node without
// edges therefore yields an empty result. No output order is guaranteed
// beyond the breadth first discovery itself.
func (g *RelationGraph) ExplodeNode(n *GraphNode) []*GraphNode {
	var results []*GraphNode
	visited := make(map[int]bool)
	queue := make([]int, 0, 2*len(n.edgeRefs))
	for _, pos := range n.edgeRefs {
		pair := g.edges[pos].Pair
		queue = append(queue, pair.A, pair.B)
	}
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if visited[idx] {
			continue
		}
		visited[idx] = true
		node := g.Nodes[idx]
		results = append(results, node)
		for _, pos := range node.edgeRefs {
			pair := g.edges[pos].Pair
			if !visited[pair.A] {
				queue = append(queue, pair.A)
			}
			if !visited[pair.B] {
				queue = append(queue, pair.B)
			}
		}
	}
	return results
}

// Components partitions the graph into connected components.
// Nodes without edges form singleton components.
func (g *RelationGraph) Components() [][]*GraphNode {
	var components [][]*GraphNode
	visited := make(map[int]bool)
	for _, n := range g.Nodes {
		if visited[n.Index] {
			continue
		}
		if len(n.edgeRefs) == 0 {
			visited[n.Index] = true
			components = append(components, []*GraphNode{n})
			continue
		}
		members := g.ExplodeNode(n)
		for _, m := range members {
			visited[m.Index] = true
		}
		components = append(components, members)
	}
	return components
}
