// Package intervals indexes span-bearing entities for retention time range
// queries.
package intervals

import (
	"sort"
)

// Spanning is anything that occupies a closed interval on the time axis.
type Spanning interface {
	Start() float64
	End() float64
}

// Tree is a static interval tree. It is built once over a finalized
// collection and only answers queries afterwards; there is no insert.
// Spans are treated as closed intervals, so queries that merely touch
// a boundary count as overlapping.
type Tree struct {
	root *treeNode
	size int
}

type treeNode struct {
	item   Spanning
	maxEnd float64 // largest End in the subtree rooted here
	left   *treeNode
	right  *treeNode
}

func NewTree(items []Spanning) *Tree {
	sorted := make([]Spanning, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start() < sorted[j].Start()
	})
	return &Tree{root: buildSubtree(sorted), size: len(sorted)}
}

// buildSubtree consumes a start-sorted slice and returns a balanced subtree.
func buildSubtree(items []Spanning) *treeNode {
	if len(items) == 0 {
		return nil
	}
	mid := len(items) / 2
	n := &treeNode{item: items[mid]}
	n.left = buildSubtree(items[:mid])
	n.right = buildSubtree(items[mid+1:])
	n.maxEnd = n.item.End()
	if n.left != nil && n.left.maxEnd > n.maxEnd {
		n.maxEnd = n.left.maxEnd
	}
	if n.right != nil && n.right.maxEnd > n.maxEnd {
		n.maxEnd = n.right.maxEnd
	}
	return n
}

func (t *Tree) Len() int {
	return t.size
}

// Overlaps returns all members whose span intersects [start, end].
// No particular order is guaranteed.
func (t *Tree) Overlaps(start float64, end float64) []Spanning {
	var results []Spanning
	t.root.collect(start, end, &results)
	return results
}

func (n *treeNode) collect(start float64, end float64, results *[]Spanning) {
	if n == nil {
		return
	}
	// The left subtree only holds items starting at or before this one,
	// so it can be skipped entirely when nothing in it ends late enough.
	if n.left != nil && n.left.maxEnd >= start {
		n.left.collect(start, end, results)
	}
	if n.item.Start() <= end && n.item.End() >= start {
		*results = append(*results, n.item)
	}
	// Everything to the right starts at or after this item.
	if n.item.Start() <= end {
		n.right.collect(start, end, results)
	}
}
