// Package massindex answers nearest-neutral-mass queries over a candidate
// set.
package massindex

import (
	"github.com/tidwall/btree"
	"math"
)

// Entry ties a neutral mass to the integer id of the entity carrying it.
type Entry struct {
	Mass float64
	ID   int
}

// entryLess sorts entries by mass, with the id as a tie-breaker so that
// distinct entities with identical masses stay distinct in the tree.
func entryLess(a Entry, b Entry) bool {
	if a.Mass < b.Mass {
		return true
	}
	if a.Mass > b.Mass {
		return false
	}
	return a.ID < b.ID
}

// Index is an ordered mass lookup with a relative error tolerance.
// Indexes are cheap to build, so edge discovery constructs one per query
// over the time-filtered candidates rather than maintaining a global one.
type Index struct {
	tree      *btree.BTreeG[Entry]
	tolerance float64
}

// NewIndex creates an empty index. The tolerance bounds the relative error
// |target-mass|/mass a lookup may return; it is measured against the
// candidate mass, consistent with the error recorded on graph edges.
func NewIndex(tolerance float64) *Index {
	return &Index{
		tree:      btree.NewBTreeG[Entry](entryLess),
		tolerance: tolerance,
	}
}

func (x *Index) Add(mass float64, id int) {
	x.tree.Set(Entry{Mass: mass, ID: id})
}

func (x *Index) Len() int {
	return x.tree.Len()
}

func relativeError(target float64, e Entry) float64 {
	return math.Abs(target-e.Mass) / e.Mass
}

// FindMass returns the entry whose mass is nearest to the target by
// relative error, provided that error stays within the tolerance.
// Only the closest neighbor on each side of the target needs to be
// inspected. Error ties resolve to the candidate at or above the target,
// so an exact-mass hit yields the lowest id carrying that mass.
func (x *Index) FindMass(target float64) (Entry, bool) {
	var below, above Entry
	haveBelow := false
	haveAbove := false
	x.tree.Descend(Entry{Mass: target, ID: math.MaxInt}, func(e Entry) bool {
		below = e
		haveBelow = true
		return false
	})
	x.tree.Ascend(Entry{Mass: target, ID: math.MinInt}, func(e Entry) bool {
		above = e
		haveAbove = true
		return false
	})
	if !haveBelow && !haveAbove {
		return Entry{}, false
	}
	best := above
	bestErr := math.Inf(1)
	if haveAbove {
		bestErr = relativeError(target, above)
	}
	if haveBelow {
		if err := relativeError(target, below); err < bestErr {
			best = below
			bestErr = err
		}
	}
	if bestErr > x.tolerance {
		return Entry{}, false
	}
	return best, true
}
