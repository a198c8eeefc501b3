package datatypes

// NodePair is an unordered pair of graph node indices.
// The constructor normalizes field order so a pair can serve
// as a map key regardless of the direction it was found in.
type NodePair struct {
	A int
	B int
}

func NewNodePair(a int, b int) NodePair {
	if a > b {
		a, b = b, a
	}
	return NodePair{A: a, B: b}
}

func (p NodePair) NodeIds() [2]int {
	return [2]int{p.A, p.B}
}

// Other reports the partner of the given index, and whether
// the index is part of the pair at all.
func (p NodePair) Other(index int) (int, bool) {
	switch index {
	case p.A:
		return p.B, true
	case p.B:
		return p.A, true
	}
	return 0, false
}
