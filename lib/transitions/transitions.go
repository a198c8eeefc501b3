// Package transitions defines the glycan mass deltas used to link related
// chromatograms.
package transitions

// Monoisotopic element masses in Dalton.
const (
	massC = 12.0
	massH = 1.00782503207
	massN = 14.0030740048
	massO = 15.9949146196
)

// A Transition is a named chemical unit whose mass can separate two related
// chromatograms. The mass is a residue mass, that is the monosaccharide
// after the water loss of glycosidic bond formation.
type Transition struct {
	Name string
	mass float64
}

// NewTransition computes a residue mass from elemental composition.
func NewTransition(name string, c int, h int, n int, o int) Transition {
	m := float64(c)*massC + float64(h)*massH + float64(n)*massN + float64(o)*massO
	return Transition{Name: name, mass: m}
}

// Mass is the monoisotopic residue mass in Dalton.
func (t Transition) Mass() float64 {
	return t.mass
}

// Standard returns the transitions that edge discovery evaluates by default.
// The slice is freshly allocated on every call so that callers can trim or
// reorder it without affecting anybody else.
func Standard() []Transition {
	return []Transition{
		NewTransition("HexNAc", 8, 13, 1, 5),
		NewTransition("Hex", 6, 10, 0, 5),
		NewTransition("NeuAc", 11, 17, 1, 8),
		NewTransition("Fuc", 6, 10, 0, 4),
		NewTransition("HexA", 6, 8, 0, 6),
	}
}

// ByName looks a transition up in the standard set.
func ByName(name string) (Transition, bool) {
	for _, t := range Standard() {
		if t.Name == name {
			return t, true
		}
	}
	return Transition{}, false
}
