package chromatogram

import (
	"cmp"
	"log"
	"math"
	"slices"
)

// An Accumulator assembles a finalized chromatogram collection from
// feature observations as they arrive. Observations for one feature may
// come in any retention time order; they are kept sorted. The neutral
// mass of a feature is resolved at Finalize time as the intensity-weighted
// mean of the masses observed for it.
type Accumulator struct {
	// rowmap maps feature keys to positions in the chromatogram list.
	// invariant: chromatograms[rowmap[k]].Label == k
	rowmap        map[string]int
	chromatograms []*Chromatogram

	// Weighted mass sums per position, resolved at Finalize time.
	massSums      []float64
	intensitySums []float64
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		rowmap:        make(map[string]int),
		chromatograms: make([]*Chromatogram, 0, 1000),
		massSums:      make([]float64, 0, 1000),
		intensitySums: make([]float64, 0, 1000),
	}
}

// AddObservation records one time point for the feature identified by key,
// together with the neutral mass the deconvoluter reported for that point.
// NaN intensity readings are zeroed in place.
func (a *Accumulator) AddObservation(key string, mass float64, o Observation) {
	row, ok := a.rowmap[key]
	if !ok {
		row = len(a.chromatograms)
		a.rowmap[key] = row
		a.chromatograms = append(a.chromatograms, &Chromatogram{Label: key})
		a.massSums = append(a.massSums, 0)
		a.intensitySums = append(a.intensitySums, 0)
		if a.chromatograms[row].Label != key {
			log.Printf("chromatogram at row %d is %s but should be %s\n", row, a.chromatograms[row].Label, key)
			panic("code bug")
		}
	}

	weight := o.TotalIntensity()
	if math.IsNaN(weight) {
		for i, v := range o.Intensities {
			if math.IsNaN(v) {
				o.Intensities[i] = 0
			}
		}
		weight = o.TotalIntensity()
	}

	c := a.chromatograms[row]
	i, _ := slices.BinarySearchFunc(c.Observations, o.RetentionTime, func(x Observation, rt float64) int {
		return cmp.Compare(x.RetentionTime, rt)
	})
	c.Observations = slices.Insert(c.Observations, i, o)

	a.massSums[row] += mass * weight
	a.intensitySums[row] += weight
}

// SetComposition records an externally assigned composition for a feature.
// Assignments for features that were never observed are dropped.
func (a *Accumulator) SetComposition(key string, composition string) {
	row, ok := a.rowmap[key]
	if !ok {
		log.Printf("composition %s for unknown feature %s\n", composition, key)
		return
	}
	a.chromatograms[row].Composition = composition
}

func (a *Accumulator) Len() int {
	return len(a.chromatograms)
}

// Finalize resolves neutral masses and returns the chromatograms in
// first-seen feature order. The accumulator is reset and can be reused.
func (a *Accumulator) Finalize() []*Chromatogram {
	ret := a.chromatograms
	for i, c := range ret {
		if a.intensitySums[i] > 0 {
			c.NeutralMass = a.massSums[i] / a.intensitySums[i]
		}
	}
	a.rowmap = make(map[string]int)
	a.chromatograms = make([]*Chromatogram, 0, 1000)
	a.massSums = make([]float64, 0, 1000)
	a.intensitySums = make([]float64, 0, 1000)
	return ret
}
