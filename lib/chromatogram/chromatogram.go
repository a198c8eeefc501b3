// Package chromatogram models chromatographic features and assembles them
// from scan observations.
package chromatogram

import (
	"fmt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// An Observation is one time point of a feature: the retention time at
// which the feature was seen and the deconvoluted intensity readings
// recorded there, one per contributing peak.
type Observation struct {
	RetentionTime float64
	Intensities   []float64
}

func (o Observation) TotalIntensity() float64 {
	return floats.Sum(o.Intensities)
}

// A Chromatogram is one detected feature: a neutral mass observed over a
// contiguous stretch of retention time. The composition stays empty until
// an external search assigns one.
type Chromatogram struct {
	Label       string
	NeutralMass float64
	Composition string

	// Observations are sorted by retention time.
	Observations []Observation
}

func (c *Chromatogram) Assigned() bool {
	return c.Composition != ""
}

// Start is the retention time of the first observation.
func (c *Chromatogram) Start() float64 {
	if len(c.Observations) == 0 {
		return 0
	}
	return c.Observations[0].RetentionTime
}

// End is the retention time of the last observation.
func (c *Chromatogram) End() float64 {
	if len(c.Observations) == 0 {
		return 0
	}
	return c.Observations[len(c.Observations)-1].RetentionTime
}

func (c *Chromatogram) TotalSignal() float64 {
	total := 0.0
	for _, o := range c.Observations {
		total += o.TotalIntensity()
	}
	return total
}

// Centroid computes the intensity-weighted mean retention time.
// A feature whose total intensity is zero has no meaningful centroid, so
// that case is an error rather than a NaN that would poison every
// retention time delta computed from it later.
func (c *Chromatogram) Centroid() (float64, error) {
	if len(c.Observations) == 0 {
		return 0, fmt.Errorf("chromatogram %s has no observations", c.Label)
	}
	times := make([]float64, len(c.Observations))
	weights := make([]float64, len(c.Observations))
	for i, o := range c.Observations {
		times[i] = o.RetentionTime
		weights[i] = o.TotalIntensity()
	}
	if floats.Sum(weights) == 0 {
		return 0, fmt.Errorf("chromatogram %s has zero total intensity", c.Label)
	}
	return stat.Mean(times, weights), nil
}

// A Summary carries the descriptive statistics downstream scoring models
// read off a feature.
type Summary struct {
	TotalSignal   float64
	ApexTime      float64
	ApexIntensity float64
	Duration      float64
	Observations  int
}

func (c *Chromatogram) Summarize() Summary {
	if len(c.Observations) == 0 {
		return Summary{}
	}
	intensities := make([]float64, len(c.Observations))
	for i, o := range c.Observations {
		intensities[i] = o.TotalIntensity()
	}
	apex := floats.MaxIdx(intensities)
	return Summary{
		TotalSignal:   floats.Sum(intensities),
		ApexTime:      c.Observations[apex].RetentionTime,
		ApexIntensity: intensities[apex],
		Duration:      c.End() - c.Start(),
		Observations:  len(c.Observations),
	}
}
