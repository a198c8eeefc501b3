// Package settings contains all the parameters for graph construction.
package settings

import (
	"fmt"
	"github.com/kpaschen/chromjoin/lib/transitions"
	"gopkg.in/yaml.v3"
	"log"
)

const (
	DEFAULT_QUERY_WIDTH          = 2.0
	DEFAULT_MASS_ERROR_TOLERANCE = 1e-5
)

type GraphSettings struct {
	// How far a time window query reaches beyond the span of the
	// chromatogram it was built from, in retention time units.
	QueryWidth float64 `yaml:"queryWidth"`

	// The relative mass error tolerance for nearest-mass matches.
	MassErrorTolerance float64 `yaml:"massErrorTolerance"`

	// Names of the transitions to evaluate during edge discovery.
	// Unknown names are skipped. Empty means the standard set.
	TransitionNames []string `yaml:"transitions"`

	// The number of workers for concurrent expansion.
	// Zero means one worker per cpu.
	ExpandWorkers int `yaml:"expandWorkers"`

	// The resolved transition list, computed from TransitionNames.
	Transitions []transitions.Transition `yaml:"-"`
}

func (s GraphSettings) ComputeSettingsFields() GraphSettings {
	if s.QueryWidth == 0 {
		s.QueryWidth = DEFAULT_QUERY_WIDTH
	}
	if s.MassErrorTolerance == 0 {
		s.MassErrorTolerance = DEFAULT_MASS_ERROR_TOLERANCE
	}
	if len(s.Transitions) == 0 {
		if len(s.TransitionNames) == 0 {
			s.Transitions = transitions.Standard()
		} else {
			resolved := make([]transitions.Transition, 0, len(s.TransitionNames))
			for _, name := range s.TransitionNames {
				tr, ok := transitions.ByName(name)
				if !ok {
					log.Printf("skipping unknown transition %s\n", name)
					continue
				}
				resolved = append(resolved, tr)
			}
			s.Transitions = resolved
		}
	}
	return s
}

// FromYAML reads settings from a yaml document and fills in defaults.
func FromYAML(data []byte) (GraphSettings, error) {
	var s GraphSettings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings: %v", err)
	}
	return s.ComputeSettingsFields(), nil
}
