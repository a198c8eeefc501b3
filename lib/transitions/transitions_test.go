package transitions

import (
	"math"
	"testing"
)

func TestStandardMasses(t *testing.T) {
	expected := map[string]float64{
		"HexNAc": 203.0793725,
		"Hex":    162.0528234,
		"NeuAc":  291.0954165,
		"Fuc":    146.0579088,
		"HexA":   176.0320880,
	}
	seen := map[string]bool{}
	for _, tr := range Standard() {
		want, ok := expected[tr.Name]
		if !ok {
			t.Errorf("unexpected standard transition %s", tr.Name)
			continue
		}
		seen[tr.Name] = true
		if math.Abs(tr.Mass()-want) > 1e-6 {
			t.Errorf("expected mass %f for %s but got %f", want, tr.Name, tr.Mass())
		}
	}
	if len(seen) != len(expected) {
		t.Errorf("expected %d standard transitions but got %d", len(expected), len(seen))
	}
}

func TestStandardReturnsFreshSlice(t *testing.T) {
	a := Standard()
	a[0] = NewTransition("bogus", 1, 0, 0, 0)
	if Standard()[0].Name == "bogus" {
		t.Errorf("standard transition list must not share state across calls")
	}
}

func TestByName(t *testing.T) {
	tr, ok := ByName("Fuc")
	if !ok {
		t.Fatalf("expected to find transition Fuc")
	}
	if math.Abs(tr.Mass()-146.0579088) > 1e-6 {
		t.Errorf("expected Fuc mass 146.0579088 but got %f", tr.Mass())
	}
	if _, ok := ByName("Kdn"); ok {
		t.Errorf("did not expect to find transition Kdn")
	}
}
