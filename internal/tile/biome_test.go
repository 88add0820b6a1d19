package tile

import "testing"

func TestBiomeAdjacencyGraphIsBidirectional(t *testing.T) {
	for from, edges := range validTransitions {
		for _, to := range edges {
			if !CanTransition(to, from) {
				t.Fatalf("adjacency graph not bidirectional: %s -> %s exists but %s -> %s does not", from, to, to, from)
			}
		}
	}
}

func TestCanTransitionSelfAlwaysAllowed(t *testing.T) {
	for b := BiomeOcean; b <= BiomeBarren; b++ {
		if !CanTransition(b, b) {
			t.Fatalf("%s -> %s (self) must always be allowed", b, b)
		}
	}
}

func TestCanTransitionRejectsUnlistedEdge(t *testing.T) {
	if CanTransition(BiomeOcean, BiomeDesert) {
		t.Fatal("Ocean -> Desert is not in the adjacency graph and must be rejected")
	}
}

func TestTransitionResistanceIncreasesWithAge(t *testing.T) {
	young := TransitionResistance(0)
	old := TransitionResistance(1000)
	if young != 0 {
		t.Fatalf("resistance at age 0 must be 0, got %v", young)
	}
	if old <= young {
		t.Fatalf("resistance must increase with age: young=%v old=%v", young, old)
	}
	if old >= 1 {
		t.Fatalf("resistance must stay below 1, got %v", old)
	}
	half := TransitionResistance(200)
	if half < 0.49 || half > 0.51 {
		t.Fatalf("resistance at the half-life tick count should be ~0.5, got %v", half)
	}
}
