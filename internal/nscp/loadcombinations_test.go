package nscp

import (
	"math"
	"testing"
)

func TestFactoredLoad(t *testing.T) {
	loads := PointLoads{Dead: 50, Live: 30}
	cases := []struct {
		combo LoadCombination
		want  float64
	}{
		{LoadCombinations[0], 70},  // 1.4D
		{LoadCombinations[1], 108}, // 1.2D + 1.6L
		{LoadCombinations[5], 45},  // 0.9D
	}
	for _, c := range cases {
		if got := c.combo.FactoredLoad(loads); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("combo %s: got %v, want %v", c.combo.ID, got, c.want)
		}
	}
}

func TestGoverningLoad(t *testing.T) {
	pu, combo, ok := GoverningLoad(PointLoads{Dead: 50, Live: 30}, SimplifiedCombinations)
	if !ok {
		t.Fatal("expected a governing combination")
	}
	if combo.ID != "2" {
		t.Fatalf("governing = %s, want 2", combo.ID)
	}
	if math.Abs(pu-108) > 1e-9 {
		t.Fatalf("Pu = %v, want 108", pu)
	}

	pu, combo, ok = GoverningLoad(PointLoads{Dead: 10, Wind: 100}, LoadCombinations)
	if !ok || combo.ID != "4" {
		t.Fatalf("governing = %s (ok=%v), want 4", combo.ID, ok)
	}
	if math.Abs(pu-112) > 1e-9 {
		t.Fatalf("Pu = %v, want 112", pu)
	}
}

func TestGoverningLoadNone(t *testing.T) {
	if _, _, ok := GoverningLoad(PointLoads{}, LoadCombinations); ok {
		t.Fatal("zero loads must not produce a governing combination")
	}
	if !(PointLoads{}).IsZero() {
		t.Fatal("expected IsZero")
	}
}
