package model

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want Grade
	}{
		{"zero", 0, GradeAPlus},
		{"inside A+", 1.0, GradeAPlus},
		{"exact A+ bound", 1.5, GradeAPlus},
		{"just past A+ bound", 1.50001, GradeA},
		{"exact A bound", 3.0, GradeA},
		{"just past A bound", 3.00001, GradeB},
		{"exact B bound", 5.0, GradeB},
		{"inside C", 6.5, GradeC},
		{"exact C bound", 8.0, GradeC},
		{"exact D bound", 12.0, GradeD},
		{"just past D bound", 12.00001, GradeF},
		{"far out", 999, GradeF},
	}
	for _, tt := range tests {
		if got := Classify(tt.v); got != tt.want {
			t.Fatalf("%s: Classify(%v) = %q, want %q", tt.name, tt.v, got, tt.want)
		}
	}
}

func TestClassifyTotalAndMonotonic(t *testing.T) {
	prev := -1
	for v := 0.0; v <= 20.0; v += 0.01 {
		g := Classify(v)
		if !g.Valid() {
			t.Fatalf("Classify(%v) = %q, not a defined grade", v, g)
		}
		if g.Rank() < prev {
			t.Fatalf("grade improved as footprint rose at v=%v", v)
		}
		prev = g.Rank()
	}
}

func TestGradeRankOrder(t *testing.T) {
	order := []Grade{GradeAPlus, GradeA, GradeB, GradeC, GradeD, GradeF}
	for i, g := range order {
		if g.Rank() != i {
			t.Fatalf("Rank(%q) = %d, want %d", g, g.Rank(), i)
		}
	}
	if Grade("Z").Rank() <= GradeF.Rank() {
		t.Fatalf("unknown grade must rank after F")
	}
}

func TestParseGrade(t *testing.T) {
	if g, ok := ParseGrade("A+"); !ok || g != GradeAPlus {
		t.Fatalf("ParseGrade(A+) = %q, %v", g, ok)
	}
	for _, bad := range []string{"", "a", "E", "A++", "best"} {
		if _, ok := ParseGrade(bad); ok {
			t.Fatalf("ParseGrade(%q) accepted", bad)
		}
	}
}

func TestProductDerivedFields(t *testing.T) {
	var p Product
	p.SetCarbonFootprint(2.4)
	if p.EcoScore != GradeA || p.EcoScoreRank != GradeA.Rank() {
		t.Fatalf("unexpected score after set: %+v", p)
	}
	p.SetCarbonFootprint(13)
	if p.EcoScore != GradeF {
		t.Fatalf("score not rederived on change: %q", p.EcoScore)
	}
	p.SetStock(3)
	if !p.InStock {
		t.Fatalf("expected in stock")
	}
	p.SetStock(0)
	if p.InStock {
		t.Fatalf("expected out of stock")
	}
}
