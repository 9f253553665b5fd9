package store

import (
	"reflect"
	"testing"

	"github.com/ecocart/ecocart/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilterEmpty(t *testing.T) {
	f := buildFilter(Query{})
	if len(f) != 0 {
		t.Fatalf("empty query must build empty filter, got %v", f)
	}
}

func TestBuildFilterFields(t *testing.T) {
	min, max := 5.0, 20.0
	f := buildFilter(Query{
		Category:   "kitchen",
		Grade:      model.GradeB,
		MinPrice:   &min,
		MaxPrice:   &max,
		ExcludeIDs: []string{"a", "b"},
	})
	if f["category"] != "kitchen" {
		t.Fatalf("category: %v", f["category"])
	}
	if f["ecoScore"] != "B" {
		t.Fatalf("ecoScore: %v", f["ecoScore"])
	}
	pr, ok := f["price"].(bson.M)
	if !ok || pr["$gte"] != 5.0 || pr["$lte"] != 20.0 {
		t.Fatalf("price range: %v", f["price"])
	}
	nin, ok := f["_id"].(bson.M)
	if !ok || !reflect.DeepEqual(nin["$nin"], []string{"a", "b"}) {
		t.Fatalf("exclusions: %v", f["_id"])
	}
}

func TestBuildFilterHalfOpenRange(t *testing.T) {
	min := 5.0
	f := buildFilter(Query{MinPrice: &min})
	pr := f["price"].(bson.M)
	if pr["$gte"] != 5.0 {
		t.Fatalf("min bound: %v", pr)
	}
	if _, ok := pr["$lte"]; ok {
		t.Fatalf("unexpected max bound: %v", pr)
	}
}

func TestBuildFilterSearchEscaped(t *testing.T) {
	f := buildFilter(Query{Search: "C++ (50%)"})
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("search must OR across three fields: %v", f["$or"])
	}
	re := or[0].(bson.M)["name"].(primitive.Regex)
	if re.Options != "i" {
		t.Fatalf("search must be case-insensitive, options=%q", re.Options)
	}
	// Metacharacters are quoted so "+", "(" and ")" match literally.
	want := `C\+\+ \(50%\)`
	if re.Pattern != want {
		t.Fatalf("pattern = %q, want %q", re.Pattern, want)
	}
	for i, field := range []string{"name", "brand", "description"} {
		m := or[i].(bson.M)
		if _, ok := m[field]; !ok {
			t.Fatalf("clause %d missing field %s: %v", i, field, m)
		}
	}
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		sort Sort
		key  string
		dir  int
	}{
		{SortPriceAsc, "price", 1},
		{SortPriceDesc, "price", -1},
		{SortCarbonAsc, "carbonFootprint", 1},
		{SortNewest, "createdAt", -1},
		{SortGrade, "ecoScoreRank", 1},
		{Sort(""), "ecoScoreRank", 1},
	}
	for _, tt := range tests {
		d := buildSort(tt.sort)
		if len(d) != 1 || d[0].Key != tt.key || d[0].Value != tt.dir {
			t.Fatalf("buildSort(%q) = %v, want %s:%d", tt.sort, d, tt.key, tt.dir)
		}
	}
}
