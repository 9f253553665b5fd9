package model

// Grade is an ordinal sustainability score, A+ (best) through F (worst).
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// gradeBound pairs a closed upper bound on carbon footprint (kg CO2e)
// with the grade awarded at or below it.
type gradeBound struct {
	max   float64
	grade Grade
}

// Bounds are inclusive: exactly 1.5 kg is still A+.
var gradeBounds = []gradeBound{
	{1.5, GradeAPlus},
	{3.0, GradeA},
	{5.0, GradeB},
	{8.0, GradeC},
	{12.0, GradeD},
}

// Classify maps a carbon footprint to its grade. It is total for any
// finite non-negative input; callers validate sign and numericness
// before calling.
func Classify(carbonFootprint float64) Grade {
	for _, b := range gradeBounds {
		if carbonFootprint <= b.max {
			return b.grade
		}
	}
	return GradeF
}

var gradeRanks = map[Grade]int{
	GradeAPlus: 0,
	GradeA:     1,
	GradeB:     2,
	GradeC:     3,
	GradeD:     4,
	GradeF:     5,
}

// Rank returns the grade's position in the ordinal, 0 for A+ through 5
// for F. Grades sort by rank, not lexicographically ("A" < "A+" as
// strings but A+ outranks A). Unknown grades rank last.
func (g Grade) Rank() int {
	if r, ok := gradeRanks[g]; ok {
		return r
	}
	return len(gradeRanks)
}

// Valid reports whether g is one of the six defined grades.
func (g Grade) Valid() bool {
	_, ok := gradeRanks[g]
	return ok
}

// ParseGrade validates a user-supplied grade string, e.g. a catalog
// filter value. The second return is false for anything outside the
// six defined grades.
func ParseGrade(s string) (Grade, bool) {
	g := Grade(s)
	return g, g.Valid()
}
