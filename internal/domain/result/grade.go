package result

import "math"

// Grade is a letter grade.
type Grade string

const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeB      Grade = "B"
	GradeC      Grade = "C"
	GradeD      Grade = "D"
	GradeF      Grade = "F"
)

// Grades lists every grade from best to worst.
var Grades = []Grade{GradeAPlus, GradeA, GradeAMinus, GradeB, GradeC, GradeD, GradeF}

// PassPercentage is the lowest passing percentage, inclusive.
const PassPercentage = 33.0

// DefaultFullMarks is used for a subject that has no mark sheet.
const DefaultFullMarks = 100.0

// MaxGPA is the highest attainable GPA.
const MaxGPA = 5.0

type percentageBand struct {
	min   float64
	grade Grade
	point float64
}

// percentageBands is ordered from the highest band down.
var percentageBands = []percentageBand{
	{80, GradeAPlus, 5.0},
	{70, GradeA, 4.0},
	{60, GradeAMinus, 3.5},
	{50, GradeB, 3.0},
	{40, GradeC, 2.0},
	{PassPercentage, GradeD, 1.0},
}

type gpaBand struct {
	min   float64
	grade Grade
}

var gpaBands = []gpaBand{
	{5.0, GradeAPlus},
	{4.0, GradeA},
	{3.5, GradeAMinus},
	{3.0, GradeB},
	{2.0, GradeC},
	{1.0, GradeD},
}

// GradeForPercentage maps a subject percentage to its grade and point.
func GradeForPercentage(pct float64) (Grade, float64) {
	if math.IsNaN(pct) {
		return GradeF, 0
	}
	for _, b := range percentageBands {
		if pct >= b.min {
			return b.grade, b.point
		}
	}
	return GradeF, 0
}

// GradeForGPA maps a GPA to the overall letter grade.
func GradeForGPA(gpa float64) Grade {
	for _, b := range gpaBands {
		if gpa >= b.min {
			return b.grade
		}
	}
	return GradeF
}

// IsPassing reports whether the percentage passes a subject.
func IsPassing(pct float64) bool {
	return pct >= PassPercentage
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
