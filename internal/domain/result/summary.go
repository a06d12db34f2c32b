package result

// Summary is the class-level overview of a result sheet.
type Summary struct {
	Students          int            `json:"students"`
	Passed            int            `json:"passed"`
	Failed            int            `json:"failed"`
	PassRate          float64        `json:"pass_rate"`
	AverageGPA        float64        `json:"average_gpa"`
	HighestTotal      float64        `json:"highest_total"`
	GradeDistribution map[Grade]int  `json:"grade_distribution"`
	SubjectFailures   map[string]int `json:"subject_failures"`
}

// Summarize aggregates processed results. AverageGPA is over passing
// students only.
func Summarize(results []ProcessedResult) Summary {
	s := Summary{
		Students:          len(results),
		GradeDistribution: make(map[Grade]int, len(Grades)),
		SubjectFailures:   make(map[string]int),
	}
	for _, g := range Grades {
		s.GradeDistribution[g] = 0
	}

	var gpaSum float64
	for i, r := range results {
		s.GradeDistribution[r.Grade]++
		if r.IsPass {
			s.Passed++
			gpaSum += r.GPA
		} else {
			s.Failed++
		}
		if i == 0 || r.TotalObtained > s.HighestTotal {
			s.HighestTotal = r.TotalObtained
		}
		for _, sub := range r.Subjects {
			if sub.Failed {
				s.SubjectFailures[sub.Subject]++
			}
		}
	}

	if s.Students > 0 {
		s.PassRate = round2(float64(s.Passed) / float64(s.Students) * 100)
	}
	if s.Passed > 0 {
		s.AverageGPA = round2(gpaSum / float64(s.Passed))
	}
	return s
}
