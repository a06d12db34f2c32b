package result

// Student is one student of the class or group being processed.
type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Roll int    `json:"roll"`
}

// Mark is one student's marks in one subject. Nil parts were not entered.
type Mark struct {
	StudentID string   `json:"student_id"`
	Written   *float64 `json:"written,omitempty"`
	MCQ       *float64 `json:"mcq,omitempty"`
	Practical *float64 `json:"practical,omitempty"`
}

// Obtained returns the sum of the entered parts.
func (m Mark) Obtained() float64 {
	var total float64
	for _, part := range []*float64{m.Written, m.MCQ, m.Practical} {
		if part != nil {
			total += *part
		}
	}
	return total
}

// ClassResult is the mark sheet of one subject for a class (and group).
type ClassResult struct {
	AcademicYear string  `json:"academic_year"`
	ClassName    string  `json:"class_name"`
	Group        string  `json:"group,omitempty"`
	Subject      string  `json:"subject"`
	FullMarks    float64 `json:"full_marks"`
	Marks        []Mark  `json:"marks"`
}

// Subject is a subject taught to the class or group.
type Subject struct {
	Name      string  `json:"name"`
	FullMarks float64 `json:"full_marks"`
}

// SubjectResult is one student's outcome in one subject.
type SubjectResult struct {
	Subject    string  `json:"subject"`
	Obtained   float64 `json:"obtained"`
	FullMarks  float64 `json:"full_marks"`
	Percentage float64 `json:"percentage"`
	Grade      Grade   `json:"grade"`
	Point      float64 `json:"point"`
	Failed     bool    `json:"failed"`

	// Absent is set when the mark sheet has no entry for the student.
	Absent bool `json:"absent,omitempty"`

	// InvalidFullMarks is set when the mark sheet's full marks were not
	// positive; such a subject counts as failed.
	InvalidFullMarks bool `json:"invalid_full_marks,omitempty"`
}

// ProcessedResult is one student's overall result.
type ProcessedResult struct {
	StudentID      string          `json:"student_id"`
	Name           string          `json:"name"`
	Roll           int             `json:"roll"`
	Subjects       []SubjectResult `json:"subjects"`
	TotalObtained  float64         `json:"total_obtained"`
	TotalFullMarks float64         `json:"total_full_marks"`
	GPA            float64         `json:"gpa"`
	Grade          Grade           `json:"grade"`
	IsPass         bool            `json:"is_pass"`
	FailedSubjects int             `json:"failed_subjects"`

	// MeritPosition is nil for failing students.
	MeritPosition *int `json:"merit_position,omitempty"`
}

// Percentage returns the overall percentage of marks obtained.
func (r ProcessedResult) Percentage() float64 {
	if r.TotalFullMarks <= 0 {
		return 0
	}
	return round2(r.TotalObtained / r.TotalFullMarks * 100)
}
