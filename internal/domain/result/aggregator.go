package result

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// sheet is a mark sheet indexed by student.
type sheet struct {
	fullMarks float64
	marks     map[string]Mark
}

// Process computes every student's result from the subject mark sheets.
//
// students are expected to be already filtered to one class or group and the
// output keeps their order. subjects lists the subjects that count for them;
// mark sheets for other subjects are ignored. The inputs are not modified.
func Process(students []Student, records []ClassResult, subjects []Subject) []ProcessedResult {
	sheets := indexSheets(records)

	out := make([]ProcessedResult, len(students))
	for i, st := range students {
		out[i] = processStudent(st, subjects, sheets)
	}

	assignMerit(out)
	return out
}

// indexSheets keys mark sheets by subject name. The first sheet for a subject
// wins, and within a sheet the first entry for a student wins.
func indexSheets(records []ClassResult) map[string]sheet {
	sheets := make(map[string]sheet, len(records))
	for _, r := range records {
		key := SubjectKey(r.Subject)
		if _, dup := sheets[key]; dup {
			continue
		}
		marks := make(map[string]Mark, len(r.Marks))
		for _, m := range r.Marks {
			if _, seen := marks[m.StudentID]; seen {
				continue
			}
			marks[m.StudentID] = m
		}
		sheets[key] = sheet{fullMarks: r.FullMarks, marks: marks}
	}
	return sheets
}

func processStudent(st Student, subjects []Subject, sheets map[string]sheet) ProcessedResult {
	res := ProcessedResult{
		StudentID: st.ID,
		Name:      st.Name,
		Roll:      st.Roll,
		Subjects:  make([]SubjectResult, 0, len(subjects)),
	}

	var obtained, full, points float64
	for _, sub := range subjects {
		sr := gradeSubject(st.ID, sub, sheets)
		res.Subjects = append(res.Subjects, sr)

		obtained += sr.Obtained
		full += sr.FullMarks
		points += sr.Point
		if sr.Failed {
			res.FailedSubjects++
		}
	}

	res.TotalObtained = round2(obtained)
	res.TotalFullMarks = round2(full)
	res.IsPass = len(subjects) > 0 && res.FailedSubjects == 0

	if res.IsPass {
		res.GPA = round2(points / float64(len(subjects)))
		res.Grade = GradeForGPA(res.GPA)
	} else {
		res.GPA = 0
		res.Grade = GradeF
	}

	return res
}

func gradeSubject(studentID string, sub Subject, sheets map[string]sheet) SubjectResult {
	fullMarks := DefaultFullMarks
	var (
		mark  Mark
		found bool
	)
	if sh, ok := sheets[SubjectKey(sub.Name)]; ok {
		fullMarks = sh.fullMarks
		mark, found = sh.marks[studentID]
	}

	sr := SubjectResult{
		Subject:   sub.Name,
		Obtained:  mark.Obtained(),
		FullMarks: fullMarks,
		Absent:    !found,
	}

	if fullMarks <= 0 || math.IsNaN(fullMarks) || math.IsInf(fullMarks, 0) {
		sr.FullMarks = 0
		sr.InvalidFullMarks = true
		sr.Grade = GradeF
		sr.Failed = true
		return sr
	}

	// Multiply first so whole-mark boundaries like 33/100 stay exact.
	// Grading uses the exact value; only the reported one is rounded.
	pct := sr.Obtained * 100 / fullMarks
	sr.Grade, sr.Point = GradeForPercentage(pct)
	sr.Failed = !IsPassing(pct)
	sr.Percentage = round2(pct)
	return sr
}

// SubjectKey is the form subject names are matched on: trimmed, inner
// whitespace collapsed and NFC, so decomposed Bengali input still matches.
func SubjectKey(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}
