package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alem-hub/school-core/internal/domain/result"
	"github.com/alem-hub/school-core/internal/domain/shared"
	"github.com/alem-hub/school-core/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROCESS RESULTS QUERY
// Grades every student of a class or group, decides pass/fail and GPA, and
// ranks passing students by total marks.
// ══════════════════════════════════════════════════════════════════════════════

// StudentInput is one roster entry.
type StudentInput struct {
	ID   string `json:"id" validate:"notblank"`
	Name string `json:"name"`
	Roll int    `json:"roll" validate:"gte=0"`
}

// SubjectInput is one subject taken by the class or group.
type SubjectInput struct {
	Name      string  `json:"name" validate:"notblank"`
	FullMarks float64 `json:"full_marks"`
}

// MarkInput is one student's marks on a mark sheet. Omitted parts were not
// entered.
type MarkInput struct {
	StudentID string   `json:"student_id" validate:"notblank"`
	Written   *float64 `json:"written,omitempty"`
	MCQ       *float64 `json:"mcq,omitempty"`
	Practical *float64 `json:"practical,omitempty"`
}

// MarkSheetInput is the mark sheet of one subject. Full marks that are not
// positive fail the subject for everyone on the sheet.
type MarkSheetInput struct {
	AcademicYear string      `json:"academic_year"`
	ClassName    string      `json:"class_name"`
	Group        string      `json:"group,omitempty"`
	Subject      string      `json:"subject" validate:"notblank"`
	FullMarks    float64     `json:"full_marks"`
	Marks        []MarkInput `json:"marks" validate:"dive"`
}

// ProcessResultsQuery is a full result sheet for one class or group.
type ProcessResultsQuery struct {
	Students []StudentInput   `json:"students" validate:"dive"`
	Subjects []SubjectInput   `json:"subjects" validate:"dive"`
	Sheets   []MarkSheetInput `json:"sheets" validate:"dive"`
}

// MeritEntryDTO is one line of the merit list.
type MeritEntryDTO struct {
	Position      int          `json:"position"`
	StudentID     string       `json:"student_id"`
	Name          string       `json:"name"`
	Roll          int          `json:"roll"`
	TotalObtained float64      `json:"total_obtained"`
	Percentage    float64      `json:"percentage"`
	GPA           float64      `json:"gpa"`
	Grade         result.Grade `json:"grade"`
}

// ResultSheetDTO is the processed result sheet.
type ResultSheetDTO struct {
	ReportID    string    `json:"report_id"`
	Fingerprint string    `json:"fingerprint"`
	GeneratedAt time.Time `json:"generated_at"`

	AcademicYear string `json:"academic_year,omitempty"`
	ClassName    string `json:"class_name,omitempty"`
	Group        string `json:"group,omitempty"`

	// Results keep roster order.
	Results   []result.ProcessedResult `json:"results"`
	MeritList []MeritEntryDTO          `json:"merit_list"`
	Summary   result.Summary           `json:"summary"`

	Cached bool `json:"cached"`
}

// ProcessResultsHandler processes result sheets.
type ProcessResultsHandler struct {
	cache ReportCache
	log   *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewProcessResultsHandler creates the handler. cache and log may be nil.
func NewProcessResultsHandler(cache ReportCache, log *logger.Logger) *ProcessResultsHandler {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProcessResultsHandler{
		cache: cache,
		log:   log.With(logger.Component("result")),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Handle validates and processes the sheet.
func (h *ProcessResultsHandler) Handle(ctx context.Context, q ProcessResultsQuery) (*ResultSheetDTO, error) {
	const op = "ProcessResults"
	start := h.now()

	if err := ctx.Err(); err != nil {
		return nil, shared.WrapError("query", op, shared.ErrTimeout, "context done", err)
	}
	if len(q.Students) == 0 {
		return nil, shared.ErrNoStudents
	}
	if err := validate.StructCtx(ctx, q); err != nil {
		return nil, validationError(op, err)
	}
	if err := checkSheet(q); err != nil {
		return nil, err
	}

	key, err := fingerprint("result", q)
	if err != nil {
		return nil, shared.WrapError("query", op, shared.ErrInvalidInput, "unencodable result sheet", err)
	}
	log := h.log.With(logger.Operation(op), logger.Fingerprint(key))

	var cached ResultSheetDTO
	hit, err := h.cache.GetReport(ctx, key, &cached)
	if err != nil {
		log.Warn("report cache read failed", logger.Err(err))
	}
	if hit {
		cached.Cached = true
		log.Info("result sheet served from cache",
			logger.ReportID(cached.ReportID), logger.CacheHit(true), logger.Latency(h.now().Sub(start)))
		return &cached, nil
	}

	students, subjects, records := q.toDomain()
	for _, rec := range unmatchedSheets(records, subjects) {
		log.Warn("mark sheet has no matching subject", logger.String("subject", rec.Subject))
	}
	for _, stray := range strayMarks(students, records) {
		log.Warn("marks for a student not on the roster",
			logger.String("subject", stray.subject), logger.StudentID(stray.studentID))
	}

	processed := result.Process(students, records, subjects)
	sheet := &ResultSheetDTO{
		ReportID:    h.newID(),
		Fingerprint: key,
		GeneratedAt: h.now().UTC(),
		Results:     processed,
		MeritList:   meritList(processed),
		Summary:     result.Summarize(processed),
	}
	if len(records) > 0 {
		sheet.AcademicYear = records[0].AcademicYear
		sheet.ClassName = records[0].ClassName
		sheet.Group = records[0].Group
	}

	if err := h.cache.SetReport(ctx, key, sheet); err != nil {
		log.Warn("report cache write failed", logger.Err(err))
	}

	log.Info("results processed",
		logger.ReportID(sheet.ReportID),
		logger.ClassName(sheet.ClassName),
		logger.Count("students", sheet.Summary.Students),
		logger.Count("passed", sheet.Summary.Passed),
		logger.CacheHit(false),
		logger.Latency(h.now().Sub(start)),
	)
	return sheet, nil
}

// checkSheet enforces what the struct tags cannot: unique student IDs on the
// roster and on every mark sheet, unique subjects and at most one sheet per
// subject, and no negative marks.
func checkSheet(q ProcessResultsQuery) error {
	roster := make(map[string]struct{}, len(q.Students))
	for _, s := range q.Students {
		id := strings.TrimSpace(s.ID)
		if _, dup := roster[id]; dup {
			return shared.WrapError("result", "Validate", shared.ErrDuplicateStudent,
				fmt.Sprintf("student %q listed twice", id), nil)
		}
		roster[id] = struct{}{}
	}

	subjects := make(map[string]struct{}, len(q.Subjects))
	for _, s := range q.Subjects {
		key := result.SubjectKey(s.Name)
		if _, dup := subjects[key]; dup {
			return shared.WrapError("result", "Validate", shared.ErrDuplicateSubject,
				fmt.Sprintf("subject %q listed twice", key), nil)
		}
		subjects[key] = struct{}{}
	}

	sheets := make(map[string]struct{}, len(q.Sheets))
	for _, sheet := range q.Sheets {
		key := result.SubjectKey(sheet.Subject)
		if _, dup := sheets[key]; dup {
			return shared.WrapError("result", "Validate", shared.ErrDuplicateSubject,
				fmt.Sprintf("two mark sheets for %q", key), nil)
		}
		sheets[key] = struct{}{}

		seen := make(map[string]struct{}, len(sheet.Marks))
		for _, m := range sheet.Marks {
			id := strings.TrimSpace(m.StudentID)
			if _, dup := seen[id]; dup {
				return shared.WrapError("result", "Validate", shared.ErrDuplicateStudent,
					fmt.Sprintf("student %q has two entries for %s", id, sheet.Subject), nil)
			}
			seen[id] = struct{}{}

			for _, part := range []*float64{m.Written, m.MCQ, m.Practical} {
				if part != nil && *part < 0 {
					return shared.WrapError("result", "Validate", shared.ErrNegativeMarks,
						fmt.Sprintf("student %q in %s", id, sheet.Subject), nil)
				}
			}
		}
	}
	return nil
}

func (q ProcessResultsQuery) toDomain() ([]result.Student, []result.Subject, []result.ClassResult) {
	students := make([]result.Student, len(q.Students))
	for i, s := range q.Students {
		students[i] = result.Student{ID: strings.TrimSpace(s.ID), Name: s.Name, Roll: s.Roll}
	}

	subjects := make([]result.Subject, len(q.Subjects))
	for i, s := range q.Subjects {
		subjects[i] = result.Subject{Name: s.Name, FullMarks: s.FullMarks}
	}

	records := make([]result.ClassResult, len(q.Sheets))
	for i, sheet := range q.Sheets {
		marks := make([]result.Mark, len(sheet.Marks))
		for j, m := range sheet.Marks {
			marks[j] = result.Mark{
				StudentID: strings.TrimSpace(m.StudentID),
				Written:   m.Written,
				MCQ:       m.MCQ,
				Practical: m.Practical,
			}
		}
		records[i] = result.ClassResult{
			AcademicYear: sheet.AcademicYear,
			ClassName:    sheet.ClassName,
			Group:        sheet.Group,
			Subject:      sheet.Subject,
			FullMarks:    sheet.FullMarks,
			Marks:        marks,
		}
	}
	return students, subjects, records
}

// unmatchedSheets returns sheets whose subject is not in the subject list.
func unmatchedSheets(records []result.ClassResult, subjects []result.Subject) []result.ClassResult {
	known := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		known[result.SubjectKey(s.Name)] = struct{}{}
	}
	var out []result.ClassResult
	for _, r := range records {
		if _, ok := known[result.SubjectKey(r.Subject)]; !ok {
			out = append(out, r)
		}
	}
	return out
}

type strayMark struct {
	subject   string
	studentID string
}

// strayMarks returns mark entries for students not on the roster, in sheet
// order.
func strayMarks(students []result.Student, records []result.ClassResult) []strayMark {
	roster := make(map[string]struct{}, len(students))
	for _, s := range students {
		roster[s.ID] = struct{}{}
	}
	var out []strayMark
	for _, r := range records {
		for _, m := range r.Marks {
			if _, ok := roster[m.StudentID]; !ok {
				out = append(out, strayMark{subject: r.Subject, studentID: m.StudentID})
			}
		}
	}
	return out
}

func meritList(processed []result.ProcessedResult) []MeritEntryDTO {
	ranked := result.MeritList(processed)
	out := make([]MeritEntryDTO, len(ranked))
	for i, r := range ranked {
		out[i] = MeritEntryDTO{
			Position:      *r.MeritPosition,
			StudentID:     r.StudentID,
			Name:          r.Name,
			Roll:          r.Roll,
			TotalObtained: r.TotalObtained,
			Percentage:    r.Percentage(),
			GPA:           r.GPA,
			Grade:         r.Grade,
		}
	}
	return out
}
