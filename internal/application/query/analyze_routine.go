package query

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alem-hub/school-core/internal/domain/routine"
	"github.com/alem-hub/school-core/internal/domain/shared"
	"github.com/alem-hub/school-core/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ANALYZE ROUTINE QUERY
// Checks a weekly class routine for clashes and computes teacher and class
// statistics.
// ══════════════════════════════════════════════════════════════════════════════

// AnalyzeRoutineQuery holds a timetable as class → day → period cells.
// Cells use the "<subject> - <teacher>/<teacher>" form.
type AnalyzeRoutineQuery struct {
	Timetable map[string]map[string][]string `json:"timetable" validate:"dive,keys,notblank,endkeys"`
}

// TeacherLoadDTO is the weekly load of one teacher.
type TeacherLoadDTO struct {
	Teacher          string         `json:"teacher"`
	Color            string         `json:"color"`
	TotalPeriods     int            `json:"total_periods"`
	LastPeriods      int            `json:"last_periods"`
	BusiestDay       string         `json:"busiest_day,omitempty"`
	Daily            map[string]int `json:"daily"`
	LastPeriodByDay  map[string]int `json:"last_period_by_day"`
	BeforeBreakByDay map[string]int `json:"before_break_by_day"`
	AfterBreakByDay  map[string]int `json:"after_break_by_day"`
}

// ClassStatsDTO is the weekly subject distribution of one class.
type ClassStatsDTO struct {
	Class        string         `json:"class"`
	TotalPeriods int            `json:"total_periods"`
	Subjects     map[string]int `json:"subjects"`
}

// RoutineReportDTO is the outcome of one routine analysis.
type RoutineReportDTO struct {
	ReportID    string    `json:"report_id"`
	Fingerprint string    `json:"fingerprint"`
	GeneratedAt time.Time `json:"generated_at"`

	Days       []string `json:"days"`
	Periods    int      `json:"periods"`
	BreakAfter int      `json:"break_after"`

	// Conflicts maps each conflict kind to its sorted slot keys. Every kind
	// is present, possibly with no keys.
	Conflicts map[string][]string `json:"conflicts"`
	// Cells maps each flagged slot key to its conflict kinds, in report
	// order. Clean slots are absent.
	Cells        map[string][]string `json:"cells"`
	FlaggedCells int                 `json:"flagged_cells"`

	Teachers        []TeacherLoadDTO  `json:"teachers"`
	Classes         []ClassStatsDTO   `json:"classes"`
	TeacherColors   map[string]string `json:"teacher_colors"`
	UnknownTeachers []string          `json:"unknown_teachers"`

	// Cached is set when the report was served from the report cache.
	Cached bool `json:"cached"`
}

// AnalyzeRoutineHandler runs routine analyses.
type AnalyzeRoutineHandler struct {
	analyzer   *routine.Analyzer
	refVersion string
	cache      ReportCache
	log        *logger.Logger

	now   func() time.Time
	newID func() string
}

// NewAnalyzeRoutineHandler creates the handler. refVersion identifies the
// reference data the analyzer was built with and is part of the cache key.
// cache and log may be nil.
func NewAnalyzeRoutineHandler(
	analyzer *routine.Analyzer,
	refVersion string,
	cache ReportCache,
	log *logger.Logger,
) *AnalyzeRoutineHandler {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AnalyzeRoutineHandler{
		analyzer:   analyzer,
		refVersion: refVersion,
		cache:      cache,
		log:        log.With(logger.Component("routine")),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Handle analyses the timetable. Cache failures are logged and otherwise
// ignored.
func (h *AnalyzeRoutineHandler) Handle(ctx context.Context, q AnalyzeRoutineQuery) (*RoutineReportDTO, error) {
	const op = "AnalyzeRoutine"
	start := h.now()

	if err := ctx.Err(); err != nil {
		return nil, shared.WrapError("query", op, shared.ErrTimeout, "context done", err)
	}
	if len(q.Timetable) == 0 {
		return nil, shared.ErrEmptyTimetable
	}
	if err := validate.StructCtx(ctx, q); err != nil {
		return nil, validationError(op, err)
	}

	layout := h.analyzer.Layout()
	key, err := fingerprint("routine", h.refVersion, layout, q.Timetable)
	if err != nil {
		return nil, shared.WrapError("query", op, shared.ErrInvalidInput, "unencodable timetable", err)
	}
	log := h.log.With(logger.Operation(op), logger.Fingerprint(key))

	var cached RoutineReportDTO
	hit, err := h.cache.GetReport(ctx, key, &cached)
	if err != nil {
		log.Warn("report cache read failed", logger.Err(err))
	}
	if hit {
		cached.Cached = true
		log.Info("routine report served from cache",
			logger.ReportID(cached.ReportID), logger.CacheHit(true), logger.Latency(h.now().Sub(start)))
		return &cached, nil
	}

	timetable, err := routine.NewTimetable(q.Timetable)
	if err != nil {
		return nil, err
	}
	analysis := h.analyzer.Analyze(timetable)
	report := newRoutineReport(h.newID(), h.now().UTC(), key, layout, analysis)

	for _, teacher := range analysis.UnknownTeachers {
		log.Debug("teacher missing from allocation table", logger.Teacher(teacher))
	}
	if err := h.cache.SetReport(ctx, key, report); err != nil {
		log.Warn("report cache write failed", logger.Err(err))
	}

	log.Info("routine analysed",
		logger.ReportID(report.ReportID),
		logger.Count("classes", timetable.Len()),
		logger.Count("flagged_cells", report.FlaggedCells),
		logger.Bool("clean", analysis.Conflicts.IsEmpty()),
		logger.CacheHit(false),
		logger.Latency(h.now().Sub(start)),
	)
	return report, nil
}

func newRoutineReport(id string, at time.Time, key string, layout routine.Layout, a *routine.Analysis) *RoutineReportDTO {
	r := &RoutineReportDTO{
		ReportID:        id,
		Fingerprint:     key,
		GeneratedAt:     at,
		Days:            layout.Days,
		Periods:         layout.Periods,
		BreakAfter:      layout.BreakAfter,
		Conflicts:       make(map[string][]string, len(routine.ConflictKinds)),
		Cells:           make(map[string][]string),
		FlaggedCells:    a.Conflicts.Flagged(),
		TeacherColors:   a.TeacherColors,
		UnknownTeachers: a.UnknownTeachers,
	}
	if r.UnknownTeachers == nil {
		r.UnknownTeachers = []string{}
	}

	for _, kind := range routine.ConflictKinds {
		keys := a.Conflicts.Keys(kind)
		out := make([]string, len(keys))
		for i, k := range keys {
			out[i] = string(k)
			if _, done := r.Cells[out[i]]; !done {
				r.Cells[out[i]] = kindNames(a.Conflicts.Kinds(k))
			}
		}
		r.Conflicts[string(kind)] = out
	}

	r.Teachers = make([]TeacherLoadDTO, 0, len(a.TeacherStats))
	for _, load := range a.TeacherStats {
		daily := make(map[string]int, len(layout.Days))
		for _, d := range layout.Days {
			daily[d] = load.Daily(d)
		}
		busiest, n := load.BusiestDay(layout.Days)
		if n == 0 {
			busiest = ""
		}
		r.Teachers = append(r.Teachers, TeacherLoadDTO{
			Teacher:          load.Teacher,
			Color:            a.TeacherColors[load.Teacher],
			TotalPeriods:     load.TotalPeriods,
			LastPeriods:      load.LastPeriods(),
			BusiestDay:       busiest,
			Daily:            daily,
			LastPeriodByDay:  load.LastPeriodByDay,
			BeforeBreakByDay: load.BeforeBreakByDay,
			AfterBreakByDay:  load.AfterBreakByDay,
		})
	}
	// Heaviest load first, then by name.
	sort.Slice(r.Teachers, func(i, j int) bool {
		if r.Teachers[i].TotalPeriods != r.Teachers[j].TotalPeriods {
			return r.Teachers[i].TotalPeriods > r.Teachers[j].TotalPeriods
		}
		return r.Teachers[i].Teacher < r.Teachers[j].Teacher
	})

	r.Classes = make([]ClassStatsDTO, 0, len(a.ClassStats))
	for class, freq := range a.ClassStats {
		r.Classes = append(r.Classes, ClassStatsDTO{
			Class:        class,
			TotalPeriods: freq.Total(),
			Subjects:     freq,
		})
	}
	sort.Slice(r.Classes, func(i, j int) bool { return r.Classes[i].Class < r.Classes[j].Class })

	return r
}

func kindNames(kinds []routine.ConflictKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
