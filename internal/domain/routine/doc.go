// Package routine contains the weekly class routine (timetable) model and
// the conflict analyzer that runs over it.
//
// A routine maps every class to its days, and every day to an ordered row of
// period cells. Cells arrive from the spreadsheet-fed school data as encoded
// strings such as
//
//	"বাও বি - আনিছুর/শান্তি"
//
// and are parsed exactly once, at the ingestion boundary, into a Cell with
// separate subject and teacher lists. Everything downstream works on Cells.
//
// # Analysis
//
// Analyzer.Analyze folds over every (day, class, period) triple of a
// Timetable and produces an immutable Analysis:
//
//   - Conflicts: five independent sets of slot keys ("<class>-<day>-<period>"),
//     one per ConflictKind. A slot can carry several kinds at once.
//   - TeacherStats: weekly load per allocated teacher, split by day into
//     last-period, before-break and after-break counts.
//   - ClassStats: weekly periods per canonical subject for every class.
//   - TeacherColors: a stable display colour per teacher.
//
// Reference data (the teacher allocation table and the subject alias table)
// is supplied by the caller; nothing is compiled in. Both are immutable once
// built, so one Analyzer can serve concurrent callers.
//
// Malformed input never fails the analysis: missing cells are empty, unknown
// teachers are still checked for clashes but skipped for allocation checks and
// statistics.
package routine
