package routine

import "sort"

// Analysis is the immutable result of analysing one timetable.
type Analysis struct {
	Conflicts *Conflicts

	// TeacherStats holds one entry per allocated teacher, including those
	// with no periods.
	TeacherStats map[string]TeacherLoad

	// ClassStats holds one entry per timetable class.
	ClassStats ClassStats

	// TeacherColors covers allocated teachers and every teacher seen in the
	// timetable.
	TeacherColors map[string]string

	// UnknownTeachers are names found in the timetable but absent from the
	// allocation table, sorted.
	UnknownTeachers []string
}

// Analyzer runs routine checks against fixed reference data.
// It is safe for concurrent use.
type Analyzer struct {
	layout     Layout
	allocation *Allocation
	normalizer *SubjectNormalizer
}

// NewAnalyzer creates an analyzer for the layout and reference data.
// allocation and normalizer may be nil.
func NewAnalyzer(layout Layout, allocation *Allocation, normalizer *SubjectNormalizer) (*Analyzer, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	days := make([]string, len(layout.Days))
	for i, d := range layout.Days {
		days[i] = cleanName(d)
	}
	layout.Days = days

	return &Analyzer{
		layout:     layout,
		allocation: allocation,
		normalizer: normalizer,
	}, nil
}

// Analyze runs the checks on the default week layout.
func Analyze(t *Timetable, allocation *Allocation, normalizer *SubjectNormalizer) *Analysis {
	a, _ := NewAnalyzer(DefaultLayout(), allocation, normalizer)
	return a.Analyze(t)
}

// Layout returns a copy of the analyzer's week layout.
func (a *Analyzer) Layout() Layout {
	l := a.layout
	l.Days = append([]string(nil), a.layout.Days...)
	return l
}

// Analyze folds over every (day, class, period) of the timetable.
func (a *Analyzer) Analyze(t *Timetable) *Analysis {
	classes := t.Classes()
	conflicts := newConflicts()

	loads := make(map[string]*TeacherLoad, a.allocation.Len())
	for _, teacher := range a.allocation.Teachers() {
		loads[teacher] = newTeacherLoad(teacher, a.layout.Days)
	}
	classStats := make(ClassStats, len(classes))
	for _, class := range classes {
		classStats[class] = make(SubjectFrequency)
	}
	unknown := make(map[string]struct{})

	for _, day := range a.layout.Days {
		rows := make(map[string][]Cell, len(classes))
		for _, class := range classes {
			rows[class] = t.Row(class, day, a.layout.Periods)
		}

		for p := 0; p < a.layout.Periods; p++ {
			a.checkDoubleBooking(conflicts, classes, rows, day, p)
		}

		for _, class := range classes {
			row := rows[class]
			subjects := make([][]string, len(row))
			for p, cell := range row {
				subjects[p] = a.normalizer.NormalizeAll(cell.Subjects)
			}

			a.checkAdjacent(conflicts, class, day, row)
			a.checkRepetition(conflicts, class, day, subjects)
			a.checkAllocation(conflicts, class, day, row, subjects)

			for p, cell := range row {
				for _, s := range subjects[p] {
					classStats[class][s]++
				}
				for _, teacher := range uniqueStrings(cell.Teachers) {
					load, ok := loads[teacher]
					if !ok {
						unknown[teacher] = struct{}{}
						continue
					}
					load.TotalPeriods++
					if p == a.layout.LastPeriod() {
						load.LastPeriodByDay[day]++
					}
					if a.layout.BeforeBreak(p) {
						load.BeforeBreakByDay[day]++
					} else {
						load.AfterBreakByDay[day]++
					}
				}
			}
		}
	}

	stats := make(map[string]TeacherLoad, len(loads))
	for name, l := range loads {
		stats[name] = *l
	}

	unknownList := make([]string, 0, len(unknown))
	for t := range unknown {
		unknownList = append(unknownList, t)
	}
	sort.Strings(unknownList)

	return &Analysis{
		Conflicts:       conflicts,
		TeacherStats:    stats,
		ClassStats:      classStats,
		TeacherColors:   AssignColors(a.allocation.Teachers(), unknownList),
		UnknownTeachers: unknownList,
	}
}

// checkDoubleBooking flags every class in a slot whose teacher also appears
// in another class's cell for the same slot.
func (a *Analyzer) checkDoubleBooking(c *Conflicts, classes []string, rows map[string][]Cell, day string, period int) {
	byTeacher := make(map[string][]string)
	for _, class := range classes {
		for _, teacher := range uniqueStrings(rows[class][period].Teachers) {
			byTeacher[teacher] = append(byTeacher[teacher], class)
		}
	}
	for _, booked := range byTeacher {
		if len(booked) < 2 {
			continue
		}
		for _, class := range booked {
			c.add(TeacherClash, NewSlotKey(class, day, period))
		}
	}
}

// checkAdjacent flags adjacent periods sharing a teacher. Pairs across the
// break are reported as BreakClash, all others as ConsecutiveClassClash.
func (a *Analyzer) checkAdjacent(c *Conflicts, class, day string, row []Cell) {
	for _, pair := range a.layout.ConsecutivePairs() {
		if row[pair[0]].SharesTeacher(row[pair[1]]) {
			c.add(ConsecutiveClassClash, NewSlotKey(class, day, pair[0]), NewSlotKey(class, day, pair[1]))
		}
	}
	if pair, ok := a.layout.BreakPair(); ok {
		if row[pair[0]].SharesTeacher(row[pair[1]]) {
			c.add(BreakClash, NewSlotKey(class, day, pair[0]), NewSlotKey(class, day, pair[1]))
		}
	}
}

// checkRepetition flags every period of a subject taught more than once in
// the day.
func (a *Analyzer) checkRepetition(c *Conflicts, class, day string, subjects [][]string) {
	periods := make(map[string][]int)
	for p, subs := range subjects {
		for _, s := range subs {
			periods[s] = append(periods[s], p)
		}
	}
	for _, ps := range periods {
		if len(ps) < 2 {
			continue
		}
		for _, p := range ps {
			c.add(SubjectRepetitionClash, NewSlotKey(class, day, p))
		}
	}
}

// checkAllocation flags cells where a known teacher is not allocated any of
// the cell's subjects in this class.
func (a *Analyzer) checkAllocation(c *Conflicts, class, day string, row []Cell, subjects [][]string) {
	for p, cell := range row {
		if len(subjects[p]) == 0 || !cell.HasTeacher() {
			continue
		}
		for _, teacher := range cell.Teachers {
			if !a.allocation.Knows(teacher) {
				continue
			}
			if !a.allocation.AllowsAny(teacher, subjects[p], class) {
				c.add(TeacherSubjectMismatch, NewSlotKey(class, day, p))
				break
			}
		}
	}
}
