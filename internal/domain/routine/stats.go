package routine

// TeacherLoad is the weekly teaching load of one teacher.
type TeacherLoad struct {
	Teacher      string `json:"teacher"`
	TotalPeriods int    `json:"total_periods"`

	// Per day counts, keyed by day name. Every layout day is present.
	LastPeriodByDay  map[string]int `json:"last_period_by_day"`
	BeforeBreakByDay map[string]int `json:"before_break_by_day"`
	AfterBreakByDay  map[string]int `json:"after_break_by_day"`
}

func newTeacherLoad(teacher string, days []string) *TeacherLoad {
	l := &TeacherLoad{
		Teacher:          teacher,
		LastPeriodByDay:  make(map[string]int, len(days)),
		BeforeBreakByDay: make(map[string]int, len(days)),
		AfterBreakByDay:  make(map[string]int, len(days)),
	}
	for _, d := range days {
		l.LastPeriodByDay[d] = 0
		l.BeforeBreakByDay[d] = 0
		l.AfterBreakByDay[d] = 0
	}
	return l
}

// Daily returns the number of periods taught on the day.
func (l TeacherLoad) Daily(day string) int {
	return l.BeforeBreakByDay[day] + l.AfterBreakByDay[day]
}

// LastPeriods returns how many times in the week the teacher has the final
// period.
func (l TeacherLoad) LastPeriods() int {
	n := 0
	for _, v := range l.LastPeriodByDay {
		n += v
	}
	return n
}

// BusiestDay returns the day with the most periods. Ties go to the earlier
// day in days.
func (l TeacherLoad) BusiestDay(days []string) (string, int) {
	best, most := "", -1
	for _, d := range days {
		if n := l.Daily(d); n > most {
			best, most = d, n
		}
	}
	if most < 0 {
		return "", 0
	}
	return best, most
}

// SubjectFrequency is canonical subject -> weekly periods.
type SubjectFrequency map[string]int

// Total returns the weekly periods across all subjects.
func (f SubjectFrequency) Total() int {
	n := 0
	for _, v := range f {
		n += v
	}
	return n
}

// ClassStats is class -> subject frequency.
type ClassStats map[string]SubjectFrequency
